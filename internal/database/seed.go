package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// seedUser は初期投入するユーザーの定義。
type seedUser struct {
	email string
	name  string
}

// seedPost は初期投入する投稿の定義。authorEmailでユーザーを参照する。
type seedPost struct {
	title       string
	content     string
	published   bool
	authorEmail string
}

// seedCategory は初期投入するカテゴリの定義。
type seedCategory struct {
	name string
	slug string
}

var seedUsers = []seedUser{
	{email: "john@example.com", name: "John Doe"},
	{email: "jane@example.com", name: "Jane Smith"},
}

var seedCategories = []seedCategory{
	{name: "テクノロジー", slug: "technology"},
	{name: "ライフスタイル", slug: "lifestyle"},
}

var seedPosts = []seedPost{
	{
		title:       "GoとPostgreSQLの素晴らしい組み合わせ",
		content:     "database/sqlとlib/pqを使用することで、シンプルで堅牢なデータベース操作が可能になります。",
		published:   true,
		authorEmail: "john@example.com",
	},
	{
		title:       "Goバックエンド開発のベストプラクティス",
		content:     "chi、golang-migrate、slogを組み合わせたモダンな開発手法について解説します。",
		published:   true,
		authorEmail: "john@example.com",
	},
	{
		title:       "効率的なデータベース設計について",
		content:     "スキーマ設計とマイグレーション管理のコツ。",
		published:   false,
		authorEmail: "jane@example.com",
	},
}

// Seed は開発用の初期データを投入する。
// 既存のposts、users、categoriesをすべて削除してから投入するため、
// 本番環境では実行しないこと。
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 既存データをクリア（参照の都合でposts → users → categoriesの順）
	for _, table := range []string{"posts", "users", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	now := time.Now().UTC()
	userIDByEmail := make(map[string]string, len(seedUsers))

	for _, u := range seedUsers {
		id := uuid.NewString()
		userIDByEmail[u.email] = id
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, name, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, u.email, u.name, now, now,
		); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}
	slog.Info("seeded users", slog.Int("count", len(seedUsers)))

	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, slug, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), c.name, c.slug, now, now,
		); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.slug, err)
		}
	}
	slog.Info("seeded categories", slog.Int("count", len(seedCategories)))

	for _, p := range seedPosts {
		authorID, ok := userIDByEmail[p.authorEmail]
		if !ok {
			return fmt.Errorf("seed post %q references unknown author %s", p.title, p.authorEmail)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO posts (id, title, content, published, author_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), p.title, p.content, p.published, authorID, now, now,
		); err != nil {
			return fmt.Errorf("failed to seed post %q: %w", p.title, err)
		}
	}
	slog.Info("seeded posts", slog.Int("count", len(seedPosts)))

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return nil
}
