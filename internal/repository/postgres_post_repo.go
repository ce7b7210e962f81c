package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taku10101/blog-backend/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// FindAll は全投稿を作成日時の昇順で取得する。
func (r *PostgresPostRepo) FindAll(ctx context.Context) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, published, author_id, created_at, updated_at
		 FROM posts ORDER BY created_at`,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to query posts: %w", err))
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapStoreError(fmt.Errorf("failed to scan post: %w", err))
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to iterate posts: %w", err))
	}

	return posts, nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, published, author_id, created_at, updated_at
		 FROM posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to find post by ID: %w", err))
	}

	return post, nil
}

// Create は投稿を作成する。IDとタイムスタンプはここで採番する。
func (r *PostgresPostRepo) Create(ctx context.Context, data model.CreatePostData) (*model.Post, error) {
	now := time.Now().UTC()
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     data.Title,
		Content:   data.Content,
		Published: data.Published,
		AuthorID:  data.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, published, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID, post.Title, post.Content, post.Published, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to insert post: %w", err))
	}

	return post, nil
}

// Update は投稿を部分更新する。nilのフィールドは既存値を維持する。
func (r *PostgresPostRepo) Update(ctx context.Context, id string, data model.UpdatePostData) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE posts
		 SET title = COALESCE($2, title),
		     content = COALESCE($3, content),
		     published = COALESCE($4, published),
		     updated_at = $5
		 WHERE id = $1
		 RETURNING id, title, content, published, author_id, created_at, updated_at`,
		id, data.Title, data.Content, data.Published, time.Now().UTC(),
	).Scan(&post.ID, &post.Title, &post.Content, &post.Published, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to update post: %w", err))
	}

	return post, nil
}

// Delete は指定IDの投稿を削除する。
func (r *PostgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to delete post: %w", err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return notFound(fmt.Errorf("post not found: %s", id))
	}
	return nil
}

// Exists は指定IDの投稿が存在するかどうかを返す。
func (r *PostgresPostRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE id = $1`,
		id,
	).Scan(&count)
	if err != nil {
		return false, wrapStoreError(fmt.Errorf("failed to count posts: %w", err))
	}
	return count > 0, nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
