package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taku10101/blog-backend/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindAll は全ユーザーを投稿付きで取得する。作成日時の昇順で返す。
func (r *PostgresUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to query users: %w", err))
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, wrapStoreError(fmt.Errorf("failed to scan user: %w", err))
		}
		u.Posts = []model.Post{}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to iterate users: %w", err))
	}

	if err := r.attachPosts(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

// attachPosts は各ユーザーのPostsフィールドに所有する投稿を設定する。
func (r *PostgresUserRepo) attachPosts(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, published, author_id, created_at, updated_at
		 FROM posts ORDER BY created_at`,
	)
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to query posts: %w", err))
	}
	defer rows.Close()

	byAuthor := make(map[string][]model.Post)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return wrapStoreError(fmt.Errorf("failed to scan post: %w", err))
		}
		byAuthor[p.AuthorID] = append(byAuthor[p.AuthorID], p)
	}
	if err := rows.Err(); err != nil {
		return wrapStoreError(fmt.Errorf("failed to iterate posts: %w", err))
	}

	for i := range users {
		if posts, ok := byAuthor[users[i].ID]; ok {
			users[i].Posts = posts
		}
	}
	return nil
}

// FindByID は指定IDのユーザーを投稿付きで取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to find user by ID: %w", err))
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, published, author_id, created_at, updated_at
		 FROM posts WHERE author_id = $1 ORDER BY created_at`,
		id,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to query posts by author: %w", err))
	}
	defer rows.Close()

	user.Posts = []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapStoreError(fmt.Errorf("failed to scan post: %w", err))
		}
		user.Posts = append(user.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to iterate posts: %w", err))
	}

	return user, nil
}

// FindByEmail はメールアドレスでユーザーを検索する（投稿なし）。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, created_at, updated_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to find user by email: %w", err))
	}

	return user, nil
}

// Create はユーザーを作成する。IDとタイムスタンプはここで採番する。
func (r *PostgresUserRepo) Create(ctx context.Context, data model.CreateUserData) (*model.User, error) {
	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     data.Email,
		Name:      data.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Posts:     []model.Post{},
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to insert user: %w", err))
	}

	return user, nil
}

// Update はユーザーを部分更新する。nilのフィールドは既存値を維持する。
func (r *PostgresUserRepo) Update(ctx context.Context, id string, data model.UpdateUserData) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE users
		 SET email = COALESCE($2, email),
		     name = COALESCE($3, name),
		     updated_at = $4
		 WHERE id = $1
		 RETURNING id, email, name, created_at, updated_at`,
		id, data.Email, data.Name, time.Now().UTC(),
	).Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to update user: %w", err))
	}

	user.Posts = []model.Post{}
	return user, nil
}

// Delete はユーザーと所有する投稿を同一トランザクションで削除する。
// カスケードはスキーマ設定に頼らず、ここで明示的に行う。
func (r *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	// 所有する投稿を先に削除
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM posts WHERE author_id = $1`,
		id,
	); err != nil {
		return wrapStoreError(fmt.Errorf("failed to delete posts: %w", err))
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to delete user: %w", err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return notFound(fmt.Errorf("user not found: %s", id))
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreError(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// Exists は指定IDのユーザーが存在するかどうかを返す。
func (r *PostgresUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE id = $1`,
		id,
	).Scan(&count)
	if err != nil {
		return false, wrapStoreError(fmt.Errorf("failed to count users: %w", err))
	}
	return count > 0, nil
}

// IsEmailTaken はメールアドレスが使用済みかどうかを返す。
// excludeIDが空でない場合、そのIDのユーザーは判定から除外する。
func (r *PostgresUserRepo) IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	var err error
	if excludeID == "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE email = $1`,
			email,
		).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE email = $1 AND id <> $2`,
			email, excludeID,
		).Scan(&count)
	}
	if err != nil {
		return false, wrapStoreError(fmt.Errorf("failed to count users by email: %w", err))
	}
	return count > 0, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
