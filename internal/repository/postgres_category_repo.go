package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taku10101/blog-backend/internal/model"
)

// PostgresCategoryRepo はPostgreSQLを使用したカテゴリリポジトリ。
type PostgresCategoryRepo struct {
	db *sql.DB
}

// NewPostgresCategoryRepo はPostgresCategoryRepoを生成する。
func NewPostgresCategoryRepo(db *sql.DB) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{db: db}
}

// FindAll は全カテゴリを作成日時の昇順で取得する。
func (r *PostgresCategoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY created_at`,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to query categories: %w", err))
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, wrapStoreError(fmt.Errorf("failed to scan category: %w", err))
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to iterate categories: %w", err))
	}

	return categories, nil
}

// FindByID は指定IDのカテゴリを取得する。見つからない場合はnilを返す。
func (r *PostgresCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	category := &model.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`,
		id,
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to find category by ID: %w", err))
	}

	return category, nil
}

// FindBySlug はスラッグでカテゴリを検索する。見つからない場合はnilを返す。
func (r *PostgresCategoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category := &model.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug = $1`,
		slug,
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to find category by slug: %w", err))
	}

	return category, nil
}

// Create はカテゴリを作成する。IDとタイムスタンプはここで採番する。
func (r *PostgresCategoryRepo) Create(ctx context.Context, data model.CreateCategoryData) (*model.Category, error) {
	now := time.Now().UTC()
	category := &model.Category{
		ID:        uuid.NewString(),
		Name:      data.Name,
		Slug:      data.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		category.ID, category.Name, category.Slug, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to insert category: %w", err))
	}

	return category, nil
}

// Update はカテゴリを部分更新する。nilのフィールドは既存値を維持する。
func (r *PostgresCategoryRepo) Update(ctx context.Context, id string, data model.UpdateCategoryData) (*model.Category, error) {
	category := &model.Category{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE categories
		 SET name = COALESCE($2, name),
		     slug = COALESCE($3, slug),
		     updated_at = $4
		 WHERE id = $1
		 RETURNING id, name, slug, created_at, updated_at`,
		id, data.Name, data.Slug, time.Now().UTC(),
	).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		return nil, wrapStoreError(fmt.Errorf("failed to update category: %w", err))
	}

	return category, nil
}

// Delete は指定IDのカテゴリを削除する。
func (r *PostgresCategoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1`,
		id,
	)
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to delete category: %w", err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapStoreError(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return notFound(fmt.Errorf("category not found: %s", id))
	}
	return nil
}

// Exists は指定IDのカテゴリが存在するかどうかを返す。
func (r *PostgresCategoryRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE id = $1`,
		id,
	).Scan(&count)
	if err != nil {
		return false, wrapStoreError(fmt.Errorf("failed to count categories: %w", err))
	}
	return count > 0, nil
}

// IsSlugTaken はスラッグが使用済みかどうかを返す。
// excludeIDが空でない場合、そのIDのカテゴリは判定から除外する。
func (r *PostgresCategoryRepo) IsSlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	var err error
	if excludeID == "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM categories WHERE slug = $1`,
			slug,
		).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM categories WHERE slug = $1 AND id <> $2`,
			slug, excludeID,
		).Scan(&count)
	}
	if err != nil {
		return false, wrapStoreError(fmt.Errorf("failed to count categories by slug: %w", err))
	}
	return count > 0, nil
}

// compile-time interface check
var _ CategoryRepository = (*PostgresCategoryRepo)(nil)
