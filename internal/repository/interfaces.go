// Package repository はデータ永続化のインターフェースを定義する。
//
// 実装はビジネスルールを持たず、ストア失敗をStoreErrorとして
// そのまま表面化させる。分類・文言化はサービス層の責務。
package repository

import (
	"context"

	"github.com/taku10101/blog-backend/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindAll は全ユーザーを投稿付きで取得する。作成日時の昇順で返す。
	FindAll(ctx context.Context) ([]model.User, error)

	// FindByID は指定IDのユーザーを投稿付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する（投稿なし）。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。一意性制約違反はStoreErrorとして返す。
	Create(ctx context.Context, data model.CreateUserData) (*model.User, error)

	// Update はユーザーを部分更新する。nilのフィールドは変更しない。
	// 対象が存在しない場合、一意性制約に違反する場合はStoreErrorを返す。
	Update(ctx context.Context, id string, data model.UpdateUserData) (*model.User, error)

	// Delete はユーザーと所有する投稿を同一トランザクションで削除する。
	// 対象が存在しない場合はStoreErrorを返す。
	Delete(ctx context.Context, id string) error

	// Exists は指定IDのユーザーが存在するかどうかを返す。
	Exists(ctx context.Context, id string) (bool, error)

	// IsEmailTaken はメールアドレスが使用済みかどうかを返す。
	// excludeIDが空でない場合、そのIDのユーザーは判定から除外する（自己更新用）。
	IsEmailTaken(ctx context.Context, email, excludeID string) (bool, error)
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// FindAll は全投稿を作成日時の昇順で取得する。
	FindAll(ctx context.Context) ([]model.Post, error)

	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// Create は投稿を作成する。
	Create(ctx context.Context, data model.CreatePostData) (*model.Post, error)

	// Update は投稿を部分更新する。nilのフィールドは変更しない。
	Update(ctx context.Context, id string, data model.UpdatePostData) (*model.Post, error)

	// Delete は指定IDの投稿を削除する。対象が存在しない場合はStoreErrorを返す。
	Delete(ctx context.Context, id string) error

	// Exists は指定IDの投稿が存在するかどうかを返す。
	Exists(ctx context.Context, id string) (bool, error)
}

// CategoryRepository はカテゴリデータの永続化インターフェース。
type CategoryRepository interface {
	// FindAll は全カテゴリを作成日時の昇順で取得する。
	FindAll(ctx context.Context) ([]model.Category, error)

	// FindByID は指定IDのカテゴリを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Category, error)

	// FindBySlug はスラッグでカテゴリを検索する。見つからない場合はnilを返す。
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Create はカテゴリを作成する。一意性制約違反はStoreErrorとして返す。
	Create(ctx context.Context, data model.CreateCategoryData) (*model.Category, error)

	// Update はカテゴリを部分更新する。nilのフィールドは変更しない。
	Update(ctx context.Context, id string, data model.UpdateCategoryData) (*model.Category, error)

	// Delete は指定IDのカテゴリを削除する。対象が存在しない場合はStoreErrorを返す。
	Delete(ctx context.Context, id string) error

	// Exists は指定IDのカテゴリが存在するかどうかを返す。
	Exists(ctx context.Context, id string) (bool, error)

	// IsSlugTaken はスラッグが使用済みかどうかを返す。
	// excludeIDが空でない場合、そのIDのカテゴリは判定から除外する。
	IsSlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
}
