// Package category はカテゴリ管理のドメインロジックを提供する。
package category

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/repository"
	"github.com/taku10101/blog-backend/internal/result"
)

// 利用者向けメッセージ。
const (
	msgInvalidCategoryID = "有効なカテゴリIDを指定してください"
	msgCategoryNotFound  = "カテゴリが見つかりません"
	msgNameRequired      = "カテゴリ名は必須です"
	msgSlugRequired      = "スラッグは必須です"
	msgSlugInvalid       = "有効なスラッグを入力してください（小文字英数字とハイフン）"
	msgSlugTaken         = "このスラッグは既に使用されています"
	msgListFailed        = "カテゴリの取得に失敗しました"
	msgGetFailed         = "カテゴリの詳細取得に失敗しました"
	msgCreateFailed      = "カテゴリの作成に失敗しました"
	msgUpdateFailed      = "カテゴリの更新に失敗しました"
	msgDeleteFailed      = "カテゴリの削除に失敗しました"
)

// slugPattern はスラッグの形式チェックに使用する（小文字英数字のケバブケース）。
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Service はカテゴリ管理のサービス層。
type Service struct {
	repo repository.CategoryRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.CategoryRepository) *Service {
	return &Service{repo: repo}
}

// GetAllCategories は全カテゴリを取得する。
func (s *Service) GetAllCategories(ctx context.Context) result.Result[[]model.Category] {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		slog.Error("カテゴリ一覧の取得に失敗しました", slog.String("error", err.Error()))
		return result.Fail[[]model.Category](model.NewUnexpectedError(msgListFailed))
	}
	return result.OK(categories)
}

// GetCategoryByID は指定IDのカテゴリを取得する。
func (s *Service) GetCategoryByID(ctx context.Context, id string) result.Result[*model.Category] {
	if id == "" {
		return result.Fail[*model.Category](model.NewValidationError(msgInvalidCategoryID))
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		slog.Error("カテゴリの取得に失敗しました",
			slog.String("category_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Category](model.NewUnexpectedError(msgGetFailed))
	}
	if category == nil {
		return result.Fail[*model.Category](model.NewNotFoundError(msgCategoryNotFound))
	}

	return result.OK(category)
}

// CreateCategory は新規カテゴリを作成する。
// 名前とスラッグは必須で、スラッグは形式チェックと重複チェックを行う。
func (s *Service) CreateCategory(ctx context.Context, data model.CreateCategoryData) result.Result[*model.Category] {
	if data.Name == "" {
		return result.Fail[*model.Category](model.NewValidationError(msgNameRequired))
	}
	if data.Slug == "" {
		return result.Fail[*model.Category](model.NewValidationError(msgSlugRequired))
	}
	if !slugPattern.MatchString(data.Slug) {
		return result.Fail[*model.Category](model.NewValidationError(msgSlugInvalid))
	}

	taken, err := s.repo.IsSlugTaken(ctx, data.Slug, "")
	if err != nil {
		slog.Error("スラッグ重複チェックに失敗しました", slog.String("error", err.Error()))
		return result.Fail[*model.Category](model.NewUnexpectedError(msgCreateFailed))
	}
	if taken {
		return result.Fail[*model.Category](model.NewConflictError(msgSlugTaken))
	}

	category, err := s.repo.Create(ctx, data)
	if err != nil {
		// 事前確認をすり抜けた一意性違反（並行作成）もここで競合として扱う
		if repository.IsUniqueViolation(err) {
			return result.Fail[*model.Category](model.NewConflictError(msgSlugTaken))
		}
		slog.Error("カテゴリの作成に失敗しました", slog.String("error", err.Error()))
		return result.Fail[*model.Category](model.NewUnexpectedError(msgCreateFailed))
	}

	return result.OK(category)
}

// UpdateCategory はカテゴリを部分更新する。入力で省略されたフィールドは変更しない。
// スラッグが指定された場合は形式チェックと自分以外での重複チェックを行う。
func (s *Service) UpdateCategory(ctx context.Context, id string, data model.UpdateCategoryData) result.Result[*model.Category] {
	if id == "" {
		return result.Fail[*model.Category](model.NewValidationError(msgInvalidCategoryID))
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		slog.Error("カテゴリ存在確認に失敗しました",
			slog.String("category_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Category](model.NewUnexpectedError(msgUpdateFailed))
	}
	if !exists {
		return result.Fail[*model.Category](model.NewNotFoundError(msgCategoryNotFound))
	}

	if data.Name != nil && *data.Name == "" {
		return result.Fail[*model.Category](model.NewValidationError(msgNameRequired))
	}

	if data.Slug != nil {
		if !slugPattern.MatchString(*data.Slug) {
			return result.Fail[*model.Category](model.NewValidationError(msgSlugInvalid))
		}

		taken, err := s.repo.IsSlugTaken(ctx, *data.Slug, id)
		if err != nil {
			slog.Error("スラッグ重複チェックに失敗しました", slog.String("error", err.Error()))
			return result.Fail[*model.Category](model.NewUnexpectedError(msgUpdateFailed))
		}
		if taken {
			return result.Fail[*model.Category](model.NewConflictError(msgSlugTaken))
		}
	}

	category, err := s.repo.Update(ctx, id, data)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return result.Fail[*model.Category](model.NewNotFoundError(msgCategoryNotFound))
		case repository.IsUniqueViolation(err):
			return result.Fail[*model.Category](model.NewConflictError(msgSlugTaken))
		}
		slog.Error("カテゴリの更新に失敗しました",
			slog.String("category_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Category](model.NewUnexpectedError(msgUpdateFailed))
	}

	return result.OK(category)
}

// DeleteCategory は指定IDのカテゴリを削除する。
func (s *Service) DeleteCategory(ctx context.Context, id string) result.Result[struct{}] {
	if id == "" {
		return result.Fail[struct{}](model.NewValidationError(msgInvalidCategoryID))
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		slog.Error("カテゴリ存在確認に失敗しました",
			slog.String("category_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[struct{}](model.NewUnexpectedError(msgDeleteFailed))
	}
	if !exists {
		return result.Fail[struct{}](model.NewNotFoundError(msgCategoryNotFound))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return result.Fail[struct{}](model.NewNotFoundError(msgCategoryNotFound))
		}
		slog.Error("カテゴリの削除に失敗しました",
			slog.String("category_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[struct{}](model.NewUnexpectedError(msgDeleteFailed))
	}

	return result.OK(struct{}{})
}
