// Package post は投稿管理のドメインロジックを提供する。
package post

import (
	"context"
	"log/slog"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/repository"
	"github.com/taku10101/blog-backend/internal/result"
	"github.com/taku10101/blog-backend/internal/security"
)

// 利用者向けメッセージ。
const (
	msgInvalidPostID  = "有効な投稿IDを指定してください"
	msgPostNotFound   = "投稿が見つかりません"
	msgTitleRequired  = "タイトルは必須です"
	msgAuthorRequired = "著者IDは必須です"
	msgAuthorNotFound = "指定された著者が見つかりません"
	msgListFailed     = "投稿の取得に失敗しました"
	msgGetFailed      = "投稿の詳細取得に失敗しました"
	msgCreateFailed   = "投稿の作成に失敗しました"
	msgUpdateFailed   = "投稿の更新に失敗しました"
	msgDeleteFailed   = "投稿の削除に失敗しました"
)

// AuthorChecker は著者（ユーザー）の存在確認インターフェース。
// repository.UserRepositoryを直接要求せず、必要最小限に絞る。
type AuthorChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service は投稿管理のサービス層。
// 投稿本文は保存前にサニタイズされる。
type Service struct {
	repo      repository.PostRepository
	authors   AuthorChecker
	sanitizer security.ContentSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.PostRepository, authors AuthorChecker, sanitizer security.ContentSanitizerService) *Service {
	return &Service{
		repo:      repo,
		authors:   authors,
		sanitizer: sanitizer,
	}
}

// sanitizeContent は本文をサニタイズする。nilはnilのまま返す。
func (s *Service) sanitizeContent(content *string) *string {
	if content == nil || s.sanitizer == nil {
		return content
	}
	clean := s.sanitizer.Sanitize(*content)
	return &clean
}

// GetAllPosts は全投稿を取得する。
func (s *Service) GetAllPosts(ctx context.Context) result.Result[[]model.Post] {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		slog.Error("投稿一覧の取得に失敗しました", slog.String("error", err.Error()))
		return result.Fail[[]model.Post](model.NewUnexpectedError(msgListFailed))
	}
	return result.OK(posts)
}

// GetPostByID は指定IDの投稿を取得する。
func (s *Service) GetPostByID(ctx context.Context, id string) result.Result[*model.Post] {
	if id == "" {
		return result.Fail[*model.Post](model.NewValidationError(msgInvalidPostID))
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		slog.Error("投稿の取得に失敗しました",
			slog.String("post_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Post](model.NewUnexpectedError(msgGetFailed))
	}
	if post == nil {
		return result.Fail[*model.Post](model.NewNotFoundError(msgPostNotFound))
	}

	return result.OK(post)
}

// CreatePost は新規投稿を作成する。
// タイトルと著者IDは必須で、著者は作成時点で存在していなければならない。
func (s *Service) CreatePost(ctx context.Context, data model.CreatePostData) result.Result[*model.Post] {
	if data.Title == "" {
		return result.Fail[*model.Post](model.NewValidationError(msgTitleRequired))
	}
	if data.AuthorID == "" {
		return result.Fail[*model.Post](model.NewValidationError(msgAuthorRequired))
	}

	exists, err := s.authors.Exists(ctx, data.AuthorID)
	if err != nil {
		slog.Error("著者存在確認に失敗しました",
			slog.String("author_id", data.AuthorID),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Post](model.NewUnexpectedError(msgCreateFailed))
	}
	if !exists {
		return result.Fail[*model.Post](model.NewNotFoundError(msgAuthorNotFound))
	}

	data.Content = s.sanitizeContent(data.Content)

	post, err := s.repo.Create(ctx, data)
	if err != nil {
		slog.Error("投稿の作成に失敗しました", slog.String("error", err.Error()))
		return result.Fail[*model.Post](model.NewUnexpectedError(msgCreateFailed))
	}

	return result.OK(post)
}

// UpdatePost は投稿を部分更新する。入力で省略されたフィールドは変更しない。
func (s *Service) UpdatePost(ctx context.Context, id string, data model.UpdatePostData) result.Result[*model.Post] {
	if id == "" {
		return result.Fail[*model.Post](model.NewValidationError(msgInvalidPostID))
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		slog.Error("投稿存在確認に失敗しました",
			slog.String("post_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Post](model.NewUnexpectedError(msgUpdateFailed))
	}
	if !exists {
		return result.Fail[*model.Post](model.NewNotFoundError(msgPostNotFound))
	}

	if data.Title != nil && *data.Title == "" {
		return result.Fail[*model.Post](model.NewValidationError(msgTitleRequired))
	}

	data.Content = s.sanitizeContent(data.Content)

	post, err := s.repo.Update(ctx, id, data)
	if err != nil {
		if repository.IsNotFound(err) {
			return result.Fail[*model.Post](model.NewNotFoundError(msgPostNotFound))
		}
		slog.Error("投稿の更新に失敗しました",
			slog.String("post_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.Post](model.NewUnexpectedError(msgUpdateFailed))
	}

	return result.OK(post)
}

// DeletePost は指定IDの投稿を削除する。
func (s *Service) DeletePost(ctx context.Context, id string) result.Result[struct{}] {
	if id == "" {
		return result.Fail[struct{}](model.NewValidationError(msgInvalidPostID))
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		slog.Error("投稿存在確認に失敗しました",
			slog.String("post_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[struct{}](model.NewUnexpectedError(msgDeleteFailed))
	}
	if !exists {
		return result.Fail[struct{}](model.NewNotFoundError(msgPostNotFound))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return result.Fail[struct{}](model.NewNotFoundError(msgPostNotFound))
		}
		slog.Error("投稿の削除に失敗しました",
			slog.String("post_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[struct{}](model.NewUnexpectedError(msgDeleteFailed))
	}

	return result.OK(struct{}{})
}
