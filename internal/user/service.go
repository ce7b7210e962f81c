// Package user はユーザー管理のドメインロジックを提供する。
//
// すべての操作は入力検証 → 存在/一意性の事前確認 → リポジトリ呼び出し →
// 結果の分類、の順で進み、統一のresult.Resultを返す。
// 事前確認は楽観的であり、並行リクエストですり抜けた制約違反は
// ストア側の失敗を事前確認と同じ分類に再マップする。
package user

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/repository"
	"github.com/taku10101/blog-backend/internal/result"
)

// 利用者向けメッセージ。サービス層の外ではこの文言を生成しない。
const (
	msgInvalidUserID = "有効なユーザーIDを指定してください"
	msgUserNotFound  = "ユーザーが見つかりません"
	msgEmailRequired = "メールアドレスは必須です"
	msgEmailInvalid  = "有効なメールアドレスを入力してください"
	msgEmailTaken    = "このメールアドレスは既に使用されています"
	msgListFailed    = "ユーザーの取得に失敗しました"
	msgGetFailed     = "ユーザーの詳細取得に失敗しました"
	msgCreateFailed  = "ユーザーの作成に失敗しました"
	msgUpdateFailed  = "ユーザーの更新に失敗しました"
	msgDeleteFailed  = "ユーザーの削除に失敗しました"
)

// emailPattern はメールアドレスの形式チェックに使用する。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service はユーザー管理のサービス層。
type Service struct {
	repo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

// GetAllUsers は全ユーザーを投稿付きで取得する。
func (s *Service) GetAllUsers(ctx context.Context) result.Result[[]model.User] {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		slog.Error("ユーザー一覧の取得に失敗しました", slog.String("error", err.Error()))
		return result.Fail[[]model.User](model.NewUnexpectedError(msgListFailed))
	}
	return result.OK(users)
}

// GetUserByID は指定IDのユーザーを投稿付きで取得する。
func (s *Service) GetUserByID(ctx context.Context, id string) result.Result[*model.User] {
	if id == "" {
		return result.Fail[*model.User](model.NewValidationError(msgInvalidUserID))
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		slog.Error("ユーザーの取得に失敗しました",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.User](model.NewUnexpectedError(msgGetFailed))
	}
	if user == nil {
		return result.Fail[*model.User](model.NewNotFoundError(msgUserNotFound))
	}

	return result.OK(user)
}

// CreateUser は新規ユーザーを作成する。
// メールアドレスは必須で、形式チェックと重複チェックを行う。
func (s *Service) CreateUser(ctx context.Context, data model.CreateUserData) result.Result[*model.User] {
	if data.Email == "" {
		return result.Fail[*model.User](model.NewValidationError(msgEmailRequired))
	}
	if !emailPattern.MatchString(data.Email) {
		return result.Fail[*model.User](model.NewValidationError(msgEmailInvalid))
	}

	taken, err := s.repo.IsEmailTaken(ctx, data.Email, "")
	if err != nil {
		slog.Error("メールアドレス重複チェックに失敗しました", slog.String("error", err.Error()))
		return result.Fail[*model.User](model.NewUnexpectedError(msgCreateFailed))
	}
	if taken {
		return result.Fail[*model.User](model.NewConflictError(msgEmailTaken))
	}

	user, err := s.repo.Create(ctx, data)
	if err != nil {
		// 事前確認をすり抜けた一意性違反（並行作成）もここで競合として扱う
		if repository.IsUniqueViolation(err) {
			return result.Fail[*model.User](model.NewConflictError(msgEmailTaken))
		}
		slog.Error("ユーザーの作成に失敗しました", slog.String("error", err.Error()))
		return result.Fail[*model.User](model.NewUnexpectedError(msgCreateFailed))
	}

	return result.OK(user)
}

// UpdateUser はユーザーを部分更新する。入力で省略されたフィールドは変更しない。
// メールアドレスが指定された場合は形式チェックと自分以外での重複チェックを行う。
func (s *Service) UpdateUser(ctx context.Context, id string, data model.UpdateUserData) result.Result[*model.User] {
	if id == "" {
		return result.Fail[*model.User](model.NewValidationError(msgInvalidUserID))
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		slog.Error("ユーザー存在確認に失敗しました",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.User](model.NewUnexpectedError(msgUpdateFailed))
	}
	if !exists {
		return result.Fail[*model.User](model.NewNotFoundError(msgUserNotFound))
	}

	if data.Email != nil {
		if !emailPattern.MatchString(*data.Email) {
			return result.Fail[*model.User](model.NewValidationError(msgEmailInvalid))
		}

		taken, err := s.repo.IsEmailTaken(ctx, *data.Email, id)
		if err != nil {
			slog.Error("メールアドレス重複チェックに失敗しました", slog.String("error", err.Error()))
			return result.Fail[*model.User](model.NewUnexpectedError(msgUpdateFailed))
		}
		if taken {
			return result.Fail[*model.User](model.NewConflictError(msgEmailTaken))
		}
	}

	user, err := s.repo.Update(ctx, id, data)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return result.Fail[*model.User](model.NewNotFoundError(msgUserNotFound))
		case repository.IsUniqueViolation(err):
			return result.Fail[*model.User](model.NewConflictError(msgEmailTaken))
		}
		slog.Error("ユーザーの更新に失敗しました",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[*model.User](model.NewUnexpectedError(msgUpdateFailed))
	}

	return result.OK(user)
}

// DeleteUser はユーザーと所有する投稿を削除する。
// 同一IDへの2回目の呼び出しは404になる（欠如は報告し、黙認しない）。
func (s *Service) DeleteUser(ctx context.Context, id string) result.Result[struct{}] {
	if id == "" {
		return result.Fail[struct{}](model.NewValidationError(msgInvalidUserID))
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		slog.Error("ユーザー存在確認に失敗しました",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[struct{}](model.NewUnexpectedError(msgDeleteFailed))
	}
	if !exists {
		return result.Fail[struct{}](model.NewNotFoundError(msgUserNotFound))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return result.Fail[struct{}](model.NewNotFoundError(msgUserNotFound))
		}
		slog.Error("ユーザーの削除に失敗しました",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return result.Fail[struct{}](model.NewUnexpectedError(msgDeleteFailed))
	}

	return result.OK(struct{}{})
}
