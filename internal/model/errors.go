// Package model はドメインモデルを定義する。
package model

import "net/http"

// ErrorKind はドメインエラーの分類を表す。
// サービス層はすべての失敗をこの4分類のいずれかに正規化する。
type ErrorKind string

const (
	// ErrKindValidation は入力不備（必須欠落・形式不正）を示す。ストアには到達しない。
	ErrKindValidation ErrorKind = "validation"
	// ErrKindNotFound は参照された識別子が存在しないことを示す。
	ErrKindNotFound ErrorKind = "not_found"
	// ErrKindConflict は一意性制約への違反（またはその見込み）を示す。
	ErrKindConflict ErrorKind = "conflict"
	// ErrKindUnexpected は上記以外の予期しない失敗を示す。詳細はログのみに残す。
	ErrKindUnexpected ErrorKind = "unexpected"
)

// DomainError はサービス層が返す分類済みエラーを表す。
// Messageはそのまま利用者に返せる文言とする。
type DomainError struct {
	Kind    ErrorKind
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *DomainError) Error() string {
	return e.Message
}

// StatusCode は分類に対応するHTTPステータスコードを返す。
// 一意性違反は入力起因として400を返す（404/500と区別される）。
func (e *DomainError) StatusCode() int {
	switch e.Kind {
	case ErrKindValidation, ErrKindConflict:
		return http.StatusBadRequest
	case ErrKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError は入力不備エラーを生成する。
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: ErrKindValidation, Message: message}
}

// NewNotFoundError は対象未検出エラーを生成する。
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: ErrKindNotFound, Message: message}
}

// NewConflictError は一意性違反エラーを生成する。
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: ErrKindConflict, Message: message}
}

// NewUnexpectedError は予期しない失敗のエラーを生成する。
// 内部原因は呼び出し側でログに記録し、利用者には汎用メッセージのみを返す。
func NewUnexpectedError(message string) *DomainError {
	return &DomainError{Kind: ErrKindUnexpected, Message: message}
}
