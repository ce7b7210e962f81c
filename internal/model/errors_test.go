package model

import (
	"net/http"
	"testing"
)

func TestDomainError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *DomainError
		want int
	}{
		{"validation", NewValidationError("入力が不正です"), http.StatusBadRequest},
		{"conflict", NewConflictError("既に使用されています"), http.StatusBadRequest},
		{"not found", NewNotFoundError("見つかりません"), http.StatusNotFound},
		{"unexpected", NewUnexpectedError("内部エラー"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDomainError_Error_ReturnsMessage(t *testing.T) {
	err := NewValidationError("メールアドレスは必須です")
	if err.Error() != "メールアドレスは必須です" {
		t.Errorf("Error() = %q, want %q", err.Error(), "メールアドレスは必須です")
	}
}

func TestConstructors_SetKind(t *testing.T) {
	tests := []struct {
		err  *DomainError
		want ErrorKind
	}{
		{NewValidationError("x"), ErrKindValidation},
		{NewNotFoundError("x"), ErrKindNotFound},
		{NewConflictError("x"), ErrKindConflict},
		{NewUnexpectedError("x"), ErrKindUnexpected},
	}

	for _, tt := range tests {
		if tt.err.Kind != tt.want {
			t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.want)
		}
	}
}
