// Package result はサービス層の統一結果型を提供する。
//
// 成功バリアントはデータを、失敗バリアントは分類済みのDomainErrorを保持し、
// どちらか一方のみが有効であることを型で保証する。
package result

import (
	"net/http"

	"github.com/taku10101/blog-backend/internal/model"
)

// Result はサービス操作の結果を表す。
// OKまたはFailでのみ生成し、ゼロ値は使用しない。
type Result[T any] struct {
	ok   bool
	data T
	err  *model.DomainError
}

// OK は成功結果を生成する。
func OK[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail は失敗結果を生成する。errはnilであってはならない。
func Fail[T any](err *model.DomainError) Result[T] {
	return Result[T]{err: err}
}

// Success は成功結果かどうかを返す。
func (r Result[T]) Success() bool {
	return r.ok
}

// Data は成功時のデータを返す。失敗時はゼロ値を返す。
func (r Result[T]) Data() T {
	return r.data
}

// Err は失敗時のDomainErrorを返す。成功時はnilを返す。
func (r Result[T]) Err() *model.DomainError {
	return r.err
}

// StatusCode は失敗時のHTTPステータスコードを返す。
// 成功時は操作種別に依存するため呼び出し側で決定する（ここでは200を返す）。
// 失敗バリアントにエラーが無い場合は500にフォールバックする。
func (r Result[T]) StatusCode() int {
	if r.ok {
		return http.StatusOK
	}
	if r.err == nil {
		return http.StatusInternalServerError
	}
	return r.err.StatusCode()
}
