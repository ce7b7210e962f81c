package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// StoreErrorKind はストア失敗の分類を表す。
// サービス層はこの閉じた列挙に対して分岐し、ドライバ固有の
// エラーコードを直接参照しない。
type StoreErrorKind int

const (
	// StoreErrOther は分類外のストア失敗を示す。
	StoreErrOther StoreErrorKind = iota
	// StoreErrNotFound は対象行が存在しないことを示す。
	StoreErrNotFound
	// StoreErrUniqueViolation は一意性制約違反を示す。
	StoreErrUniqueViolation
)

// StoreError はストア失敗をタグ付きで表すエラー型。
// 元のドライバエラーを保持し、Unwrapで辿れる。
type StoreError struct {
	Kind StoreErrorKind
	Err  error
}

// Error はerrorインターフェースを実装する。
func (e *StoreError) Error() string {
	switch e.Kind {
	case StoreErrNotFound:
		return fmt.Sprintf("store: not found: %v", e.Err)
	case StoreErrUniqueViolation:
		return fmt.Sprintf("store: unique violation: %v", e.Err)
	default:
		return fmt.Sprintf("store: %v", e.Err)
	}
}

// Unwrap はラップされた元エラーを返す。
func (e *StoreError) Unwrap() error {
	return e.Err
}

// notFound は対象未検出のStoreErrorを生成する。
func notFound(err error) *StoreError {
	return &StoreError{Kind: StoreErrNotFound, Err: err}
}

// PostgreSQLのエラーコード。コード判定はこのファイルに閉じ込める。
const pgUniqueViolation = "23505"

// wrapStoreError はドライバエラーをStoreErrorに変換する。
// sql.ErrNoRowsはNotFound、23505はUniqueViolation、それ以外はOtherになる。
// nilにはnilを返す。
func wrapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return &StoreError{Kind: StoreErrUniqueViolation, Err: err}
	}
	return &StoreError{Kind: StoreErrOther, Err: err}
}

// IsNotFound はエラーが対象未検出のStoreErrorかどうかを返す。
func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == StoreErrNotFound
}

// IsUniqueViolation はエラーが一意性制約違反のStoreErrorかどうかを返す。
func IsUniqueViolation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == StoreErrUniqueViolation
}
