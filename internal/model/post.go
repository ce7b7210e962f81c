// Package model はドメインモデルを定義する。
package model

import "time"

// Post はユーザーの投稿を表す。
// AuthorIDは必ず既存ユーザーを参照する。
type Post struct {
	ID        string
	Title     string
	Content   *string
	Published bool
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostData は投稿作成の入力を表す。
// Publishedが未指定の場合はfalseとして扱う。
type CreatePostData struct {
	Title     string
	Content   *string
	Published bool
	AuthorID  string
}

// UpdatePostData は投稿更新の入力を表す。
// nilのフィールドは更新対象外。
type UpdatePostData struct {
	Title     *string
	Content   *string
	Published *bool
}
