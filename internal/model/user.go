// Package model はドメインモデルを定義する。
package model

import "time"

// User はブログの利用ユーザーを表す。
// Postsはユーザーが所有する投稿の一覧。ユーザー削除時は投稿も削除される。
type User struct {
	ID        string
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Posts     []Post
}

// CreateUserData はユーザー作成の入力を表す。
type CreateUserData struct {
	Email string
	Name  *string
}

// UpdateUserData はユーザー更新の入力を表す。
// nilのフィールドは更新対象外（既存値を維持する部分更新）。
type UpdateUserData struct {
	Email *string
	Name  *string
}
