// Package model はドメインモデルを定義する。
package model

import "time"

// Category は投稿の分類カテゴリを表す。
// Slugは全カテゴリで一意。
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCategoryData はカテゴリ作成の入力を表す。
type CreateCategoryData struct {
	Name string
	Slug string
}

// UpdateCategoryData はカテゴリ更新の入力を表す。
// nilのフィールドは更新対象外。
type UpdateCategoryData struct {
	Name *string
	Slug *string
}
