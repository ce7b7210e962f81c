// Package handler はHTTPハンドラーとルーティングを提供する。
//
// ハンドラーはサービス層の結果をHTTPレスポンスへ機械的に変換するだけで、
// エラーの原因を解釈しない。失敗時のボディは常に {"error": メッセージ}。
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taku10101/blog-backend/internal/model"
)

// リクエストボディが解釈できない場合のメッセージ。
const msgInvalidBody = "リクエストボディが不正です"

// errorResponse はAPIエラーレスポンスの統一フォーマット。
type errorResponse struct {
	Error string `json:"error"`
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Name      *string        `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Posts     []postResponse `json:"posts"`
}

// postResponse は投稿情報のAPIレスポンス。
type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// categoryResponse はカテゴリ情報のAPIレスポンス。
type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// toPostResponse はmodel.PostをAPIレスポンス形式に変換する。
func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// toPostResponses はmodel.Postのスライスを変換する。常に非nilのスライスを返す。
func toPostResponses(posts []model.Post) []postResponse {
	results := make([]postResponse, len(posts))
	for i, p := range posts {
		results[i] = toPostResponse(p)
	}
	return results
}

// toUserResponse はmodel.UserをAPIレスポンス形式に変換する。
func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Posts:     toPostResponses(u.Posts),
	}
}

// toCategoryResponse はmodel.CategoryをAPIレスポンス形式に変換する。
func toCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeError は {"error": メッセージ} 形式のエラーレスポンスを書き込む。
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeDomainError はサービス層のDomainErrorをHTTPレスポンスに変換する。
// エラーが欠落している場合は500にフォールバックする。
func writeDomainError(w http.ResponseWriter, err *model.DomainError) {
	if err == nil {
		writeError(w, http.StatusInternalServerError, "内部エラーが発生しました")
		return
	}
	writeError(w, err.StatusCode(), err.Message)
}
