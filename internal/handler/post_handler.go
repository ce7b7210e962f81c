package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/result"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	GetAllPosts(ctx context.Context) result.Result[[]model.Post]
	GetPostByID(ctx context.Context, id string) result.Result[*model.Post]
	CreatePost(ctx context.Context, data model.CreatePostData) result.Result[*model.Post]
	UpdatePost(ctx context.Context, id string, data model.UpdatePostData) result.Result[*model.Post]
	DeletePost(ctx context.Context, id string) result.Result[struct{}]
}

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// createPostRequest は投稿作成リクエストのボディ。
// publishedが省略された場合はfalseとして扱う。
type createPostRequest struct {
	Title     string  `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	AuthorID  string  `json:"authorId"`
}

// updatePostRequest は投稿更新リクエストのボディ。
// 省略されたフィールドは更新されない。
type updatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

// GetAllPosts は全投稿を返す。
// GET /api/posts
func (h *PostHandler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	res := h.service.GetAllPosts(r.Context())
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toPostResponses(res.Data()))
}

// GetPostByID は指定IDの投稿を返す。
// GET /api/posts/{id}
func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効な投稿IDを指定してください")
		return
	}

	res := h.service.GetPostByID(r.Context(), id)
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(*res.Data()))
}

// CreatePost は新規投稿を作成する。
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	res := h.service.CreatePost(r.Context(), model.CreatePostData{
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
		AuthorID:  req.AuthorID,
	})
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(*res.Data()))
}

// UpdatePost は投稿を部分更新する。
// PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効な投稿IDを指定してください")
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res := h.service.UpdatePost(r.Context(), id, model.UpdatePostData{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(*res.Data()))
}

// DeletePost は指定IDの投稿を削除する。
// DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効な投稿IDを指定してください")
		return
	}

	res := h.service.DeletePost(r.Context(), id)
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
