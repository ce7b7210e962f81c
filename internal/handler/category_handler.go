package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/result"
)

// CategoryServiceInterface はカテゴリハンドラーが必要とするサービスインターフェース。
type CategoryServiceInterface interface {
	GetAllCategories(ctx context.Context) result.Result[[]model.Category]
	GetCategoryByID(ctx context.Context, id string) result.Result[*model.Category]
	CreateCategory(ctx context.Context, data model.CreateCategoryData) result.Result[*model.Category]
	UpdateCategory(ctx context.Context, id string, data model.UpdateCategoryData) result.Result[*model.Category]
	DeleteCategory(ctx context.Context, id string) result.Result[struct{}]
}

// CategoryHandler はカテゴリ管理のHTTPハンドラー。
type CategoryHandler struct {
	service CategoryServiceInterface
}

// NewCategoryHandler はCategoryHandlerを生成する。
func NewCategoryHandler(service CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// createCategoryRequest はカテゴリ作成リクエストのボディ。
type createCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// updateCategoryRequest はカテゴリ更新リクエストのボディ。
// 省略されたフィールドは更新されない。
type updateCategoryRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// GetAllCategories は全カテゴリを返す。
// GET /api/categories
func (h *CategoryHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	res := h.service.GetAllCategories(r.Context())
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	categories := res.Data()
	responses := make([]categoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetCategoryByID は指定IDのカテゴリを返す。
// GET /api/categories/{id}
func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効なカテゴリIDを指定してください")
		return
	}

	res := h.service.GetCategoryByID(r.Context(), id)
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*res.Data()))
}

// CreateCategory は新規カテゴリを作成する。
// POST /api/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res := h.service.CreateCategory(r.Context(), model.CreateCategoryData{
		Name: req.Name,
		Slug: req.Slug,
	})
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*res.Data()))
}

// UpdateCategory はカテゴリを部分更新する。
// PUT /api/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効なカテゴリIDを指定してください")
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res := h.service.UpdateCategory(r.Context(), id, model.UpdateCategoryData{
		Name: req.Name,
		Slug: req.Slug,
	})
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(*res.Data()))
}

// DeleteCategory は指定IDのカテゴリを削除する。
// DELETE /api/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効なカテゴリIDを指定してください")
		return
	}

	res := h.service.DeleteCategory(r.Context(), id)
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
