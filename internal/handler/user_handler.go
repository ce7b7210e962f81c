package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/result"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	GetAllUsers(ctx context.Context) result.Result[[]model.User]
	GetUserByID(ctx context.Context, id string) result.Result[*model.User]
	CreateUser(ctx context.Context, data model.CreateUserData) result.Result[*model.User]
	UpdateUser(ctx context.Context, id string, data model.UpdateUserData) result.Result[*model.User]
	DeleteUser(ctx context.Context, id string) result.Result[struct{}]
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// createUserRequest はユーザー作成リクエストのボディ。
type createUserRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// updateUserRequest はユーザー更新リクエストのボディ。
// 省略されたフィールドは更新されない。
type updateUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// GetAllUsers は全ユーザーを投稿付きで返す。
// GET /api/users
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	res := h.service.GetAllUsers(r.Context())
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	users := res.Data()
	responses := make([]userResponse, len(users))
	for i, u := range users {
		responses[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetUserByID は指定IDのユーザーを投稿付きで返す。
// GET /api/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		// サービス層の入力検証と同じ基準で、到達前に拒否する
		writeError(w, http.StatusBadRequest, "有効なユーザーIDを指定してください")
		return
	}

	res := h.service.GetUserByID(r.Context(), id)
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*res.Data()))
}

// CreateUser は新規ユーザーを作成する。
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res := h.service.CreateUser(r.Context(), model.CreateUserData{
		Email: req.Email,
		Name:  req.Name,
	})
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*res.Data()))
}

// UpdateUser はユーザーを部分更新する。
// PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効なユーザーIDを指定してください")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res := h.service.UpdateUser(r.Context(), id, model.UpdateUserData{
		Email: req.Email,
		Name:  req.Name,
	})
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*res.Data()))
}

// DeleteUser はユーザーと所有する投稿を削除する。
// DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "有効なユーザーIDを指定してください")
		return
	}

	res := h.service.DeleteUser(r.Context(), id)
	if !res.Success() {
		writeDomainError(w, res.Err())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
