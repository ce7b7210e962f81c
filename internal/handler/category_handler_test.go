package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/result"
)

// --- モック ---

type mockCategoryService struct {
	getAllFn  func(ctx context.Context) result.Result[[]model.Category]
	getByIDFn func(ctx context.Context, id string) result.Result[*model.Category]
	createFn  func(ctx context.Context, data model.CreateCategoryData) result.Result[*model.Category]
	updateFn  func(ctx context.Context, id string, data model.UpdateCategoryData) result.Result[*model.Category]
	deleteFn  func(ctx context.Context, id string) result.Result[struct{}]
}

func (m *mockCategoryService) GetAllCategories(ctx context.Context) result.Result[[]model.Category] {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return result.OK([]model.Category{})
}
func (m *mockCategoryService) GetCategoryByID(ctx context.Context, id string) result.Result[*model.Category] {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return result.OK(&model.Category{ID: id})
}
func (m *mockCategoryService) CreateCategory(ctx context.Context, data model.CreateCategoryData) result.Result[*model.Category] {
	if m.createFn != nil {
		return m.createFn(ctx, data)
	}
	return result.OK(&model.Category{ID: "new-id", Name: data.Name, Slug: data.Slug})
}
func (m *mockCategoryService) UpdateCategory(ctx context.Context, id string, data model.UpdateCategoryData) result.Result[*model.Category] {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, data)
	}
	return result.OK(&model.Category{ID: id})
}
func (m *mockCategoryService) DeleteCategory(ctx context.Context, id string) result.Result[struct{}] {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return result.OK(struct{}{})
}

var _ CategoryServiceInterface = (*mockCategoryService)(nil)

func newCategoryTestRouter(svc CategoryServiceInterface) http.Handler {
	h := NewCategoryHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/categories", h.GetAllCategories)
	r.Post("/api/categories", h.CreateCategory)
	r.Get("/api/categories/{id}", h.GetCategoryByID)
	r.Put("/api/categories/{id}", h.UpdateCategory)
	r.Delete("/api/categories/{id}", h.DeleteCategory)
	return r
}

// --- テスト ---

func TestGetAllCategories_Returns200(t *testing.T) {
	svc := &mockCategoryService{
		getAllFn: func(ctx context.Context) result.Result[[]model.Category] {
			return result.OK([]model.Category{
				{ID: "c1", Name: "テクノロジー", Slug: "technology"},
				{ID: "c2", Name: "ライフスタイル", Slug: "lifestyle"},
			})
		},
	}
	router := newCategoryTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var categories []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&categories); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("len(categories) = %d, want 2", len(categories))
	}
	if categories[0]["slug"] != "technology" {
		t.Errorf("slug = %v, want technology", categories[0]["slug"])
	}
}

func TestCreateCategory_Returns201(t *testing.T) {
	router := newCategoryTestRouter(&mockCategoryService{})

	body := bytes.NewBufferString(`{"name":"テクノロジー","slug":"technology"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestCreateCategory_DuplicateSlug_Returns400(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(ctx context.Context, data model.CreateCategoryData) result.Result[*model.Category] {
			return result.Fail[*model.Category](model.NewConflictError("このスラッグは既に使用されています"))
		},
	}
	router := newCategoryTestRouter(svc)

	body := bytes.NewBufferString(`{"name":"テクノロジー","slug":"technology"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeError(t, rec.Body); msg != "このスラッグは既に使用されています" {
		t.Errorf("error = %q, want duplicate slug message", msg)
	}
}

func TestGetCategoryByID_NotFound_Returns404(t *testing.T) {
	svc := &mockCategoryService{
		getByIDFn: func(ctx context.Context, id string) result.Result[*model.Category] {
			return result.Fail[*model.Category](model.NewNotFoundError("カテゴリが見つかりません"))
		},
	}
	router := newCategoryTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateCategory_OmittedFields_PassNilToService(t *testing.T) {
	var got model.UpdateCategoryData
	svc := &mockCategoryService{
		updateFn: func(ctx context.Context, id string, data model.UpdateCategoryData) result.Result[*model.Category] {
			got = data
			return result.OK(&model.Category{ID: id})
		},
	}
	router := newCategoryTestRouter(svc)

	body := bytes.NewBufferString(`{"slug":"new-slug"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/categories/c1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.Name != nil {
		t.Errorf("Name = %v, want nil for omitted field", got.Name)
	}
	if got.Slug == nil || *got.Slug != "new-slug" {
		t.Errorf("Slug = %v, want new-slug", got.Slug)
	}
}

func TestDeleteCategory_Returns204(t *testing.T) {
	router := newCategoryTestRouter(&mockCategoryService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/c1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}
