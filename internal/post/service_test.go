package post

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/taku10101/blog-backend/internal/model"
	"github.com/taku10101/blog-backend/internal/repository"
)

// --- モック ---

type mockPostRepo struct {
	findAllFn  func(ctx context.Context) ([]model.Post, error)
	findByIDFn func(ctx context.Context, id string) (*model.Post, error)
	createFn   func(ctx context.Context, data model.CreatePostData) (*model.Post, error)
	updateFn   func(ctx context.Context, id string, data model.UpdatePostData) (*model.Post, error)
	deleteFn   func(ctx context.Context, id string) error
	existsFn   func(ctx context.Context, id string) (bool, error)
}

func (m *mockPostRepo) FindAll(ctx context.Context) ([]model.Post, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []model.Post{}, nil
}
func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPostRepo) Create(ctx context.Context, data model.CreatePostData) (*model.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, data)
	}
	return &model.Post{ID: "new-id", Title: data.Title, Content: data.Content, AuthorID: data.AuthorID}, nil
}
func (m *mockPostRepo) Update(ctx context.Context, id string, data model.UpdatePostData) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, data)
	}
	return &model.Post{ID: id}, nil
}
func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockPostRepo) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

var _ repository.PostRepository = (*mockPostRepo)(nil)

type mockAuthorChecker struct {
	existsFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockAuthorChecker) Exists(ctx context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

type mockSanitizer struct {
	sanitizeFn func(content string) string
}

func (m *mockSanitizer) Sanitize(content string) string {
	if m.sanitizeFn != nil {
		return m.sanitizeFn(content)
	}
	return content
}

func strPtr(s string) *string { return &s }

func newTestService(repo *mockPostRepo) *Service {
	return NewService(repo, &mockAuthorChecker{}, &mockSanitizer{})
}

// --- GetAllPosts ---

func TestGetAllPosts_ReturnsPosts(t *testing.T) {
	repo := &mockPostRepo{
		findAllFn: func(ctx context.Context) ([]model.Post, error) {
			return []model.Post{
				{ID: "p1", Title: "最初の投稿"},
				{ID: "p2", Title: "2番目の投稿"},
			}, nil
		},
	}
	svc := newTestService(repo)

	res := svc.GetAllPosts(context.Background())
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if len(res.Data()) != 2 {
		t.Errorf("len(posts) = %d, want 2", len(res.Data()))
	}
}

func TestGetAllPosts_RepoError_ReturnsUnexpected(t *testing.T) {
	repo := &mockPostRepo{
		findAllFn: func(ctx context.Context) ([]model.Post, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(repo)

	res := svc.GetAllPosts(context.Background())
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", res.StatusCode())
	}
}

// --- GetPostByID ---

func TestGetPostByID_EmptyID_ReturnsValidation(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.GetPostByID(context.Background(), "")
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Kind != model.ErrKindValidation {
		t.Errorf("Kind = %q, want %q", res.Err().Kind, model.ErrKindValidation)
	}
}

func TestGetPostByID_NotFound_Returns404(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.GetPostByID(context.Background(), "missing")
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Kind != model.ErrKindNotFound {
		t.Errorf("Kind = %q, want %q", res.Err().Kind, model.ErrKindNotFound)
	}
	if res.Err().Message != msgPostNotFound {
		t.Errorf("Message = %q, want %q", res.Err().Message, msgPostNotFound)
	}
}

// --- CreatePost ---

func TestCreatePost_Succeeds(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.CreatePost(context.Background(), model.CreatePostData{
		Title:    "新しい投稿",
		Content:  strPtr("本文です。"),
		AuthorID: "u1",
	})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if res.Data().Title != "新しい投稿" {
		t.Errorf("Title = %q, want %q", res.Data().Title, "新しい投稿")
	}
}

func TestCreatePost_MissingTitle_ReturnsValidation(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.CreatePost(context.Background(), model.CreatePostData{AuthorID: "u1"})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Message != msgTitleRequired {
		t.Errorf("Message = %q, want %q", res.Err().Message, msgTitleRequired)
	}
}

func TestCreatePost_MissingAuthorID_ReturnsValidation(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.CreatePost(context.Background(), model.CreatePostData{Title: "投稿"})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Message != msgAuthorRequired {
		t.Errorf("Message = %q, want %q", res.Err().Message, msgAuthorRequired)
	}
}

// TestCreatePost_MissingAuthor_Returns404 は存在しない著者を指定した作成が
// 404になることを検証する。
func TestCreatePost_MissingAuthor_Returns404(t *testing.T) {
	authors := &mockAuthorChecker{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(&mockPostRepo{}, authors, &mockSanitizer{})

	res := svc.CreatePost(context.Background(), model.CreatePostData{
		Title:    "投稿",
		AuthorID: "ghost",
	})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Kind != model.ErrKindNotFound {
		t.Errorf("Kind = %q, want %q", res.Err().Kind, model.ErrKindNotFound)
	}
	if res.Err().Message != msgAuthorNotFound {
		t.Errorf("Message = %q, want %q", res.Err().Message, msgAuthorNotFound)
	}
}

// TestCreatePost_SanitizesContent は保存前に本文がサニタイズされることを検証する。
func TestCreatePost_SanitizesContent(t *testing.T) {
	var saved *string
	repo := &mockPostRepo{
		createFn: func(ctx context.Context, data model.CreatePostData) (*model.Post, error) {
			saved = data.Content
			return &model.Post{ID: "p1", Title: data.Title, Content: data.Content}, nil
		},
	}
	sanitizer := &mockSanitizer{
		sanitizeFn: func(content string) string {
			return "クリーンな本文"
		},
	}
	svc := NewService(repo, &mockAuthorChecker{}, sanitizer)

	res := svc.CreatePost(context.Background(), model.CreatePostData{
		Title:    "投稿",
		Content:  strPtr("<script>alert(1)</script>"),
		AuthorID: "u1",
	})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if saved == nil || *saved != "クリーンな本文" {
		t.Errorf("saved content = %v, want sanitized content", saved)
	}
}

func TestCreatePost_NilContent_StaysNil(t *testing.T) {
	var saved *string
	called := false
	repo := &mockPostRepo{
		createFn: func(ctx context.Context, data model.CreatePostData) (*model.Post, error) {
			saved = data.Content
			return &model.Post{ID: "p1"}, nil
		},
	}
	sanitizer := &mockSanitizer{
		sanitizeFn: func(content string) string {
			called = true
			return content
		},
	}
	svc := NewService(repo, &mockAuthorChecker{}, sanitizer)

	res := svc.CreatePost(context.Background(), model.CreatePostData{
		Title:    "投稿",
		AuthorID: "u1",
	})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if saved != nil {
		t.Errorf("saved content = %v, want nil", saved)
	}
	if called {
		t.Error("sanitizer should not be called for nil content")
	}
}

// --- UpdatePost ---

func TestUpdatePost_Succeeds(t *testing.T) {
	repo := &mockPostRepo{
		updateFn: func(ctx context.Context, id string, data model.UpdatePostData) (*model.Post, error) {
			return &model.Post{ID: id, Title: *data.Title, Published: *data.Published}, nil
		},
	}
	svc := newTestService(repo)

	published := true
	res := svc.UpdatePost(context.Background(), "p1", model.UpdatePostData{
		Title:     strPtr("更新後のタイトル"),
		Published: &published,
	})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	if !res.Data().Published {
		t.Error("Published should be true")
	}
}

func TestUpdatePost_MissingPost_Returns404(t *testing.T) {
	repo := &mockPostRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(repo)

	res := svc.UpdatePost(context.Background(), "missing", model.UpdatePostData{})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Kind != model.ErrKindNotFound {
		t.Errorf("Kind = %q, want %q", res.Err().Kind, model.ErrKindNotFound)
	}
}

// TestUpdatePost_EmptyTitle_ReturnsValidation は空文字列へのタイトル更新が
// 拒否されることを検証する（省略との区別）。
func TestUpdatePost_EmptyTitle_ReturnsValidation(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.UpdatePost(context.Background(), "p1", model.UpdatePostData{
		Title: strPtr(""),
	})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Message != msgTitleRequired {
		t.Errorf("Message = %q, want %q", res.Err().Message, msgTitleRequired)
	}
}

// --- DeletePost ---

func TestDeletePost_Succeeds(t *testing.T) {
	svc := newTestService(&mockPostRepo{})

	res := svc.DeletePost(context.Background(), "p1")
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err())
	}
}

func TestDeletePost_MissingPost_Returns404(t *testing.T) {
	repo := &mockPostRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	svc := newTestService(repo)

	res := svc.DeletePost(context.Background(), "missing")
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Kind != model.ErrKindNotFound {
		t.Errorf("Kind = %q, want %q", res.Err().Kind, model.ErrKindNotFound)
	}
}

func TestDeletePost_RaceNotFound_Returns404(t *testing.T) {
	repo := &mockPostRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return &repository.StoreError{Kind: repository.StoreErrNotFound, Err: errors.New("no rows affected")}
		},
	}
	svc := newTestService(repo)

	res := svc.DeletePost(context.Background(), "p1")
	if res.Success() {
		t.Fatal("expected failure")
	}
	if res.Err().Kind != model.ErrKindNotFound {
		t.Errorf("Kind = %q, want %q", res.Err().Kind, model.ErrKindNotFound)
	}
}
