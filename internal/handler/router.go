package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taku10101/blog-backend/internal/metrics"
	"github.com/taku10101/blog-backend/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	MetricsRecorder   metrics.Recorder
	MetricsGatherer   prometheus.Gatherer

	// ヘルスチェック
	HealthChecker HealthChecker
	Version       string

	// ドメインサービス
	UserService     UserServiceInterface
	PostService     PostServiceInterface
	CategoryService CategoryServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders → Metrics → CORS
//
// /api配下には一般レート制限、更新系（POST/PUT/DELETE）には更新専用レート制限を追加する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.MetricsRecorder != nil {
		r.Use(metrics.Middleware(deps.MetricsRecorder))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	healthHandler := NewHealthHandler(deps.HealthChecker, deps.Version)
	userHandler := NewUserHandler(deps.UserService)
	postHandler := NewPostHandler(deps.PostService)
	categoryHandler := NewCategoryHandler(deps.CategoryService)

	// --- 運用系ルート（レート制限の外） ---

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	if deps.MetricsGatherer != nil {
		r.Get("/metrics", metrics.Handler(deps.MetricsGatherer).ServeHTTP)
	}

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit(General)、更新系は追加でRateLimit(Mutation)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())
		mutation := deps.RateLimiter.MutationMiddleware()

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.GetAllUsers)
			r.With(mutation).Post("/", userHandler.CreateUser)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUserByID)
				r.With(mutation).Put("/", userHandler.UpdateUser)
				r.With(mutation).Delete("/", userHandler.DeleteUser)
			})
		})

		// 投稿管理
		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", postHandler.GetAllPosts)
			r.With(mutation).Post("/", postHandler.CreatePost)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", postHandler.GetPostByID)
				r.With(mutation).Put("/", postHandler.UpdatePost)
				r.With(mutation).Delete("/", postHandler.DeletePost)
			})
		})

		// カテゴリ管理
		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetAllCategories)
			r.With(mutation).Post("/", categoryHandler.CreateCategory)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", categoryHandler.GetCategoryByID)
				r.With(mutation).Put("/", categoryHandler.UpdateCategory)
				r.With(mutation).Delete("/", categoryHandler.DeleteCategory)
			})
		})
	})

	return r
}
