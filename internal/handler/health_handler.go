package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker はヘルスチェックでのDB疎通確認インターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はルートバナーとヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
	version string
	started time.Time
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(checker HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		version: version,
		started: time.Now(),
	}
}

// rootResponse はルートエンドポイントのレスポンス。
type rootResponse struct {
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status        string    `json:"status"`
	Database      string    `json:"database"`
	UptimeSeconds float64   `json:"uptime"`
	Timestamp     time.Time `json:"timestamp"`
}

// Root はサービスバナーを返す。
// GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message:   "Blog Backend API Server is running",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// Health はDB疎通を確認し、稼働状態を返す。
// 疎通に失敗した場合は503を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:        "Service Unavailable",
			Database:      "Disconnected",
			UptimeSeconds: time.Since(h.started).Seconds(),
			Timestamp:     time.Now().UTC(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "OK",
		Database:      "Connected",
		UptimeSeconds: time.Since(h.started).Seconds(),
		Timestamp:     time.Now().UTC(),
	})
}
