package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iconidentify/shortsnext/internal/api/handler"
	"github.com/iconidentify/shortsnext/internal/config"
	"github.com/iconidentify/shortsnext/internal/domain"
	"github.com/iconidentify/shortsnext/internal/extract"
	"github.com/iconidentify/shortsnext/internal/service"
)

type stubShortsService struct {
	calls int
}

func (s *stubShortsService) Next(ctx context.Context, req service.NextRequest) (*domain.NextResult, error) {
	s.calls++
	return domain.NewNextResult(nil, ""), nil
}

func (s *stubShortsService) DefaultStrategy() extract.Strategy {
	return extract.StrategySequence
}

func (s *stubShortsService) Strategies() []extract.Strategy {
	return []extract.Strategy{extract.StrategySequence}
}

func newTestRouter(cors bool) (http.Handler, *stubShortsService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := &stubShortsService{}
	cfg := config.Default().Server
	cfg.CORS = cors

	return NewRouter(
		handler.NewShortsHandler(svc, logger),
		handler.NewHealthHandler(svc),
		cfg,
	), svc
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCalls  int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, 0},
		{"ready", http.MethodGet, "/ready", http.StatusOK, 0},
		{"clean path", http.MethodGet, "//ready", http.StatusOK, 0},
		{"stats", http.MethodGet, "/api/v1/stats", http.StatusOK, 0},
		{"legacy api", http.MethodGet, "/api?url=https://www.youtube.com/shorts/aaaaaaaaaaa", http.StatusOK, 1},
		{"v1 next", http.MethodGet, "/api/v1/shorts/next?url=https://www.youtube.com/shorts/aaaaaaaaaaa", http.StatusOK, 1},
		{"preflight", http.MethodOptions, "/api", http.StatusOK, 0},
		{"post not allowed", http.MethodPost, "/api", http.StatusMethodNotAllowed, 0},
		{"unknown", http.MethodGet, "/nope", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newTestRouter(true)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if svc.calls != tt.wantCalls {
				t.Errorf("service calls = %d, want %d", svc.calls, tt.wantCalls)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID should be set")
			}
		})
	}
}

func TestRouter_CORSDisabled(t *testing.T) {
	router, _ := newTestRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
}
