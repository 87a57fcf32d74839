package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iconidentify/shortsnext/internal/domain"
	"github.com/iconidentify/shortsnext/internal/extract"
	"github.com/iconidentify/shortsnext/internal/service"
)

// NextFinder resolves the next videos for a Shorts URL.
type NextFinder interface {
	Next(ctx context.Context, req service.NextRequest) (*domain.NextResult, error)
}

// ShortsHandler handles Shorts extraction requests.
type ShortsHandler struct {
	shortsSvc NextFinder
	logger    *slog.Logger
}

// NewShortsHandler creates a new shorts handler.
func NewShortsHandler(shortsSvc NextFinder, logger *slog.Logger) *ShortsHandler {
	return &ShortsHandler{
		shortsSvc: shortsSvc,
		logger:    logger,
	}
}

// ErrorResponse is the JSON body of every non-200 response.
type ErrorResponse struct {
	Error     string          `json:"error"`
	Details   string          `json:"details,omitempty"`
	Debug     string          `json:"debug,omitempty"`
	DebugKeys map[string]bool `json:"debug_keys,omitempty"`
}

// Next handles GET /api and GET /api/v1/shorts/next
func (h *ShortsHandler) Next(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.shortsSvc.Next(r.Context(), service.NextRequest{
		URL:      q.Get("url"),
		Cookies:  q.Get("cookies"),
		Strategy: extract.Strategy(q.Get("strategy")),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *ShortsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidShortsURL):
		h.writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: "Please provide a valid YouTube Shorts URL (?url=...)",
		})
		return
	case errors.Is(err, domain.ErrUnknownStrategy):
		h.writeError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Unknown extraction strategy",
			Details: err.Error(),
		})
		return
	case errors.Is(err, domain.ErrConsentRequired):
		h.writeError(w, http.StatusForbidden, ErrorResponse{
			Error:   "Blocked by YouTube consent page",
			Details: "pass a consent cookie with ?cookies=...",
		})
		return
	}

	resp := ErrorResponse{
		Error:   "Failed to scrape data",
		Details: err.Error(),
	}

	var extErr *domain.ExtractionError
	if errors.As(err, &extErr) {
		resp.Debug = extErr.Strategy + ": " + extErr.Op
		resp.DebugKeys = extErr.DebugKeys
	}

	switch {
	case errors.Is(err, domain.ErrSequenceNotFound):
		resp.Error = "Could not find Shorts sequence data in HTML"
	case errors.Is(err, domain.ErrAPIKeyNotFound), errors.Is(err, domain.ErrContinuationNotFound):
		resp.Error = "Could not find InnerTube credentials in HTML"
	case errors.Is(err, domain.ErrMalformedJSON):
		resp.Error = "Failed to parse Shorts sequence data"
	case errors.Is(err, domain.ErrInnerTubeFailed):
		resp.Error = "Reel watch sequence request failed"
	}

	h.logger.Error("shorts extraction failed",
		"url", r.URL.Query().Get("url"),
		"error", err,
	)
	h.writeError(w, http.StatusInternalServerError, resp)
}

func (h *ShortsHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *ShortsHandler) writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	h.writeJSON(w, status, resp)
}
