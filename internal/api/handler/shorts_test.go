package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iconidentify/shortsnext/internal/domain"
	"github.com/iconidentify/shortsnext/internal/extract"
)

func TestNewShortsHandler(t *testing.T) {
	handler := NewShortsHandler(&mockShortsService{}, testLogger())

	if handler == nil {
		t.Fatal("handler should not be nil")
	}
}

func TestShortsHandler_Next_Success(t *testing.T) {
	svc := &mockShortsService{
		result: domain.NewNextResult([]domain.NextVideo{
			{
				VideoID:   "bbbbbbbbbbb",
				URL:       domain.ShortsURL("bbbbbbbbbbb"),
				Thumbnail: domain.ThumbnailURL("bbbbbbbbbbb"),
			},
		}, "aaaaaaaaaaa"),
	}
	handler := NewShortsHandler(svc, testLogger())

	target := "/api?url=" + url.QueryEscape("https://www.youtube.com/shorts/aaaaaaaaaaa") +
		"&cookies=" + url.QueryEscape("SOCS=abc") + "&strategy=scan"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	handler.Next(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	if svc.lastReq.URL != "https://www.youtube.com/shorts/aaaaaaaaaaa" {
		t.Errorf("URL = %q", svc.lastReq.URL)
	}
	if svc.lastReq.Cookies != "SOCS=abc" {
		t.Errorf("Cookies = %q, want %q", svc.lastReq.Cookies, "SOCS=abc")
	}
	if svc.lastReq.Strategy != extract.StrategyScan {
		t.Errorf("Strategy = %q, want %q", svc.lastReq.Strategy, extract.StrategyScan)
	}

	var resp struct {
		Count          int                `json:"count"`
		NextVideos     []domain.NextVideo `json:"nextVideos"`
		CurrentVideoID string             `json:"currentVideoId"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != len(resp.NextVideos) {
		t.Errorf("count = %d, len(nextVideos) = %d", resp.Count, len(resp.NextVideos))
	}
	if resp.CurrentVideoID != "aaaaaaaaaaa" {
		t.Errorf("currentVideoId = %q, want %q", resp.CurrentVideoID, "aaaaaaaaaaa")
	}
}

func TestShortsHandler_Next_EmptyResult(t *testing.T) {
	svc := &mockShortsService{result: domain.NewNextResult(nil, "")}
	handler := NewShortsHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api?url=https://www.youtube.com/shorts/aaaaaaaaaaa", nil)
	w := httptest.NewRecorder()

	handler.Next(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["count"] != float64(0) {
		t.Errorf("count = %v, want 0", body["count"])
	}
	if videos, ok := body["nextVideos"].([]any); !ok || len(videos) != 0 {
		t.Errorf("nextVideos = %v, want empty array", body["nextVideos"])
	}
	if _, ok := body["currentVideoId"]; ok {
		t.Error("currentVideoId should be omitted when unknown")
	}
}

func TestShortsHandler_Next_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantError   string
		wantDetails bool
	}{
		{
			name:       "invalid url",
			err:        domain.ErrInvalidShortsURL,
			wantStatus: http.StatusBadRequest,
			wantError:  "Please provide a valid YouTube Shorts URL (?url=...)",
		},
		{
			name:        "unknown strategy",
			err:         fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, "bogus"),
			wantStatus:  http.StatusBadRequest,
			wantError:   "Unknown extraction strategy",
			wantDetails: true,
		},
		{
			name:        "consent page",
			err:         domain.ErrConsentRequired,
			wantStatus:  http.StatusForbidden,
			wantError:   "Blocked by YouTube consent page",
			wantDetails: true,
		},
		{
			name:        "sequence missing",
			err:         domain.NewExtractionError("sequence", "locate sequence", domain.ErrSequenceNotFound),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Could not find Shorts sequence data in HTML",
			wantDetails: true,
		},
		{
			name: "malformed json",
			err: domain.NewExtractionError("sequence", "parse sequence",
				fmt.Errorf("%w: %w", domain.ErrMalformedJSON, errors.New("unexpected end of JSON input"))),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Failed to parse Shorts sequence data",
			wantDetails: true,
		},
		{
			name:        "innertube failure",
			err:         domain.NewExtractionError("rpc", "reel watch sequence", domain.ErrInnerTubeFailed),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Reel watch sequence request failed",
			wantDetails: true,
		},
		{
			name:        "network failure",
			err:         fmt.Errorf("%w: %w", domain.ErrFetchFailed, errors.New("dial tcp: i/o timeout")),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Failed to scrape data",
			wantDetails: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewShortsHandler(&mockShortsService{err: tt.err}, testLogger())

			req := httptest.NewRequest(http.MethodGet, "/api?url=x", nil)
			w := httptest.NewRecorder()

			handler.Next(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
			if tt.wantDetails && resp.Details == "" {
				t.Error("details should not be empty")
			}
			if !tt.wantDetails && resp.Details != "" {
				t.Errorf("details = %q, want empty", resp.Details)
			}
		})
	}
}

func TestShortsHandler_Next_DebugKeys(t *testing.T) {
	extErr := domain.NewExtractionError("rpc", "extract credentials",
		fmt.Errorf("%w; %w", domain.ErrAPIKeyNotFound, domain.ErrContinuationNotFound))
	extErr.DebugKeys = map[string]bool{
		extract.DebugKeyAPIKey:         false,
		extract.DebugKeySequenceParams: false,
	}
	handler := NewShortsHandler(&mockShortsService{err: extErr}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api?url=x", nil)
	w := httptest.NewRecorder()

	handler.Next(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Could not find InnerTube credentials in HTML" {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.Debug != "rpc: extract credentials" {
		t.Errorf("debug = %q, want %q", resp.Debug, "rpc: extract credentials")
	}

	apiKey, ok := resp.DebugKeys["apiKey"]
	if !ok || apiKey {
		t.Errorf("debug_keys.apiKey = %v (present %v), want false", apiKey, ok)
	}
	params, ok := resp.DebugKeys["sequenceParams"]
	if !ok || params {
		t.Errorf("debug_keys.sequenceParams = %v (present %v), want false", params, ok)
	}
}
