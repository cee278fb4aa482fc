package news_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	newsHTTP "newsbrief/internal/handler/http/news"
	newsUC "newsbrief/internal/usecase/news"
)

func TestFetchHandler_Success(t *testing.T) {
	repo := &stubNewsRepo{}
	collab := &stubCollaborator{
		items: []newsUC.CollaboratorItem{
			{
				Title:      "AI model released",
				Summary:    "A new model was released.",
				SourceURL:  "https://example.com/ai",
				SourceName: "Tech Wire",
				Category:   "technology",
			},
			{
				Title:      "Markets climb",
				Summary:    "Stocks rose broadly.",
				SourceURL:  "https://example.com/markets",
				SourceName: "Biz Wire",
				Category:   "business",
			},
		},
	}
	handler := newsHTTP.FetchHandler{Svc: newService(repo, collab), Logger: testLogger}

	body := `{"topics": ["technology", "business"], "count": 2}`
	req := httptest.NewRequest(http.MethodPost, "/api/news/fetch", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var result struct {
		Success   bool           `json:"success"`
		Message   string         `json:"message"`
		NewsItems []newsHTTP.DTO `json:"news_items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		t.Error("success = false, want true")
	}
	if len(result.NewsItems) != 2 {
		t.Fatalf("news_items length = %d, want 2", len(result.NewsItems))
	}
	if result.NewsItems[0].ID == "" {
		t.Error("news_items[0].id is empty, want generated ID")
	}
	if result.NewsItems[0].Timestamp.IsZero() {
		t.Error("news_items[0].timestamp is zero")
	}

	// ストアに保存されている
	if len(repo.created) != 1 {
		t.Fatalf("created batches = %d, want 1", len(repo.created))
	}
}

func TestFetchHandler_InvalidBody(t *testing.T) {
	handler := newsHTTP.FetchHandler{Svc: newService(&stubNewsRepo{}, nil), Logger: testLogger}

	req := httptest.NewRequest(http.MethodPost, "/api/news/fetch", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestFetchHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero count", `{"topics": ["tech"], "count": 0}`},
		{"negative count", `{"topics": ["tech"], "count": -1}`},
		{"empty topics", `{"topics": [], "count": 5}`},
		{"missing topics", `{"count": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newsHTTP.FetchHandler{Svc: newService(&stubNewsRepo{}, nil), Logger: testLogger}

			req := httptest.NewRequest(http.MethodPost, "/api/news/fetch", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}

			var result struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result.Success {
				t.Error("success = true, want false")
			}
		})
	}
}

func TestFetchHandler_CollaboratorFailure(t *testing.T) {
	repo := &stubNewsRepo{}
	collab := &stubCollaborator{err: errors.New("upstream timeout")}
	handler := newsHTTP.FetchHandler{Svc: newService(repo, collab), Logger: testLogger}

	body := `{"topics": ["technology"], "count": 3}`
	req := httptest.NewRequest(http.MethodPost, "/api/news/fetch", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadGateway)
	}

	// 失敗時は何も書き込まない
	if len(repo.created) != 0 {
		t.Errorf("created batches = %d, want 0", len(repo.created))
	}
}

func TestFetchHandler_StoreFailure(t *testing.T) {
	repo := &stubNewsRepo{createErr: errors.New("insert failed")}
	collab := &stubCollaborator{
		items: []newsUC.CollaboratorItem{
			{Title: "Item", Summary: "S", SourceURL: "https://example.com/x", Category: "general"},
		},
	}
	handler := newsHTTP.FetchHandler{Svc: newService(repo, collab), Logger: testLogger}

	body := `{"topics": ["general"], "count": 1}`
	req := httptest.NewRequest(http.MethodPost, "/api/news/fetch", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
