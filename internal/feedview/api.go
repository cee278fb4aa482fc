package feedview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/pkg/config"
)

// APIClient talks to the news API over HTTP and implements Fetcher.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates an API client for the given base URL.
// An empty baseURL falls back to NEWS_API_URL, then http://localhost:8080.
func NewAPIClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = config.GetEnvString("NEWS_API_URL", "http://localhost:8080")
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type newsItemPayload struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	SourceURL  string    `json:"source_url"`
	SourceName string    `json:"source_name"`
	Category   string    `json:"category"`
	ImageURL   *string   `json:"image_url"`
	Timestamp  time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
}

type listPayload struct {
	Success   bool              `json:"success"`
	Count     int               `json:"count"`
	Category  string            `json:"category"`
	NewsItems []newsItemPayload `json:"news_items"`
}

type seedPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// List fetches news summaries for a category.
func (a *APIClient) List(ctx context.Context, category string, limit int) ([]*entity.NewsSummary, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	endpoint := a.baseURL + "/api/news"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("list news", resp)
	}

	var payload listPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	items := make([]*entity.NewsSummary, 0, len(payload.NewsItems))
	for _, p := range payload.NewsItems {
		items = append(items, p.toEntity())
	}
	return items, nil
}

// Seed asks the API to populate sample data and returns the number of
// records created (0 when the store was already populated).
func (a *APIClient) Seed(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/news/seed", nil)
	if err != nil {
		return 0, fmt.Errorf("build seed request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("seed news: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, apiError("seed news", resp)
	}

	var payload seedPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode seed response: %w", err)
	}
	return payload.Count, nil
}

func (p newsItemPayload) toEntity() *entity.NewsSummary {
	imageURL := ""
	if p.ImageURL != nil {
		imageURL = *p.ImageURL
	}
	return &entity.NewsSummary{
		ID:         p.ID,
		Title:      p.Title,
		Summary:    p.Summary,
		SourceURL:  p.SourceURL,
		SourceName: p.SourceName,
		Category:   p.Category,
		ImageURL:   imageURL,
		Timestamp:  p.Timestamp,
		CreatedAt:  p.CreatedAt,
	}
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s: %s (status %d)", op, payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
}
