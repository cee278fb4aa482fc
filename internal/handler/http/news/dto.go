// Package news provides HTTP handlers for the news feed endpoints.
// It includes handlers for listing summaries, triggering ingestion, and
// seeding sample data.
package news

import (
	"time"

	"newsbrief/internal/domain/entity"
)

// DTO represents the JSON structure for one news summary.
type DTO struct {
	ID         string    `json:"id" example:"9b4f2c1a-3d0e-4b7f-8f25-6c9a1e2d4f60"`
	Title      string    `json:"title" example:"AI Breakthrough: New Language Model Sets Performance Records"`
	Summary    string    `json:"summary" example:"Researchers unveiled a language model that..."`
	SourceURL  string    `json:"source_url" example:"https://example.com/news/1"`
	SourceName string    `json:"source_name" example:"TechWire Daily"`
	Category   string    `json:"category" example:"technology"`
	ImageURL   *string   `json:"image_url" example:"https://images.unsplash.com/photo-1518770660439"`
	Timestamp  time.Time `json:"timestamp" example:"2026-08-25T10:00:00Z"`
	CreatedAt  time.Time `json:"created_at" example:"2026-08-25T10:00:00Z"`
}

// toDTO converts an entity to its wire shape. image_url is null when the
// record has none; clients resolve the category default themselves.
func toDTO(n *entity.NewsSummary) DTO {
	dto := DTO{
		ID:         n.ID,
		Title:      n.Title,
		Summary:    n.Summary,
		SourceURL:  n.SourceURL,
		SourceName: n.SourceName,
		Category:   n.Category,
		Timestamp:  n.Timestamp,
		CreatedAt:  n.CreatedAt,
	}
	if n.ImageURL != "" {
		img := n.ImageURL
		dto.ImageURL = &img
	}
	return dto
}

func toDTOs(items []*entity.NewsSummary) []DTO {
	dtos := make([]DTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item))
	}
	return dtos
}

// listResponse is the envelope for GET /api/news.
type listResponse struct {
	Success   bool   `json:"success"`
	Count     int    `json:"count"`
	Category  string `json:"category"`
	NewsItems []DTO  `json:"news_items"`
}

// fetchResponse is the envelope for POST /api/news/fetch.
type fetchResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	NewsItems []DTO  `json:"news_items"`
}

// seedResponse is the envelope for POST /api/news/seed.
type seedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// errorResponse is the envelope for any failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
