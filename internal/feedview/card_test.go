package feedview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"newsbrief/internal/domain/entity"
)

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"technology", "TECHNOLOGY"},
		{"machine_learning", "MACHINE LEARNING"},
		{"sci-fi", "SCI FI"},
		{"  world  ", "WORLD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryLabel(tt.in), "input %q", tt.in)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"just published", now.Add(-5 * time.Minute), "Just now"},
		{"boundary under an hour", now.Add(-59 * time.Minute), "Just now"},
		{"three hours old", now.Add(-3 * time.Hour), "3h ago"},
		{"almost a day", now.Add(-23 * time.Hour), "23h ago"},
		{"older than a day", now.Add(-48 * time.Hour), "Aug 23, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.ts, now))
		})
	}
}

func TestBuildCard_ResolvesDefaultImage(t *testing.T) {
	now := time.Now()
	n := &entity.NewsSummary{
		Title:      "Fusion milestone",
		Summary:    "Net energy gain sustained for a full minute.",
		SourceName: "Science Daily",
		SourceURL:  "https://example.com/fusion",
		Category:   entity.CategoryScience,
		Timestamp:  now.Add(-2 * time.Hour),
	}

	card := BuildCard(n, now)

	assert.Equal(t, "SCIENCE", card.Category)
	assert.Equal(t, "2h ago", card.TimeLabel)
	assert.Equal(t, entity.DefaultImageURL(entity.CategoryScience), card.ImageURL)
}

func TestBuildCard_KeepsOwnImage(t *testing.T) {
	n := &entity.NewsSummary{
		Title:     "Launch day",
		Category:  entity.CategoryTechnology,
		ImageURL:  "https://example.com/launch.jpg",
		Timestamp: time.Now(),
	}

	card := BuildCard(n, time.Now())
	assert.Equal(t, "https://example.com/launch.jpg", card.ImageURL)
}

func TestCard_Render(t *testing.T) {
	card := Card{
		Title:     "Fusion milestone",
		Summary:   "Net energy gain sustained.",
		Category:  "SCIENCE",
		TimeLabel: "2h ago",
		Source:    "Science Daily",
		SourceURL: "https://example.com/fusion",
		ImageURL:  "https://example.com/img.jpg",
	}

	out := card.Render()
	assert.Contains(t, out, "[SCIENCE] 2h ago")
	assert.Contains(t, out, "Fusion milestone")
	assert.Contains(t, out, "Science Daily | https://example.com/fusion")
	assert.Contains(t, out, "image: https://example.com/img.jpg")
}
