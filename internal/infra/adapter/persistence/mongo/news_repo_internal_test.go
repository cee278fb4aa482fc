package mongo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"newsbrief/internal/domain/entity"
)

func TestNewsDocumentMapping_RoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	want := &entity.NewsSummary{
		ID:         "a2b7c1d0-0000-0000-0000-000000000001",
		Title:      "Quantum chip milestone",
		Summary:    "A short summary.",
		SourceURL:  "https://example.com/quantum",
		SourceName: "Example News",
		Category:   "science",
		ImageURL:   "https://example.com/pic.jpg",
		Timestamp:  now,
		CreatedAt:  now,
	}

	got := fromEntity(want).toEntity()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// image_url は未設定のとき null として保存される
func TestNewsDocumentMapping_MissingImage(t *testing.T) {
	item := &entity.NewsSummary{ID: "x", Title: "t", Category: "general"}

	doc := fromEntity(item)
	if doc.ImageURL != nil {
		t.Fatalf("ImageURL pointer = %v, want nil for empty image", *doc.ImageURL)
	}
	if got := doc.toEntity(); got.ImageURL != "" {
		t.Fatalf("toEntity ImageURL = %q, want empty", got.ImageURL)
	}
}
