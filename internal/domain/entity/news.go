// Package entity defines the core domain entities and validation logic for the application.
// It contains the NewsSummary entity, the category set, and the default image
// mapping used whenever a record carries no image of its own.
package entity

import (
	"strings"
	"time"
)

// NewsSummary represents a single AI-summarized news item.
// Records are immutable after creation: they are written once by Seed or
// Ingest and never updated or deleted.
type NewsSummary struct {
	ID         string
	Title      string
	Summary    string
	SourceURL  string
	SourceName string
	Category   string
	ImageURL   string // empty means "use the category default"
	Timestamp  time.Time
	CreatedAt  time.Time
}

// Known categories. Unrecognized categories are stored as given; they only
// fall back to the general default image at render time.
const (
	CategoryTechnology    = "technology"
	CategoryBusiness      = "business"
	CategoryScience       = "science"
	CategoryHealth        = "health"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryWorld         = "world"
	CategoryGeneral       = "general"
)

// Categories lists the known category set in display order.
var Categories = []string{
	CategoryTechnology,
	CategoryBusiness,
	CategoryScience,
	CategoryHealth,
	CategorySports,
	CategoryEntertainment,
	CategoryWorld,
	CategoryGeneral,
}

// categoryImages maps each known category to its default image.
// The general entry doubles as the fallback for unrecognized categories.
var categoryImages = map[string]string{
	CategoryTechnology:    "https://images.unsplash.com/photo-1518770660439-4636190af475?w=800&q=80",
	CategoryBusiness:      "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&q=80",
	CategoryScience:       "https://images.unsplash.com/photo-1532094349884-543bc11b234d?w=800&q=80",
	CategoryHealth:        "https://images.unsplash.com/photo-1505751172876-fa1923c5c528?w=800&q=80",
	CategorySports:        "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=800&q=80",
	CategoryEntertainment: "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?w=800&q=80",
	CategoryWorld:         "https://images.unsplash.com/photo-1526778548025-fa2f459cd5c1?w=800&q=80",
	CategoryGeneral:       "https://images.unsplash.com/photo-1504711434969-e33886168f5c?w=800&q=80",
}

// IsKnownCategory reports whether c is a member of the known category set.
func IsKnownCategory(c string) bool {
	_, ok := categoryImages[NormalizeCategory(c)]
	return ok
}

// NormalizeCategory lowercases a category label and replaces spaces with
// underscores, matching how ingest derives categories from topic labels.
func NormalizeCategory(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
}

// DefaultImageURL returns the default image for a category.
// Unrecognized categories resolve to the general image.
func DefaultImageURL(category string) string {
	if url, ok := categoryImages[NormalizeCategory(category)]; ok {
		return url
	}
	return categoryImages[CategoryGeneral]
}

// ResolveImageURL returns the summary's own image when present, otherwise the
// category default. Every record stays presentable without client-side logic.
func (n *NewsSummary) ResolveImageURL() string {
	if n.ImageURL != "" {
		return n.ImageURL
	}
	return DefaultImageURL(n.Category)
}
