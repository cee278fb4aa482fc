package feedview

import (
	"fmt"
	"strings"
	"time"

	"newsbrief/internal/domain/entity"
)

// Card is the fully resolved presentation of one news summary.
type Card struct {
	Title     string
	Summary   string
	Category  string
	TimeLabel string
	Source    string
	SourceURL string
	ImageURL  string
}

var labelReplacer = strings.NewReplacer("_", " ", "-", " ")

// CategoryLabel renders a category for display: upper-cased, with
// underscore and hyphen separators replaced by spaces.
func CategoryLabel(category string) string {
	return strings.ToUpper(strings.TrimSpace(labelReplacer.Replace(category)))
}

// RelativeTime computes the card's time label from the item timestamp:
// "Just now" under an hour, "Nh ago" under a day, otherwise a calendar date.
// Recomputed on every render, never cached.
func RelativeTime(ts, now time.Time) string {
	age := now.Sub(ts)
	if age < time.Hour {
		return "Just now"
	}
	if age < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	}
	return ts.Format("Jan 2, 2006")
}

// BuildCard maps a news summary into its card, resolving the image through
// the category default table when the record carries none.
func BuildCard(n *entity.NewsSummary, now time.Time) Card {
	return Card{
		Title:     n.Title,
		Summary:   n.Summary,
		Category:  CategoryLabel(n.Category),
		TimeLabel: RelativeTime(n.Timestamp, now),
		Source:    n.SourceName,
		SourceURL: n.SourceURL,
		ImageURL:  n.ResolveImageURL(),
	}
}

// Render produces the terminal representation of a card.
func (c Card) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", c.Category, c.TimeLabel)
	fmt.Fprintf(&b, "%s\n", c.Title)
	if c.Summary != "" {
		fmt.Fprintf(&b, "%s\n", c.Summary)
	}
	fmt.Fprintf(&b, "%s | %s\n", c.Source, c.SourceURL)
	fmt.Fprintf(&b, "image: %s\n", c.ImageURL)
	return b.String()
}
