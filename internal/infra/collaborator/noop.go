package collaborator

import (
	"context"
	"fmt"
	"strings"

	"newsbrief/internal/usecase/news"
)

// Noop is a collaborator that fabricates deterministic placeholder items.
// This is useful for local development and tests when no external API or
// network access is available.
type Noop struct{}

// NewNoop creates a new Noop collaborator.
func NewNoop() *Noop {
	return &Noop{}
}

// Summarize returns count placeholder items cycling through the topics.
func (n *Noop) Summarize(_ context.Context, topics []string, count int) ([]news.CollaboratorItem, error) {
	if len(topics) == 0 {
		return nil, nil
	}
	items := make([]news.CollaboratorItem, 0, count)
	for i := 0; i < count; i++ {
		topic := topics[i%len(topics)]
		slug := strings.ReplaceAll(strings.ToLower(topic), " ", "-")
		items = append(items, news.CollaboratorItem{
			Title:      fmt.Sprintf("Placeholder story %d about %s", i+1, topic),
			Summary:    fmt.Sprintf("Generated placeholder summary %d for the %s topic.", i+1, topic),
			SourceURL:  fmt.Sprintf("https://example.com/%s/%d", slug, i+1),
			SourceName: "Placeholder Wire",
			Category:   categoryForTopic(topic),
		})
	}
	return items, nil
}
