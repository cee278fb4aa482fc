package collaborator

import (
	"encoding/json"
	"fmt"
	"strings"

	"newsbrief/internal/usecase/news"
	"newsbrief/internal/utils/text"
)

// itemPayload is the JSON shape the AI providers are asked to produce.
type itemPayload struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	SourceURL  string `json:"source_url"`
	SourceName string `json:"source_name"`
	Category   string `json:"category"`
}

// buildTopicPrompt constructs the per-topic prompt. The model is asked for a
// bare JSON array so the response can be parsed without free-text cleanup.
func buildTopicPrompt(topic string, count, charLimit int) string {
	return fmt.Sprintf(`You are a news briefing assistant. Generate %d recent news summaries about "%s".

Respond with ONLY a JSON array, no prose and no code fences. Each element:
{"title": "...", "summary": "...", "source_url": "https://...", "source_name": "...", "category": "..."}

Rules:
- summary: at most %d characters, neutral tone, self-contained
- source_url: a plausible https URL for the story
- category: one of technology, business, science, health, sports, entertainment, world, general`,
		count, topic, charLimit)
}

// parseItemsJSON parses a model response into collaborator items.
// Code fences are tolerated even though the prompt forbids them; models add
// them often enough that rejecting the response outright loses good data.
func parseItemsJSON(raw string) ([]news.CollaboratorItem, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payloads []itemPayload
	if err := json.Unmarshal([]byte(cleaned), &payloads); err != nil {
		return nil, fmt.Errorf("parse collaborator response: %w", err)
	}

	items := make([]news.CollaboratorItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, news.CollaboratorItem{
			Title:      strings.TrimSpace(p.Title),
			Summary:    strings.TrimSpace(p.Summary),
			SourceURL:  strings.TrimSpace(p.SourceURL),
			SourceName: strings.TrimSpace(p.SourceName),
			Category:   strings.TrimSpace(p.Category),
		})
	}
	return items, nil
}

// splitCounts distributes count items across n topics as evenly as possible.
// Earlier topics absorb the remainder, so the sum always equals count.
func splitCounts(count, n int) []int {
	if n <= 0 {
		return nil
	}
	counts := make([]int, n)
	base := count / n
	remainder := count % n
	for i := range counts {
		counts[i] = base
		if i < remainder {
			counts[i]++
		}
	}
	return counts
}

// truncateRunes caps s at limit runes, appending an ellipsis when truncated.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || text.CountRunes(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
