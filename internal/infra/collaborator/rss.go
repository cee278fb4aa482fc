package collaborator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/resilience/retry"
	"newsbrief/internal/usecase/news"
)

// googleNewsSearchURL is the RSS search endpoint used per topic.
const googleNewsSearchURL = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

// ImageFetcher resolves a representative image for an article page.
// Implemented by the og:image scraper; nil disables image enrichment.
type ImageFetcher interface {
	FetchOGImage(ctx context.Context, pageURL string) (string, error)
}

// RSS implements the summarization collaborator on top of public RSS search
// feeds. It produces real headlines without any AI API key; "summaries" are
// the feed descriptions with markup stripped and truncated.
type RSS struct {
	parser         *gofeed.Parser
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	images         ImageFetcher
	cfg            Config

	// feedURLTemplate takes the escaped topic; replaceable in tests.
	feedURLTemplate string
}

// NewRSS creates an RSS collaborator. Feed requests are rate limited to stay
// polite toward the upstream endpoint.
func NewRSS(cfg Config) *RSS {
	return &RSS{
		parser:          gofeed.NewParser(),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:     retry.FeedFetchConfig(),
		limiter:         rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		cfg:             cfg,
		feedURLTemplate: googleNewsSearchURL,
	}
}

// WithImageFetcher enables og:image enrichment for fetched items.
func (r *RSS) WithImageFetcher(f ImageFetcher) *RSS {
	r.images = f
	return r
}

// Summarize fetches one search feed per topic and maps entries to candidate
// items. Topics are fetched sequentially; the rate limiter would serialize
// them anyway.
func (r *RSS) Summarize(ctx context.Context, topics []string, count int) ([]news.CollaboratorItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	counts := splitCounts(count, len(topics))

	var items []news.CollaboratorItem
	for i, topic := range topics {
		if counts[i] == 0 {
			continue
		}
		topicItems, err := r.fetchTopic(ctx, topic, counts[i])
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", topic, err)
		}
		items = append(items, topicItems...)
	}
	return items, nil
}

func (r *RSS) fetchTopic(ctx context.Context, topic string, count int) ([]news.CollaboratorItem, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	feedURL := fmt.Sprintf(r.feedURLTemplate, url.QueryEscape(topic))

	var feed *gofeed.Feed
	retryErr := retry.WithBackoff(ctx, r.retryConfig, func() error {
		cbResult, err := r.circuitBreaker.Execute(func() (interface{}, error) {
			return r.parser.ParseURLWithContext(feedURL, ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("state", r.circuitBreaker.State().String()))
				return fmt.Errorf("feed endpoint unavailable: circuit breaker open")
			}
			return err
		}
		feed = cbResult.(*gofeed.Feed)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("fetch feed: %w", retryErr)
	}

	category := categoryForTopic(topic)

	items := make([]news.CollaboratorItem, 0, count)
	for _, entry := range feed.Items {
		if len(items) >= count {
			break
		}
		if entry.Title == "" || entry.Link == "" {
			continue
		}

		item := news.CollaboratorItem{
			Title:      entry.Title,
			Summary:    truncateRunes(stripHTML(entry.Description), r.cfg.SummaryCharLimit),
			SourceURL:  entry.Link,
			SourceName: sourceName(entry, feed),
			Category:   category,
		}

		if entry.Image != nil && entry.Image.URL != "" {
			item.ImageURL = entry.Image.URL
		} else if r.images != nil {
			// Best effort; a missing image falls back to the category default.
			if img, err := r.images.FetchOGImage(ctx, entry.Link); err == nil {
				item.ImageURL = img
			}
		}

		items = append(items, item)
	}

	slog.InfoContext(ctx, "fetched feed items",
		slog.String("topic", topic),
		slog.Int("items", len(items)))
	return items, nil
}

// categoryForTopic maps a topic label to a stored category. Topics matching
// the known category set are used directly; everything else lands in general.
func categoryForTopic(topic string) string {
	normalized := entity.NormalizeCategory(topic)
	if entity.IsKnownCategory(normalized) {
		return normalized
	}
	return entity.CategoryGeneral
}

// sourceName prefers the entry's author, then the feed title.
func sourceName(entry *gofeed.Item, feed *gofeed.Feed) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	if feed.Title != "" {
		return feed.Title
	}
	return "RSS"
}

// stripHTML flattens feed descriptions, which routinely carry markup, into
// plain text.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
