package collaborator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/resilience/retry"
	"newsbrief/internal/usecase/news"
	"newsbrief/internal/utils/text"
)

// Claude implements the summarization collaborator using Anthropic's Claude API.
// It issues one request per topic, bounded by cfg.MaxParallel, and wraps each
// request with circuit breaker and retry logic.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	cfg             Config
	metricsRecorder ItemMetricsRecorder
}

// NewClaude creates a Claude collaborator with the given API key.
func NewClaude(apiKey string, cfg Config) *Claude {
	slog.Info("Initialized Claude collaborator",
		slog.Int("summary_char_limit", cfg.SummaryCharLimit),
		slog.Int("max_parallel", cfg.MaxParallel))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.CollaboratorConfig(),
		cfg:             cfg,
		metricsRecorder: NewPrometheusItemMetrics(),
	}
}

// Summarize generates candidate news items for the given topics.
// Topics are processed concurrently; any topic failing fails the whole call
// so the caller never persists a partial batch.
func (c *Claude) Summarize(ctx context.Context, topics []string, count int) ([]news.CollaboratorItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	counts := splitCounts(count, len(topics))

	var mu sync.Mutex
	var items []news.CollaboratorItem

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxParallel)

	for i, topic := range topics {
		if counts[i] == 0 {
			continue
		}
		i, topic := i, topic
		g.Go(func() error {
			topicItems, err := c.summarizeTopic(gctx, topic, counts[i])
			if err != nil {
				return fmt.Errorf("topic %q: %w", topic, err)
			}
			mu.Lock()
			items = append(items, topicItems...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.metricsRecorder.RecordFailure("claude")
		return nil, err
	}
	c.metricsRecorder.RecordItems("claude", len(items))
	return items, nil
}

// summarizeTopic requests items for a single topic through the circuit
// breaker with retries.
func (c *Claude) summarizeTopic(ctx context.Context, topic string, count int) ([]news.CollaboratorItem, error) {
	var result []news.CollaboratorItem

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSummarize(ctx, topic, count)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.([]news.CollaboratorItem)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("claude summarize failed after retries: %w", retryErr)
	}
	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, topic string, count int) ([]news.CollaboratorItem, error) {
	requestID := uuid.New().String()
	prompt := buildTopicPrompt(topic, count, c.cfg.SummaryCharLimit)

	slog.InfoContext(ctx, "Starting news summarization",
		slog.String("request_id", requestID),
		slog.String("topic", topic),
		slog.Int("count", count))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model("claude-sonnet-4-5-20250929"),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)
	c.metricsRecorder.RecordDuration("claude", duration)

	if err != nil {
		slog.ErrorContext(ctx, "News summarization failed",
			slog.String("request_id", requestID),
			slog.String("topic", topic),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return nil, fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return nil, fmt.Errorf("claude api returned unexpected response type")
	}

	items, err := parseItemsJSON(textBlock.Text)
	if err != nil {
		return nil, err
	}

	for i := range items {
		summaryLength := text.CountRunes(items[i].Summary)
		c.metricsRecorder.RecordSummaryLength(summaryLength)
		if summaryLength > c.cfg.SummaryCharLimit {
			slog.WarnContext(ctx, "Summary exceeds character limit, truncating",
				slog.String("request_id", requestID),
				slog.Int("summary_length", summaryLength),
				slog.Int("limit", c.cfg.SummaryCharLimit))
			items[i].Summary = truncateRunes(items[i].Summary, c.cfg.SummaryCharLimit)
		}
	}

	slog.InfoContext(ctx, "News summarization completed",
		slog.String("request_id", requestID),
		slog.String("topic", topic),
		slog.Int("items", len(items)),
		slog.Duration("duration", duration))

	return items, nil
}
