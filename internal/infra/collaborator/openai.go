package collaborator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/resilience/retry"
	"newsbrief/internal/usecase/news"
	"newsbrief/internal/utils/text"
)

// OpenAI implements the summarization collaborator using OpenAI's chat API.
// Structure mirrors the Claude implementation: one request per topic, bounded
// parallelism, circuit breaker and retry around each request.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	cfg             Config
	metricsRecorder ItemMetricsRecorder
}

// NewOpenAI creates an OpenAI collaborator with the given API key.
func NewOpenAI(apiKey string, cfg Config) *OpenAI {
	slog.Info("Initialized OpenAI collaborator",
		slog.Int("summary_char_limit", cfg.SummaryCharLimit),
		slog.Int("max_parallel", cfg.MaxParallel))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.CollaboratorConfig(),
		cfg:             cfg,
		metricsRecorder: NewPrometheusItemMetrics(),
	}
}

// Summarize generates candidate news items for the given topics.
func (o *OpenAI) Summarize(ctx context.Context, topics []string, count int) ([]news.CollaboratorItem, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	counts := splitCounts(count, len(topics))

	var mu sync.Mutex
	var items []news.CollaboratorItem

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.MaxParallel)

	for i, topic := range topics {
		if counts[i] == 0 {
			continue
		}
		i, topic := i, topic
		g.Go(func() error {
			topicItems, err := o.summarizeTopic(gctx, topic, counts[i])
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
		o.metricsRecorder.RecordFailure("openai")
		return nil, err
	}
	o.metricsRecorder.RecordItems("openai", len(items))
	return items, nil
}

func (o *OpenAI) summarizeTopic(ctx context.Context, topic string, count int) ([]news.CollaboratorItem, error) {
	var result []news.CollaboratorItem

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSummarize(ctx, topic, count)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.([]news.CollaboratorItem)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("openai summarize failed after retries: %w", retryErr)
	}
	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, topic string, count int) ([]news.CollaboratorItem, error) {
	prompt := buildTopicPrompt(topic, count, o.cfg.SummaryCharLimit)

	slog.InfoContext(ctx, "Starting news summarization",
		slog.String("topic", topic),
		slog.Int("count", count))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)
	o.metricsRecorder.RecordDuration("openai", duration)

	if err != nil {
		slog.ErrorContext(ctx, "News summarization failed",
			slog.String("topic", topic),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	// Safety check to prevent panic on array access
	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return nil, fmt.Errorf("openai api returned empty response")
	}

	items, err := parseItemsJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	for i := range items {
		summaryLength := text.CountRunes(items[i].Summary)
		o.metricsRecorder.RecordSummaryLength(summaryLength)
		if summaryLength > o.cfg.SummaryCharLimit {
			slog.WarnContext(ctx, "Summary exceeds character limit, truncating",
				slog.Int("summary_length", summaryLength),
				slog.Int("limit", o.cfg.SummaryCharLimit))
			items[i].Summary = truncateRunes(items[i].Summary, o.cfg.SummaryCharLimit)
		}
	}

	slog.InfoContext(ctx, "News summarization completed",
		slog.String("topic", topic),
		slog.Int("items", len(items)),
		slog.Duration("duration", duration))

	return items, nil
}
