package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/observability/metrics"
	"newsbrief/internal/repository"
)

const (
	// DefaultListLimit is the display cap applied when no limit is requested.
	DefaultListLimit = 50

	// MaxListLimit bounds the limit a caller may request.
	MaxListLimit = 100

	// MaxIngestCount bounds how many items a single ingest may request from
	// the collaborator. Duplicate collaborator calls carry real cost.
	MaxIngestCount = 20
)

// Service provides news feed use cases.
// It mediates between the store and the summarization collaborator and owns
// the mapping of collaborator output into stored entities.
type Service struct {
	Repo         repository.NewsRepository
	Collaborator Collaborator

	// now is replaceable in tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a news Service with the provided dependencies.
func NewService(repo repository.NewsRepository, collaborator Collaborator) *Service {
	return &Service{
		Repo:         repo,
		Collaborator: collaborator,
		now:          time.Now,
	}
}

// List retrieves news summaries newest-first, optionally filtered by category.
// A limit <= 0 falls back to DefaultListLimit; requests above MaxListLimit are
// clamped. An empty result is not an error.
func (s *Service) List(ctx context.Context, category string, limit int) ([]*entity.NewsSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := s.Repo.List(ctx, repository.NewsFilter{Category: category, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return items, nil
}

// Seed ensures baseline demo data exists. It inserts the fixed sample set
// only when the store is empty, so repeated calls do not append duplicates.
// Returns the number of records created (0 when the store already has data).
func (s *Service) Seed(ctx context.Context) (int, error) {
	count, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	if count > 0 {
		slog.InfoContext(ctx, "seed skipped, store already populated",
			slog.Int64("existing", count))
		return 0, nil
	}

	now := s.now()
	samples := SampleItems()
	items := make([]*entity.NewsSummary, 0, len(samples))
	for i, sample := range samples {
		items = append(items, &entity.NewsSummary{
			ID:         uuid.New().String(),
			Title:      sample.Title,
			Summary:    sample.Summary,
			SourceURL:  sample.SourceURL,
			SourceName: sample.SourceName,
			Category:   entity.NormalizeCategory(sample.Category),
			ImageURL:   sample.ImageURL,
			// Stagger timestamps so the feed has a stable newest-first order.
			Timestamp: now.Add(-time.Duration(i) * time.Minute),
			CreatedAt: now,
		})
	}

	if err := s.Repo.CreateBatch(ctx, items); err != nil {
		metrics.RecordIngestFailure("store")
		return 0, fmt.Errorf("seed news: %w", err)
	}

	metrics.RecordIngested("seed", len(items))
	s.refreshTotals(ctx)

	slog.InfoContext(ctx, "seeded sample news", slog.Int("count", len(items)))
	return len(items), nil
}

// Ingest calls the summarization collaborator for the given topics and
// persists the mapped results as a single batch. On collaborator failure
// nothing is written and the returned error matches ErrCollaborator.
func (s *Service) Ingest(ctx context.Context, topics []string, count int) ([]*entity.NewsSummary, error) {
	if count <= 0 {
		metrics.RecordIngestFailure("validation")
		return nil, ErrInvalidCount
	}
	if count > MaxIngestCount {
		count = MaxIngestCount
	}
	if len(topics) == 0 {
		metrics.RecordIngestFailure("validation")
		return nil, ErrEmptyTopics
	}

	start := s.now()
	candidates, err := s.Collaborator.Summarize(ctx, topics, count)
	metrics.RecordCollaboratorDuration(time.Since(start))
	if err != nil {
		metrics.RecordIngestFailure("collaborator")
		return nil, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	items, err := s.mapCandidates(candidates)
	if err != nil {
		metrics.RecordIngestFailure("collaborator")
		return nil, err
	}
	if len(items) == 0 {
		return []*entity.NewsSummary{}, nil
	}

	if err := s.Repo.CreateBatch(ctx, items); err != nil {
		metrics.RecordIngestFailure("store")
		return nil, fmt.Errorf("store ingested news: %w", err)
	}

	metrics.RecordIngested("ingest", len(items))
	s.refreshTotals(ctx)

	slog.InfoContext(ctx, "ingested news",
		slog.Int("topics", len(topics)),
		slog.Int("items", len(items)))
	return items, nil
}

// mapCandidates converts collaborator output into entities, assigning fresh
// IDs and timestamps. Malformed candidates make the whole batch fail so that
// ingest stays all-or-nothing.
func (s *Service) mapCandidates(candidates []CollaboratorItem) ([]*entity.NewsSummary, error) {
	now := s.now()
	items := make([]*entity.NewsSummary, 0, len(candidates))
	for _, c := range candidates {
		if c.Title == "" {
			return nil, fmt.Errorf("%w: candidate with empty title", ErrCollaborator)
		}
		if err := entity.ValidateURL(c.SourceURL); err != nil {
			return nil, fmt.Errorf("%w: candidate source url: %v", ErrCollaborator, err)
		}

		category := entity.NormalizeCategory(c.Category)
		if category == "" {
			category = entity.CategoryGeneral
		}

		items = append(items, &entity.NewsSummary{
			ID:         uuid.New().String(),
			Title:      c.Title,
			Summary:    c.Summary,
			SourceURL:  c.SourceURL,
			SourceName: c.SourceName,
			Category:   category,
			ImageURL:   c.ImageURL,
			Timestamp:  now,
			CreatedAt:  now,
		})
	}
	return items, nil
}

// refreshTotals updates the stored-record gauges after a successful write.
// Failures only affect metrics, so they are logged and ignored.
func (s *Service) refreshTotals(ctx context.Context) {
	counts, err := s.Repo.CountByCategory(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to refresh news totals", slog.Any("error", err))
		return
	}
	metrics.UpdateNewsTotals(counts)
}
