// Package repository defines the persistence interfaces for the domain layer.
// Concrete adapters live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"newsbrief/internal/domain/entity"
)

// NewsFilter contains the listing constraints for news summaries.
type NewsFilter struct {
	// Category filters by category. Empty or "all" means no filtering.
	Category string
	// Limit caps the number of returned records. Must be positive.
	Limit int
}

// NewsRepository persists and queries news summaries.
//
// Listing is always ordered by timestamp descending (newest first);
// ties are broken by insertion order. CreateBatch must be atomic at the
// batch level: either all items are persisted or none.
type NewsRepository interface {
	List(ctx context.Context, filter NewsFilter) ([]*entity.NewsSummary, error)
	CreateBatch(ctx context.Context, items []*entity.NewsSummary) error
	Count(ctx context.Context) (int64, error)
	// CountByCategory returns per-category record counts, used for business metrics.
	CountByCategory(ctx context.Context) (map[string]int64, error)
}
