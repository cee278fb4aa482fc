// Package postgres implements the repository interfaces on PostgreSQL
// through database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/repository"
)

type NewsRepo struct {
	db *sql.DB
}

func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

const newsColumns = "id, title, summary, source_url, source_name, category, image_url, timestamp, created_at"

// List returns news summaries ordered by timestamp descending.
// An empty or "all" category means no filtering.
func (repo *NewsRepo) List(ctx context.Context, filter repository.NewsFilter) ([]*entity.NewsSummary, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if filter.Category == "" || strings.EqualFold(filter.Category, "all") {
		query := fmt.Sprintf(`
SELECT %s
FROM news_summaries
ORDER BY timestamp DESC
LIMIT $1`, newsColumns)
		rows, err = repo.db.QueryContext(ctx, query, filter.Limit)
	} else {
		query := fmt.Sprintf(`
SELECT %s
FROM news_summaries
WHERE category = $1
ORDER BY timestamp DESC
LIMIT $2`, newsColumns)
		rows, err = repo.db.QueryContext(ctx, query, entity.NormalizeCategory(filter.Category), filter.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.NewsSummary, 0, filter.Limit)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateBatch inserts all items in a single transaction.
// Either every item is persisted or none (batch-level atomicity).
func (repo *NewsRepo) CreateBatch(ctx context.Context, items []*entity.NewsSummary) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("CreateBatch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO news_summaries (id, title, summary, source_url, source_name, category, image_url, timestamp, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, item := range items {
		var imageURL sql.NullString
		if item.ImageURL != "" {
			imageURL = sql.NullString{String: item.ImageURL, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.Title, item.Summary, item.SourceURL, item.SourceName,
			item.Category, imageURL, item.Timestamp, item.CreatedAt); err != nil {
			return fmt.Errorf("CreateBatch: insert %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("CreateBatch: commit: %w", err)
	}
	return nil
}

// Count returns the total number of stored news summaries.
func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM news_summaries`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// CountByCategory returns per-category record counts.
func (repo *NewsRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	const query = `SELECT category, COUNT(*) FROM news_summaries GROUP BY category`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CountByCategory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("CountByCategory: Scan: %w", err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func scanNews(rows *sql.Rows) (*entity.NewsSummary, error) {
	var item entity.NewsSummary
	var imageURL sql.NullString
	if err := rows.Scan(&item.ID, &item.Title, &item.Summary, &item.SourceURL,
		&item.SourceName, &item.Category, &imageURL, &item.Timestamp, &item.CreatedAt); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		item.ImageURL = imageURL.String
	}
	return &item, nil
}
