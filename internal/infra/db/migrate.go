package db

import "database/sql"

// MigrateUp creates the news_summaries table and its indexes if they do not exist.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS news_summaries (
    id          UUID PRIMARY KEY,
    title       TEXT NOT NULL,
    summary     TEXT NOT NULL,
    source_url  TEXT NOT NULL,
    source_name TEXT NOT NULL,
    category    TEXT NOT NULL DEFAULT 'general',
    image_url   TEXT,
    timestamp   TIMESTAMPTZ NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// ORDER BY timestamp DESC で使用（全クエリで使用）
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_news_summaries_timestamp ON news_summaries(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_summaries_category ON news_summaries(category)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
