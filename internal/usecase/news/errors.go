// Package news provides use cases for the news summary feed.
// It implements listing, sample-data seeding, and ingestion of freshly
// summarized items from the summarization collaborator.
package news

import "errors"

// Sentinel errors for news use case operations.
var (
	// ErrCollaborator indicates that the summarization collaborator was
	// unreachable or returned malformed data. No items are persisted when
	// this error is returned.
	ErrCollaborator = errors.New("summarization collaborator failed")

	// ErrInvalidCount indicates that the requested item count is not a
	// positive integer.
	ErrInvalidCount = errors.New("count must be a positive integer")

	// ErrEmptyTopics indicates that an ingest was requested without topics.
	ErrEmptyTopics = errors.New("topics must not be empty")
)
