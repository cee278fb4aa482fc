package news

import "context"

// CollaboratorItem is a candidate news item produced by the summarization
// collaborator, before it is mapped into a stored entity.
type CollaboratorItem struct {
	Title      string
	Summary    string
	SourceURL  string
	SourceName string
	Category   string
	ImageURL   string
}

// Collaborator is the summarization collaborator contract: given topic
// labels and a desired item count it returns candidate news items.
// Implementations live under internal/infra/collaborator and may be slow
// or fail; callers treat any error as ErrCollaborator.
type Collaborator interface {
	Summarize(ctx context.Context, topics []string, count int) ([]CollaboratorItem, error)
}
