package collaborator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbrief/internal/infra/collaborator"
)

func TestNoop_Summarize(t *testing.T) {
	c := collaborator.NewNoop()

	items, err := c.Summarize(context.Background(), []string{"technology", "sports"}, 5)

	require.NoError(t, err)
	require.Len(t, items, 5)

	for _, item := range items {
		assert.NotEmpty(t, item.Title)
		assert.NotEmpty(t, item.Summary)
		assert.Contains(t, item.SourceURL, "https://example.com/")
	}

	// トピックを循環して使う
	assert.Equal(t, "technology", items[0].Category)
	assert.Equal(t, "sports", items[1].Category)
	assert.Equal(t, "technology", items[2].Category)
}

func TestNoop_Summarize_UnknownTopicMapsToGeneral(t *testing.T) {
	c := collaborator.NewNoop()

	items, err := c.Summarize(context.Background(), []string{"quantum computing"}, 1)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "general", items[0].Category)
}

func TestNoop_Summarize_NoTopics(t *testing.T) {
	c := collaborator.NewNoop()

	items, err := c.Summarize(context.Background(), nil, 3)

	require.NoError(t, err)
	assert.Empty(t, items)
}
