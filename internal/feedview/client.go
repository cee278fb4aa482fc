// Package feedview implements the terminal feed client: a small state
// machine over the news API plus pure card rendering helpers.
package feedview

import (
	"context"
	"log/slog"
	"sync"

	"newsbrief/internal/domain/entity"
)

// Fetcher is the slice of the news API the client depends on.
type Fetcher interface {
	List(ctx context.Context, category string, limit int) ([]*entity.NewsSummary, error)
	Seed(ctx context.Context) (int, error)
}

// State is a snapshot of the client's view state.
//
// Items keep the order the API returned them in; the client never re-sorts.
type State struct {
	Items            []*entity.NewsSummary
	Loading          bool
	Refreshing       bool
	Err              string
	SelectedCategory string
}

// Client owns the feed view state transitions.
//
// Every fetch carries a monotonically increasing request token; a response is
// applied only when its token still matches the latest one, so a slow
// response for an old category can never overwrite a newer selection.
type Client struct {
	api    Fetcher
	limit  int
	logger *slog.Logger

	mu    sync.Mutex
	token uint64
	state State
}

// NewClient creates a feed client starting on the "all" category.
// A limit <= 0 falls back to 50.
func NewClient(api Fetcher, limit int, logger *slog.Logger) *Client {
	if limit <= 0 {
		limit = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:    api,
		limit:  limit,
		logger: logger,
		state:  State{SelectedCategory: "all"},
	}
}

// Snapshot returns a copy of the current state.
func (c *Client) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Items = make([]*entity.NewsSummary, len(c.state.Items))
	copy(s.Items, c.state.Items)
	return s
}

// Load fetches the feed for the current category, entering the loading state.
// On failure the previous items are kept and Err carries a user-facing message.
func (c *Client) Load(ctx context.Context) {
	c.fetch(ctx, false)
}

// Refresh re-fetches the current category without dropping the items on
// screen until new data arrives.
func (c *Client) Refresh(ctx context.Context) {
	c.fetch(ctx, true)
}

// SelectCategory switches the category filter and re-enters loading.
func (c *Client) SelectCategory(ctx context.Context, category string) {
	c.mu.Lock()
	c.state.SelectedCategory = category
	c.mu.Unlock()

	c.fetch(ctx, false)
}

// CanSeed reports whether the empty-state seed action should be offered:
// no items, no error, and no request in flight.
func (c *Client) CanSeed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.state.Items) == 0 && c.state.Err == "" &&
		!c.state.Loading && !c.state.Refreshing
}

// SeedAndReload asks the API to seed sample data, then reloads the feed.
func (c *Client) SeedAndReload(ctx context.Context) error {
	count, err := c.api.Seed(ctx)
	if err != nil {
		c.mu.Lock()
		c.state.Err = "failed to seed sample news"
		c.mu.Unlock()
		c.logger.Error("seed request failed", slog.Any("error", err))
		return err
	}

	c.logger.Info("seed requested", slog.Int("count", count))
	c.Load(ctx)
	return nil
}

func (c *Client) fetch(ctx context.Context, refresh bool) {
	token, category := c.begin(refresh)

	items, err := c.api.List(ctx, category, c.limit)
	if !c.apply(token, items, err) {
		c.logger.Debug("discarded stale response",
			slog.Uint64("token", token),
			slog.String("category", category))
	}
}

// begin marks a request started and returns its token plus the category to
// fetch. Starting a request invalidates every earlier in-flight token.
func (c *Client) begin(refresh bool) (uint64, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	if refresh {
		c.state.Refreshing = true
	} else {
		c.state.Loading = true
	}
	return c.token, c.state.SelectedCategory
}

// apply installs a response if its token is still current. Stale responses
// are discarded and apply reports false.
func (c *Client) apply(token uint64, items []*entity.NewsSummary, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		return false
	}

	c.state.Loading = false
	c.state.Refreshing = false
	if err != nil {
		// 表示中のitemsは保持する（flash-to-empty回避）
		c.state.Err = "failed to load news"
		c.logger.Error("list request failed", slog.Any("error", err))
		return true
	}

	c.state.Items = items
	c.state.Err = ""
	return true
}
