// Package collaborator provides summarization collaborator implementations.
// It includes adapters for Claude (Anthropic) and OpenAI APIs with reliability
// patterns, an RSS-backed fallback that needs no API key, and a deterministic
// no-op provider for development. All providers return candidate news items
// for a set of topic labels.
package collaborator

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"newsbrief/internal/infra/scraper"
	"newsbrief/internal/usecase/news"
)

// Provider identifiers accepted in COLLABORATOR_PROVIDER.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderRSS    = "rss"
	ProviderNoop   = "noop"
)

// Config holds shared configuration for collaborator implementations.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Provider selects the implementation. Default: noop.
	Provider string

	// SummaryCharLimit is the maximum number of characters per item summary.
	// Loaded from COLLABORATOR_CHAR_LIMIT. Valid range: 100-2000. Default: 400.
	SummaryCharLimit int

	// Timeout is the maximum duration for the whole Summarize call.
	Timeout time.Duration

	// MaxParallel bounds concurrent per-topic requests.
	MaxParallel int
}

const (
	defaultCharLimit = 400
	minCharLimit     = 100
	maxCharLimit     = 2000
)

// LoadConfig loads collaborator configuration from environment variables.
// Invalid values fall back to defaults with a warning log.
//
// Environment variables:
//   - COLLABORATOR_PROVIDER: claude | openai | rss | noop (default: noop)
//   - COLLABORATOR_CHAR_LIMIT: per-item summary limit (default: 400, range: 100-2000)
//   - COLLABORATOR_TIMEOUT: overall call timeout (default: 120s)
func LoadConfig() Config {
	cfg := Config{
		Provider:         ProviderNoop,
		SummaryCharLimit: defaultCharLimit,
		Timeout:          120 * time.Second,
		MaxParallel:      4,
	}

	if p := os.Getenv("COLLABORATOR_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if envLimit := os.Getenv("COLLABORATOR_CHAR_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			slog.Warn("Invalid COLLABORATOR_CHAR_LIMIT format, using default",
				slog.String("value", envLimit),
				slog.Int("default", defaultCharLimit),
				slog.String("error", err.Error()))
		} else if parsed < minCharLimit || parsed > maxCharLimit {
			slog.Warn("COLLABORATOR_CHAR_LIMIT out of valid range, using default",
				slog.Int("value", parsed),
				slog.Int("min", minCharLimit),
				slog.Int("max", maxCharLimit),
				slog.Int("default", defaultCharLimit))
		} else {
			cfg.SummaryCharLimit = parsed
		}
	}

	if envTimeout := os.Getenv("COLLABORATOR_TIMEOUT"); envTimeout != "" {
		if parsed, err := time.ParseDuration(envTimeout); err != nil {
			slog.Warn("Invalid COLLABORATOR_TIMEOUT format, using default",
				slog.String("value", envTimeout),
				slog.String("error", err.Error()))
		} else if parsed > 0 {
			cfg.Timeout = parsed
		}
	}

	return cfg
}

// New builds the collaborator selected by cfg.Provider.
// API-backed providers require their key to be present in the environment.
func New(cfg Config) (news.Collaborator, error) {
	switch cfg.Provider {
	case ProviderClaude:
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when COLLABORATOR_PROVIDER=claude")
		}
		return NewClaude(apiKey, cfg), nil
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when COLLABORATOR_PROVIDER=openai")
		}
		return NewOpenAI(apiKey, cfg), nil
	case ProviderRSS:
		rss := NewRSS(cfg)
		// og:imageの取得はネットワークコストがかかるので無効化できる
		if os.Getenv("RSS_FETCH_OG_IMAGES") != "false" {
			rss = rss.WithImageFetcher(scraper.NewOGImageScraper(&http.Client{
				Timeout: 10 * time.Second,
			}))
		}
		return rss, nil
	case ProviderNoop:
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("unknown collaborator provider: %q", cfg.Provider)
	}
}
