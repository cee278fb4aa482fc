package news

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// SampleItem is one entry of the baseline demo data set.
type SampleItem struct {
	Title      string `yaml:"title"`
	Summary    string `yaml:"summary"`
	SourceURL  string `yaml:"source_url"`
	SourceName string `yaml:"source_name"`
	Category   string `yaml:"category"`
	ImageURL   string `yaml:"image_url"`
}

var (
	sampleOnce  sync.Once
	sampleItems []SampleItem
)

// SampleItems returns the seed data set. A custom set can be supplied via
// the SEED_FILE environment variable; otherwise the embedded default is used.
// The result is loaded once and reused.
func SampleItems() []SampleItem {
	sampleOnce.Do(func() {
		data := defaultSeedYAML
		if path := os.Getenv("SEED_FILE"); path != "" {
			if custom, err := os.ReadFile(path); err != nil {
				slog.Warn("failed to read SEED_FILE, using embedded seed data",
					slog.String("path", path),
					slog.String("error", err.Error()))
			} else {
				data = custom
			}
		}

		items, err := parseSeedYAML(data)
		if err != nil {
			slog.Warn("failed to parse seed data, using embedded seed data",
				slog.String("error", err.Error()))
			items, _ = parseSeedYAML(defaultSeedYAML)
		}
		sampleItems = items
	})
	return sampleItems
}

func parseSeedYAML(data []byte) ([]SampleItem, error) {
	var doc struct {
		Items []SampleItem `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal seed data: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("seed data contains no items")
	}
	return doc.Items, nil
}
