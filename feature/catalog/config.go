package catalog

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"mention-scanner/feature/catalog/models"
)

// Config holds configuration for the catalog feature.
type Config struct {
	// Enabled controls whether the feature is loaded.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// BaseURL is the wiki host catalog pages are fetched from.
	BaseURL string `mapstructure:"base_url" default:"https://slay-the-spire.fandom.com"`
	// StalenessDays is how many days an index stays fresh before a scan
	// triggers a refresh.
	StalenessDays int `mapstructure:"staleness_days" default:"15"`
	// WordThreshold is the per-word acceptance base for fuzzy matching.
	WordThreshold float64 `mapstructure:"word_threshold" default:"0.9"`
	// FetchDetails controls whether per-entry detail pages are fetched to
	// build descriptions. Costs one request per entry when enabled.
	FetchDetails bool `mapstructure:"fetch_details" default:"true"`
	// TimeoutSeconds is the per-request scrape timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// DataDir optionally points at a directory of <type>.link and
	// <type>.ignore files overriding the built-in source lists.
	DataDir string `mapstructure:"data_dir" default:""`
}

// Source describes where one entry type's catalog lives on the wiki and which
// listed names to skip.
type Source struct {
	EntryType models.EntryType
	// Links are the pages to fetch, relative to the wiki host. Card sources
	// are table pages, the rest are category listings.
	Links []string
	// Ignore lists names to drop, matched case-insensitively.
	Ignore []string
}

// DefaultSources returns the built-in source list per entry type.
func DefaultSources() []Source {
	return []Source{
		{
			EntryType: models.EntryCard,
			Links: []string{
				"/wiki/Ironclad_Cards",
				"/wiki/Silent_Cards",
				"/wiki/Defect_Cards",
				"/wiki/Watcher_Cards",
				"/wiki/Colorless_Cards",
				"/wiki/Curse",
				"/wiki/Status",
			},
		},
		{
			EntryType: models.EntryPotion,
			Links:     []string{"/wiki/Category:Potions"},
			Ignore:    []string{"Potions"},
		},
		{
			EntryType: models.EntryRelic,
			Links: []string{
				"/wiki/Category:Relic",
				"/wiki/Category:Beta_Relic",
			},
			Ignore: []string{"Relics"},
		},
	}
}

// Sources returns the configured source list: the built-in defaults, with any
// per-type .link/.ignore files found under DataDir taking precedence.
func (c Config) Sources() []Source {
	sources := DefaultSources()
	if c.DataDir == "" {
		return sources
	}
	for i, src := range sources {
		name := strings.ToLower(string(src.EntryType))
		if links := readLines(filepath.Join(c.DataDir, name+".link")); links != nil {
			sources[i].Links = links
		}
		if ignore := readLines(filepath.Join(c.DataDir, name+".ignore")); ignore != nil {
			sources[i].Ignore = ignore
		}
	}
	return sources
}

// readLines returns the non-empty trimmed lines of a file, or nil when the
// file cannot be read.
func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if scanner.Err() != nil {
		return nil
	}
	return lines
}
