package mentions

import (
	"context"
	"sort"
	"strings"

	"mention-scanner/feature/catalog/models"

	"go.uber.org/zap"
)

// skipMarker flags recurring threads whose titles must never be scanned.
const skipMarker = "Daily Discussion"

// Scanner resolves entity mentions for one entry type. *catalog.Reader
// implements it.
type Scanner interface {
	EntryType() models.EntryType
	EnsureFresh(ctx context.Context) error
	Scan(text string) map[string]float64
}

// Mention is one detected entity reference.
type Mention struct {
	Name       string           `json:"name"`
	EntryType  models.EntryType `json:"entry_type"`
	Confidence float64          `json:"confidence"`
}

// Service scans titles against the catalog readers.
type Service struct {
	scanners []Scanner
	logger   *zap.Logger
}

// NewService creates a mention scanning service over the given scanners.
func NewService(scanners []Scanner, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{scanners: scanners, logger: logger}
}

// ScanTitle detects entity mentions in a title. Each scanner is refreshed
// first when stale; a failed refresh is logged and the stale index scanned
// anyway. Titles of recurring discussion threads are skipped entirely.
//
// Results are sorted by confidence descending, then name, so output is
// stable. No mentions is an empty result, never an error.
func (s *Service) ScanTitle(ctx context.Context, title string) []Mention {
	if strings.Contains(title, skipMarker) {
		return nil
	}

	var mentions []Mention
	for _, sc := range s.scanners {
		if err := sc.EnsureFresh(ctx); err != nil {
			s.logger.Warn("catalog refresh failed, scanning stale index",
				zap.String("entry_type", string(sc.EntryType())),
				zap.Error(err))
		}
		for name, confidence := range sc.Scan(title) {
			mentions = append(mentions, Mention{
				Name:       name,
				EntryType:  sc.EntryType(),
				Confidence: confidence,
			})
		}
	}

	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Confidence != mentions[j].Confidence {
			return mentions[i].Confidence > mentions[j].Confidence
		}
		return mentions[i].Name < mentions[j].Name
	})
	return mentions
}
