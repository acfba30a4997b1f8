package mentions_test

import (
	"context"
	"errors"
	"testing"

	"mention-scanner/feature/catalog/models"
	"mention-scanner/feature/mentions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeScanner returns canned scan results and records refresh calls.
type fakeScanner struct {
	entryType  models.EntryType
	results    map[string]float64
	refreshErr error
	refreshed  int
}

func (f *fakeScanner) EntryType() models.EntryType { return f.entryType }

func (f *fakeScanner) EnsureFresh(context.Context) error {
	f.refreshed++
	return f.refreshErr
}

func (f *fakeScanner) Scan(string) map[string]float64 { return f.results }

func TestScanTitleCollectsAcrossScanners(t *testing.T) {
	relics := &fakeScanner{
		entryType: models.EntryRelic,
		results:   map[string]float64{"Snecko Eye": 0.924},
	}
	cards := &fakeScanner{
		entryType: models.EntryCard,
		results:   map[string]float64{"Bash": 1.0},
	}

	svc := mentions.NewService([]mentions.Scanner{relics, cards}, zap.NewNop())
	found := svc.ScanTitle(context.Background(), "Bash into a sneckos eye run")

	require.Len(t, found, 2)
	assert.Equal(t, mentions.Mention{Name: "Bash", EntryType: models.EntryCard, Confidence: 1.0}, found[0])
	assert.Equal(t, mentions.Mention{Name: "Snecko Eye", EntryType: models.EntryRelic, Confidence: 0.924}, found[1])
	assert.Equal(t, 1, relics.refreshed)
	assert.Equal(t, 1, cards.refreshed)
}

func TestScanTitleSkipsDailyDiscussion(t *testing.T) {
	relics := &fakeScanner{
		entryType: models.EntryRelic,
		results:   map[string]float64{"Snecko Eye": 1.0},
	}

	svc := mentions.NewService([]mentions.Scanner{relics}, zap.NewNop())
	found := svc.ScanTitle(context.Background(), "Daily Discussion: Snecko Eye")

	assert.Empty(t, found)
	assert.Zero(t, relics.refreshed)
}

func TestScanTitleScansStaleIndexOnRefreshFailure(t *testing.T) {
	relics := &fakeScanner{
		entryType:  models.EntryRelic,
		results:    map[string]float64{"Snecko Eye": 1.0},
		refreshErr: errors.New("wiki unreachable"),
	}

	svc := mentions.NewService([]mentions.Scanner{relics}, zap.NewNop())
	found := svc.ScanTitle(context.Background(), "got a Snecko Eye")

	require.Len(t, found, 1)
	assert.Equal(t, "Snecko Eye", found[0].Name)
}

func TestScanTitleNoMentions(t *testing.T) {
	relics := &fakeScanner{entryType: models.EntryRelic, results: map[string]float64{}}

	svc := mentions.NewService([]mentions.Scanner{relics}, zap.NewNop())
	assert.Empty(t, svc.ScanTitle(context.Background(), "nothing to see here"))
}
