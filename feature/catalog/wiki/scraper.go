package wiki

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mention-scanner/feature/catalog/models"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// DefaultBaseURL is the wiki host entry links are resolved against.
const DefaultBaseURL = "https://slay-the-spire.fandom.com"

// Scraper fetches and parses wiki catalog pages.
type Scraper struct {
	client  *http.Client
	logger  *zap.Logger
	baseURL string

	// FetchDetails controls whether per-entry detail pages are fetched to
	// build descriptions for category entries. Disabled it costs one request
	// per catalog page instead of one per entry.
	FetchDetails bool
}

// NewScraper creates a scraper with the given request timeout.
// A nil logger is replaced with a no-op logger.
func NewScraper(logger *zap.Logger, timeout time.Duration) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{
		client:       &http.Client{Timeout: timeout},
		logger:       logger,
		baseURL:      DefaultBaseURL,
		FetchDetails: true,
	}
}

// SetBaseURL overrides the wiki host, used by tests to point at a local server.
func (s *Scraper) SetBaseURL(base string) {
	s.baseURL = strings.TrimSuffix(base, "/")
}

// PageURL resolves a configured page link against the wiki host.
func (s *Scraper) PageURL(link string) string {
	return s.absolute(link)
}

// CategoryEntries fetches one category listing page and returns its entries.
// Relics and potions are published this way. When FetchDetails is set, each
// entry's detail page is fetched to compose its description; a failed detail
// fetch logs a warning and leaves the description empty rather than dropping
// the entry, so a flaky detail page never reads as a catalog removal.
func (s *Scraper) CategoryEntries(ctx context.Context, pageURL string, entryType models.EntryType) ([]models.WikiEntry, error) {
	doc, err := s.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	links := ParseCategoryPage(doc)
	entries := make([]models.WikiEntry, 0, len(links))
	for _, link := range links {
		entry := models.WikiEntry{
			Name:      link.Name,
			EntryType: entryType,
			Link:      s.absolute(link.Href),
		}
		if s.FetchDetails && !strings.HasPrefix(link.Name, "Category:") {
			detail, err := s.document(ctx, entry.Link)
			if err != nil {
				s.logger.Warn("detail page fetch failed, keeping entry without description",
					zap.String("name", link.Name),
					zap.Error(err))
			} else {
				info := ParseRelicInfobox(detail)
				entry.Class = info.Class
				entry.Descr = RelicDescription(entry.Name, entry.Link, entryType, info)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CardEntries fetches one card table page and returns its entries. The page
// heading provides the card class shared by every row.
func (s *Scraper) CardEntries(ctx context.Context, pageURL string) ([]models.WikiEntry, error) {
	doc, err := s.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	class := ParseHeadingClass(doc)
	rows := ParseCardTable(doc)
	entries := make([]models.WikiEntry, 0, len(rows))
	for _, row := range rows {
		link := s.absolute(row.Href)
		entries = append(entries, models.WikiEntry{
			Name:      row.Name,
			EntryType: models.EntryCard,
			Link:      link,
			Class:     class,
			Descr:     CardDescription(row, link, class),
		})
	}
	return entries, nil
}

// document fetches a page and parses it into a goquery document.
func (s *Scraper) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", res.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// absolute resolves a wiki-relative href against the configured base URL.
func (s *Scraper) absolute(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return s.baseURL + href
}
