// package services implements the external collaborators: digital store
// search scrapers and the MixesDB wiki scraper.
//
// Stores are scraped anonymously with a desktop user agent. Every scraper
// treats a missing element as "no result", never as an error; only transport
// failures surface.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

// defaultUserAgent mirrors a desktop Chrome so store search pages render the
// markup the selectors expect.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// defaultMaxResults caps how many hits each store contributes per track.
const defaultMaxResults = 3

// Searcher searches one digital store for a track.
type Searcher interface {
	// Search returns the store's top hits for the track, best first.
	// An empty slice means the store had nothing; errors are transport-level.
	Search(ctx context.Context, track models.Track) ([]models.StoreResult, error)

	// Name returns the store's display name (e.g. "Bandcamp").
	Name() string
}

// Opts configures scraper construction.
type Opts struct {
	Client     *http.Client // defaults to a client with Opts.Timeout
	UserAgent  string
	Timeout    time.Duration // per-request timeout, default 10s
	MaxResults int           // per-store hit cap, default 3
	Logger     *log.Logger
}

func (o Opts) withDefaults() Opts {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Timeout}
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.MaxResults <= 0 {
		o.MaxResults = defaultMaxResults
	}
	if o.Logger == nil {
		o.Logger = shared.NewLogger(nil)
	}
	return o
}

// NewSearchers builds searchers for the named stores. Unknown names are
// logged and skipped.
func NewSearchers(stores []string, opts Opts) []Searcher {
	opts = opts.withDefaults()

	var searchers []Searcher
	for _, name := range stores {
		switch strings.ToLower(name) {
		case "bandcamp":
			searchers = append(searchers, NewBandcamp(opts))
		case "beatport":
			searchers = append(searchers, NewBeatport(opts))
		case "traxsource":
			searchers = append(searchers, NewTraxsource(opts))
		case "hardwax":
			searchers = append(searchers, NewHardwax(opts))
		default:
			opts.Logger.Warnf("unknown store %q, skipping", name)
		}
	}
	return searchers
}

// fetchDocument GETs the URL with the scraper user agent and parses the body.
func fetchDocument(ctx context.Context, client *http.Client, userAgent, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", shared.ErrRequestFailed, resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return doc, nil
}

// resolveURL joins a possibly-relative href against a base, mirroring what a
// browser would do with the page's links.
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
