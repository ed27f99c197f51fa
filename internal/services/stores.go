package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
)

// Traxsource scrapes the public Traxsource search page.
type Traxsource struct {
	baseURL string
	opts    Opts
}

var _ Searcher = (*Traxsource)(nil)

// NewTraxsource creates a Traxsource searcher.
func NewTraxsource(opts Opts) *Traxsource {
	return &Traxsource{baseURL: "https://www.traxsource.com", opts: opts.withDefaults()}
}

func (t *Traxsource) Name() string { return "Traxsource" }

func (t *Traxsource) Search(ctx context.Context, track models.Track) ([]models.StoreResult, error) {
	query := strings.TrimSpace(track.Query())
	if query == "" {
		return nil, nil
	}

	searchURL := t.baseURL + "/search?term=" + url.QueryEscape(query)
	doc, err := fetchDocument(ctx, t.opts.Client, t.opts.UserAgent, searchURL)
	if err != nil {
		return nil, err
	}

	var results []models.StoreResult
	doc.Find("div.trk-cell").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Find("a.com-link").First().Attr("href")
		if !ok {
			return true
		}

		results = append(results, models.StoreResult{
			Store:     t.Name(),
			Artist:    strings.TrimSpace(sel.Find("div.artists").First().Text()),
			Title:     strings.TrimSpace(sel.Find("div.title").First().Text()),
			URL:       resolveURL(t.baseURL, href),
			Available: true,
		})
		return len(results) < t.opts.MaxResults
	})

	return results, nil
}

// Hardwax scrapes the Hardwax shop search. Its result markup is sparse: one
// link per item with the release text, no separate artist field.
type Hardwax struct {
	baseURL string
	opts    Opts
}

var _ Searcher = (*Hardwax)(nil)

// NewHardwax creates a Hardwax searcher.
func NewHardwax(opts Opts) *Hardwax {
	return &Hardwax{baseURL: "https://hardwax.com", opts: opts.withDefaults()}
}

func (h *Hardwax) Name() string { return "Hardwax" }

func (h *Hardwax) Search(ctx context.Context, track models.Track) ([]models.StoreResult, error) {
	query := strings.TrimSpace(track.Query())
	if query == "" {
		return nil, nil
	}

	searchURL := h.baseURL + "/?search=" + url.QueryEscape(query)
	doc, err := fetchDocument(ctx, h.opts.Client, h.opts.UserAgent, searchURL)
	if err != nil {
		return nil, err
	}

	var results []models.StoreResult
	doc.Find("div#search-results div.search-item").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		results = append(results, models.StoreResult{
			Store:     h.Name(),
			Title:     strings.TrimSpace(link.Text()),
			URL:       resolveURL(h.baseURL, href),
			Available: true,
		})
		return len(results) < h.opts.MaxResults
	})

	return results, nil
}
