package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
)

// Beatport scrapes the public Beatport search page.
type Beatport struct {
	baseURL string
	opts    Opts
}

var _ Searcher = (*Beatport)(nil)

// NewBeatport creates a Beatport searcher.
func NewBeatport(opts Opts) *Beatport {
	return &Beatport{baseURL: "https://www.beatport.com", opts: opts.withDefaults()}
}

func (b *Beatport) Name() string { return "Beatport" }

// Search reads Beatport's bucket-item result rows, which also expose a price.
func (b *Beatport) Search(ctx context.Context, track models.Track) ([]models.StoreResult, error) {
	query := strings.TrimSpace(track.Query())
	if query == "" {
		return nil, nil
	}

	searchURL := b.baseURL + "/search?q=" + url.QueryEscape(query)
	doc, err := fetchDocument(ctx, b.opts.Client, b.opts.UserAgent, searchURL)
	if err != nil {
		return nil, err
	}

	var results []models.StoreResult
	doc.Find("li.bucket-item").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := sel.Find("a.buk-track-title").First()
		href, ok := title.Attr("href")
		if !ok {
			return true
		}

		results = append(results, models.StoreResult{
			Store:     b.Name(),
			Artist:    strings.TrimSpace(sel.Find("a.buk-track-artists").First().Text()),
			Title:     strings.TrimSpace(title.Text()),
			URL:       resolveURL(b.baseURL, href),
			Price:     strings.TrimSpace(sel.Find("span.buk-track-price").First().Text()),
			Available: true,
		})
		return len(results) < b.opts.MaxResults
	})

	return results, nil
}
