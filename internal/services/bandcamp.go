package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
)

// Bandcamp scrapes the public Bandcamp search page.
type Bandcamp struct {
	baseURL string
	opts    Opts
}

var _ Searcher = (*Bandcamp)(nil)

// NewBandcamp creates a Bandcamp searcher.
func NewBandcamp(opts Opts) *Bandcamp {
	return &Bandcamp{baseURL: "https://bandcamp.com", opts: opts.withDefaults()}
}

func (b *Bandcamp) Name() string { return "Bandcamp" }

// Search queries "artist title" and reads the result list. Bandcamp search
// results carry the title in div.heading and "by Artist" in div.subhead.
func (b *Bandcamp) Search(ctx context.Context, track models.Track) ([]models.StoreResult, error) {
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
	doc.Find("li.searchresult").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Find("a").First().Attr("href")
		if !ok {
			return true
		}

		artist := strings.TrimSpace(sel.Find("div.subhead").First().Text())
		artist = strings.TrimPrefix(artist, "by ")

		results = append(results, models.StoreResult{
			Store:     b.Name(),
			Artist:    artist,
			Title:     strings.TrimSpace(sel.Find("div.heading").First().Text()),
			URL:       resolveURL(b.baseURL, href),
			Available: true,
		})
		return len(results) < b.opts.MaxResults
	})

	return results, nil
}
