package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/host"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tracklist"
)

// MixesDB scrapes mix tracklists from MixesDB artist category pages.
type MixesDB struct {
	baseURL string
	opts    Opts
}

// NewMixesDB creates a MixesDB scraper. baseURL defaults to the public site.
func NewMixesDB(baseURL string, opts Opts) *MixesDB {
	if baseURL == "" {
		baseURL = "https://www.mixesdb.com"
	}
	return &MixesDB{baseURL: strings.TrimSuffix(baseURL, "/"), opts: opts.withDefaults()}
}

// ArtistURL converts an artist name to its category page URL.
func (s *MixesDB) ArtistURL(artist string) string {
	return fmt.Sprintf("%s/w/Category:%s", s.baseURL, strings.ReplaceAll(artist, " ", "_"))
}

// listing is one fetched category page: its mix links plus the URL of the
// next page, empty when the listing ends.
type listing struct {
	mixes []models.Mix
	next  string
}

// fetchListing reads one category page. Only links into the wiki namespace
// (/w/ prefix) count as mixes; everything else on the list is navigation.
func (s *MixesDB) fetchListing(ctx context.Context, pageURL string) (*listing, error) {
	doc, err := fetchDocument(ctx, s.opts.Client, s.opts.UserAgent, pageURL)
	if err != nil {
		return nil, err
	}

	list := doc.Find("ul#catMixesList")
	if list.Length() == 0 {
		return nil, fmt.Errorf("%w: no mix list on %s", shared.ErrArtistNotFound, pageURL)
	}

	result := &listing{}
	list.Find("li a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		title := strings.TrimSpace(sel.Text())
		if !ok || title == "" {
			return
		}
		if !strings.HasPrefix(href, "/w/") {
			s.opts.Logger.Debugf("skipping non-mix link: %s", href)
			return
		}
		result.mixes = append(result.mixes, models.Mix{
			Title: title,
			URL:   resolveURL(s.baseURL, href),
		})
	})

	// MediaWiki paginates long categories with a "next N" link.
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, "pagefrom=") {
			return true
		}
		if strings.Contains(strings.ToLower(sel.Text()), "next") {
			result.next = resolveURL(s.baseURL, href)
			return false
		}
		return true
	})

	return result, nil
}

// FetchTracklist extracts the tracklist from a mix page as numbered or
// timestamped plain-text lines. Returns [shared.ErrNoTracklist] when the
// page has no recognizable tracklist.
func (s *MixesDB) FetchTracklist(ctx context.Context, mixURL string) (string, error) {
	doc, err := fetchDocument(ctx, s.opts.Client, s.opts.UserAgent, mixURL)
	if err != nil {
		return "", err
	}

	content := doc.Find("div#mw-content-text")
	if content.Length() == 0 {
		return "", fmt.Errorf("%w: no content area on %s", shared.ErrNoTracklist, mixURL)
	}

	// Strip category boxes and related-mix sections so their links don't
	// pollute the text fallback.
	content.Find(".catlinks").Remove()
	content.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		if strings.Contains(id, "Related") || strings.Contains(id, "catMixes") {
			sel.Remove()
		}
	})

	// Prefer an explicit track list element.
	var lines []string
	content.Find("ol, ul").EachWithBreak(func(_ int, listSel *goquery.Selection) bool {
		var items []string
		listSel.Find("li").Each(func(_ int, li *goquery.Selection) {
			text := strings.TrimSpace(li.Text())
			if strings.Contains(text, " - ") && len(text) > 5 {
				items = append(items, text)
			}
		})
		if len(items) >= 3 {
			for i, item := range items {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
			}
			return false
		}
		return true
	})

	// Fall back to scanning the page text for tracklist-shaped lines.
	if len(lines) == 0 {
		for _, line := range strings.Split(content.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && tracklist.IsEntry(line) {
				lines = append(lines, line)
			}
		}
	}

	if len(lines) == 0 {
		return "", fmt.Errorf("%w: %s", shared.ErrNoTracklist, mixURL)
	}
	return strings.Join(lines, "\n"), nil
}

// Listing fetches the first category page for artist and returns a
// [MixListing] the content loader can drive through the remaining pages.
func (s *MixesDB) Listing(ctx context.Context, artist string) (*MixListing, error) {
	first, err := s.fetchListing(ctx, s.ArtistURL(artist))
	if err != nil {
		return nil, err
	}
	return &MixListing{
		svc:    s,
		ctx:    ctx,
		mixes:  first.mixes,
		next:   first.next,
		logger: shared.WithLogger(s.opts.Logger, "artist", artist),
	}, nil
}

// MixListing adapts a paginated category listing to [host.Page] so the
// content loader can grow it: the "next page" link plays the role of the
// show-more affordance, and scrolling is a no-op because nothing here
// renders.
type MixListing struct {
	svc    *MixesDB
	ctx    context.Context
	logger *log.Logger

	mu    sync.Mutex
	mixes []models.Mix
	next  string
}

var _ host.Page = (*MixListing)(nil)

// Mixes returns the mixes discovered so far, in listing order.
func (l *MixListing) Mixes() []models.Mix {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Mix, len(l.mixes))
	copy(out, l.mixes)
	return out
}

func (l *MixListing) Items() []host.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]host.Item, len(l.mixes))
	for i := range l.mixes {
		items[i] = mixItem{mix: l.mixes[i]}
	}
	return items
}

func (l *MixListing) ItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.mixes)
}

func (l *MixListing) Audio() (host.Audio, bool) { return nil, false }

func (l *MixListing) ShowMore() (host.Control, bool) {
	l.mu.Lock()
	next := l.next
	l.mu.Unlock()
	if next == "" {
		return nil, false
	}
	return showMoreControl{listing: l}, true
}

func (l *MixListing) ScrollToBottom() {}
func (l *MixListing) ScrollToTop()    {}

// advance fetches the next category page and appends its mixes. Failures
// are logged and the next link cleared: the loader's stall counter then
// terminates the load without an error, matching its best-effort contract.
func (l *MixListing) advance() {
	l.mu.Lock()
	next := l.next
	l.mu.Unlock()
	if next == "" {
		return
	}

	page, err := l.svc.fetchListing(l.ctx, next)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.logger.Warnf("failed to fetch listing page: %v", err)
		l.next = ""
		return
	}
	l.mixes = append(l.mixes, page.mixes...)
	l.next = page.next
}

type showMoreControl struct{ listing *MixListing }

func (c showMoreControl) Trigger() { c.listing.advance() }

// mixItem is the inert [host.Item] for a listing entry: no play or buy
// affordances, never marked playing.
type mixItem struct{ mix models.Mix }

var _ host.Item = mixItem{}

func (mixItem) PlayControl() (host.Control, bool) { return nil, false }
func (mixItem) BuyControl() (host.Control, bool)  { return nil, false }
func (mixItem) Playing() bool                     { return false }
func (mixItem) ScrollIntoView()                   {}
