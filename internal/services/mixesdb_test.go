package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/strictlymomo/trainspotters-friend/internal/loader"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	testutil "github.com/strictlymomo/trainspotters-friend/internal/testing"
)

const listingPage1 = `<html><body>
<ul id="catMixesList">
	<li><a href="/w/2003-05-30_-_Surgeon_@_Tresor">2003-05-30 - Surgeon @ Tresor</a></li>
	<li><a href="/w/2004-01-17_-_Surgeon_-_Dynamic_Tension">2004-01-17 - Surgeon - Dynamic Tension</a></li>
	<li><a href="/index.php?action=edit">edit</a></li>
</ul>
<a href="/w/index.php?title=Category:Surgeon&amp;pagefrom=2004">next 200</a>
</body></html>`

const listingPage2 = `<html><body>
<ul id="catMixesList">
	<li><a href="/w/2005-11-04_-_Surgeon_@_Klubnacht">2005-11-04 - Surgeon @ Klubnacht</a></li>
</ul>
</body></html>`

const mixPage = `<html><body>
<div id="mw-content-text">
	<h2>Tracklist</h2>
	<ol>
		<li>Regis - Gymnastics</li>
		<li>Surgeon - Magneze</li>
		<li>British Murder Boys - Learn Your Lesson</li>
	</ol>
	<div class="catlinks"><a href="/w/Category:Surgeon">Category: Surgeon</a></div>
</div>
</body></html>`

const mixPagePlainText = `<html><body>
<div id="mw-content-text">
<p>00:00 Regis - Gymnastics<br>
05:30 Surgeon - Magneze</p>
</div>
</body></html>`

func newMixesDB(rt http.RoundTripper) *MixesDB {
	return NewMixesDB("https://www.mixesdb.com", Opts{Client: clientFor(rt)})
}

func TestMixesDBListing(t *testing.T) {
	t.Run("collects mix links and skips navigation", func(t *testing.T) {
		rt := testutil.NewMockRoundTripper(htmlResponse(listingPage1), nil)
		s := newMixesDB(rt)

		listing, err := s.Listing(context.Background(), "Surgeon")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mixes := listing.Mixes()
		if len(mixes) != 2 {
			t.Fatalf("expected 2 mixes, got %d", len(mixes))
		}
		if mixes[0].Title != "2003-05-30 - Surgeon @ Tresor" {
			t.Errorf("unexpected title: %q", mixes[0].Title)
		}
		if mixes[0].URL != "https://www.mixesdb.com/w/2003-05-30_-_Surgeon_@_Tresor" {
			t.Errorf("unexpected url: %q", mixes[0].URL)
		}
	})

	t.Run("requests the category page for the artist", func(t *testing.T) {
		rt := testutil.NewMockRoundTripper(htmlResponse(listingPage1), nil)
		s := newMixesDB(rt)

		if _, err := s.Listing(context.Background(), "Jeff Mills"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := rt.Requests[0].URL.Path; got != "/w/Category:Jeff_Mills" {
			t.Errorf("unexpected path: %q", got)
		}
	})

	t.Run("page without a mix list means the artist is unknown", func(t *testing.T) {
		rt := testutil.NewMockRoundTripper(htmlResponse("<html><body>Not found</body></html>"), nil)
		s := newMixesDB(rt)

		if _, err := s.Listing(context.Background(), "Nobody"); !errors.Is(err, shared.ErrArtistNotFound) {
			t.Errorf("expected ErrArtistNotFound, got %v", err)
		}
	})

	t.Run("loader drives the next link through all pages", func(t *testing.T) {
		rt := &testutil.MockRoundTripper{Responses: map[string]*http.Response{
			"https://www.mixesdb.com/w/Category:Surgeon": htmlResponse(listingPage1),
			"https://www.mixesdb.com/w/index.php":        htmlResponse(listingPage2),
		}}
		s := newMixesDB(rt)

		listing, err := s.Listing(context.Background(), "Surgeon")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		l := loader.New(listing, loader.Opts{Clock: testutil.NewFakeClock(), SettleDelay: time.Millisecond})
		l.LoadAll(context.Background(), 0)

		mixes := listing.Mixes()
		if len(mixes) != 3 {
			t.Fatalf("expected 3 mixes after pagination, got %d", len(mixes))
		}
		if mixes[2].Title != "2005-11-04 - Surgeon @ Klubnacht" {
			t.Errorf("unexpected last mix: %q", mixes[2].Title)
		}
	})

	t.Run("failed pagination terminates the load without error", func(t *testing.T) {
		rt := &testutil.MockRoundTripper{Responses: map[string]*http.Response{
			"https://www.mixesdb.com/w/Category:Surgeon": htmlResponse(listingPage1),
		}}
		s := newMixesDB(rt)

		listing, err := s.Listing(context.Background(), "Surgeon")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		l := loader.New(listing, loader.Opts{Clock: testutil.NewFakeClock(), SettleDelay: time.Millisecond})
		l.LoadAll(context.Background(), 0)

		if got := len(listing.Mixes()); got != 2 {
			t.Errorf("expected the first page's mixes, got %d", got)
		}
	})
}

func TestMixesDBFetchTracklist(t *testing.T) {
	t.Run("extracts a numbered list", func(t *testing.T) {
		rt := testutil.NewMockRoundTripper(htmlResponse(mixPage), nil)
		s := newMixesDB(rt)

		text, err := s.FetchTracklist(context.Background(), "https://www.mixesdb.com/w/some-mix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(text, "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d: %q", len(lines), text)
		}
		if lines[0] != "1. Regis - Gymnastics" {
			t.Errorf("unexpected first line: %q", lines[0])
		}
		if strings.Contains(text, "Category") {
			t.Error("category links leaked into the tracklist")
		}
	})

	t.Run("falls back to timestamped plain text", func(t *testing.T) {
		rt := testutil.NewMockRoundTripper(htmlResponse(mixPagePlainText), nil)
		s := newMixesDB(rt)

		text, err := s.FetchTracklist(context.Background(), "https://www.mixesdb.com/w/some-mix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "00:00 Regis - Gymnastics") {
			t.Errorf("expected timestamped line, got %q", text)
		}
	})

	t.Run("page without a tracklist is an error", func(t *testing.T) {
		rt := testutil.NewMockRoundTripper(htmlResponse(`<html><body><div id="mw-content-text"><p>prose only</p></div></body></html>`), nil)
		s := newMixesDB(rt)

		if _, err := s.FetchTracklist(context.Background(), "https://www.mixesdb.com/w/empty"); !errors.Is(err, shared.ErrNoTracklist) {
			t.Errorf("expected ErrNoTracklist, got %v", err)
		}
	})
}

func TestArtistURL(t *testing.T) {
	s := NewMixesDB("", Opts{})
	if got := s.ArtistURL("Richie Hawtin"); got != "https://www.mixesdb.com/w/Category:Richie_Hawtin" {
		t.Errorf("unexpected url: %q", got)
	}
}
