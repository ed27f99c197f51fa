package tasks

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/strictlymomo/trainspotters-friend/internal/loader"
	"github.com/strictlymomo/trainspotters-friend/internal/services"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	testutil "github.com/strictlymomo/trainspotters-friend/internal/testing"
)

const digListingPage = `<html><body>
<ul id="catMixesList">
	<li><a href="/w/2004_Jeff_Mills_-_Exhibitionist">2004 Jeff Mills - Exhibitionist</a></li>
	<li><a href="/w/2013_Jeff_Mills_-_Axis">2013 Jeff Mills - Axis</a></li>
</ul>
</body></html>`

const digMixPage = `<html><body><div id="mw-content-text">
<ol>
	<li>Jeff Mills - The Bells</li>
	<li>Robert Hood - Minus</li>
	<li>Surgeon - Magneze</li>
</ol>
</div></body></html>`

const digProsePage = `<html><body><div id="mw-content-text">
<p>This mix was recorded live. No tracklist has been submitted yet.</p>
</div></body></html>`

func digHTMLResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"text/html"}},
	}
}

func newDigEngine(mock *testutil.MockRoundTripper) *DigEngine {
	svc := services.NewMixesDB("", services.Opts{Client: &http.Client{Transport: mock}})
	opts := loader.Opts{SettleDelay: time.Millisecond}
	return NewDigEngine(svc, opts, 0, 100, shared.NewLogger(io.Discard))
}

func TestDigEngine_Run(t *testing.T) {
	t.Run("collects tracklists for every mix", func(t *testing.T) {
		mock := testutil.NewMockRoundTripper(nil, nil)
		mock.Responses = map[string]*http.Response{
			"https://www.mixesdb.com/w/Category:Jeff_Mills":             digHTMLResponse(digListingPage),
			"https://www.mixesdb.com/w/2004_Jeff_Mills_-_Exhibitionist": digHTMLResponse(digMixPage),
			"https://www.mixesdb.com/w/2013_Jeff_Mills_-_Axis":          digHTMLResponse(digMixPage),
		}

		progress := make(chan ProgressUpdate, 32)
		result, err := newDigEngine(mock).Run(context.Background(), progress, "Jeff Mills")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TotalMixes != 2 {
			t.Errorf("expected 2 mixes discovered, got %d", result.TotalMixes)
		}
		if len(result.Mixes) != 2 {
			t.Fatalf("expected 2 mixes with tracklists, got %d", len(result.Mixes))
		}
		if !strings.Contains(result.Combined, "# 2004 Jeff Mills - Exhibitionist") {
			t.Errorf("expected combined document to carry mix headers, got %q", result.Combined)
		}
		if !strings.Contains(result.Combined, "1. Jeff Mills - The Bells") {
			t.Errorf("expected numbered tracklist lines, got %q", result.Combined)
		}

		close(progress)
		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 3 {
			t.Fatalf("expected listing and per-mix updates, got %d", len(phases))
		}
		if phases[0] != FetchListing {
			t.Errorf("expected first update in the listing phase, got %v", phases[0])
		}
		if phases[len(phases)-1] != FetchTracklists {
			t.Errorf("expected final update in the tracklist phase, got %v", phases[len(phases)-1])
		}
	})

	t.Run("skips mixes without a tracklist", func(t *testing.T) {
		mock := testutil.NewMockRoundTripper(nil, nil)
		mock.Responses = map[string]*http.Response{
			"https://www.mixesdb.com/w/Category:Jeff_Mills":             digHTMLResponse(digListingPage),
			"https://www.mixesdb.com/w/2004_Jeff_Mills_-_Exhibitionist": digHTMLResponse(digProsePage),
			"https://www.mixesdb.com/w/2013_Jeff_Mills_-_Axis":          digHTMLResponse(digMixPage),
		}

		result, err := newDigEngine(mock).Run(context.Background(), nil, "Jeff Mills")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TotalMixes != 2 {
			t.Errorf("expected 2 mixes discovered, got %d", result.TotalMixes)
		}
		if len(result.Mixes) != 1 {
			t.Fatalf("expected 1 mix with a tracklist, got %d", len(result.Mixes))
		}
		if result.Mixes[0].Title != "2013 Jeff Mills - Axis" {
			t.Errorf("expected the prose-only mix to be skipped, got %q", result.Mixes[0].Title)
		}
	})

	t.Run("fails when no mix has a tracklist", func(t *testing.T) {
		mock := testutil.NewMockRoundTripper(nil, nil)
		mock.Responses = map[string]*http.Response{
			"https://www.mixesdb.com/w/Category:Jeff_Mills":             digHTMLResponse(digListingPage),
			"https://www.mixesdb.com/w/2004_Jeff_Mills_-_Exhibitionist": digHTMLResponse(digProsePage),
			"https://www.mixesdb.com/w/2013_Jeff_Mills_-_Axis":          digHTMLResponse(digProsePage),
		}

		_, err := newDigEngine(mock).Run(context.Background(), nil, "Jeff Mills")
		if !errors.Is(err, shared.ErrNoTracklist) {
			t.Errorf("expected ErrNoTracklist, got %v", err)
		}
	})

	t.Run("rejects a blank artist", func(t *testing.T) {
		mock := testutil.NewMockRoundTripper(nil, nil)

		_, err := newDigEngine(mock).Run(context.Background(), nil, "   ")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if len(mock.Requests) != 0 {
			t.Errorf("expected no requests, got %d", len(mock.Requests))
		}
	})

	t.Run("fails when the listing is empty", func(t *testing.T) {
		mock := testutil.NewMockRoundTripper(nil, nil)
		mock.Responses = map[string]*http.Response{
			"https://www.mixesdb.com/w/Category:Jeff_Mills": digHTMLResponse(`<ul id="catMixesList"></ul>`),
		}

		_, err := newDigEngine(mock).Run(context.Background(), nil, "Jeff Mills")
		if !errors.Is(err, shared.ErrNoMixesFound) {
			t.Errorf("expected ErrNoMixesFound, got %v", err)
		}
	})
}
