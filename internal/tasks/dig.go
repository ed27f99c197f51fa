package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/loader"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/services"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"golang.org/x/time/rate"
)

// DigResult is everything a listing crawl produced.
type DigResult struct {
	Artist     string
	Mixes      []models.Mix // mixes with a non-empty tracklist
	TotalMixes int          // mixes discovered on the listing
	Combined   string       // all tracklists joined under "# <title>" headers
}

// DigEngine crawls a MixesDB artist listing and collects tracklists. The
// content loader drives the listing's pagination until it stops growing or
// hits the configured cap.
type DigEngine struct {
	mixesdb    *services.MixesDB
	loaderOpts loader.Opts
	maxMixes   int
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewDigEngine creates a DigEngine. maxMixes caps how many listing entries
// the loader accumulates; requestsPerSec throttles the per-mix tracklist
// fetches.
func NewDigEngine(mixesdb *services.MixesDB, loaderOpts loader.Opts, maxMixes int, requestsPerSec float64, logger *log.Logger) *DigEngine {
	if requestsPerSec <= 0 {
		requestsPerSec = 0.5
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &DigEngine{
		mixesdb:    mixesdb,
		loaderOpts: loaderOpts,
		maxMixes:   maxMixes,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		logger:     logger,
	}
}

// Run fetches the artist's listing, loads it to completion, then fetches
// each mix's tracklist. Mixes without a recognizable tracklist are reported
// via progress and skipped.
func (e *DigEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, artist string) (*DigResult, error) {
	if strings.TrimSpace(artist) == "" {
		return nil, fmt.Errorf("%w: artist name", shared.ErrMissingArgument)
	}

	sendProgress(progress, fetchListingUpdate(artist))

	listing, err := e.mixesdb.Listing(ctx, artist)
	if err != nil {
		return nil, err
	}

	loader.New(listing, e.loaderOpts).LoadAll(ctx, e.maxMixes)

	mixes := listing.Mixes()
	if len(mixes) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoMixesFound, artist)
	}
	sendProgress(progress, listingLoadedUpdate(len(mixes)))

	result := &DigResult{Artist: artist, TotalMixes: len(mixes)}

	for i, mix := range mixes {
		sendProgress(progress, fetchTracklistUpdate(i+1, len(mixes), mix))

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		text, err := e.mixesdb.FetchTracklist(ctx, mix.URL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warnf("no tracklist for %q: %v", mix.Title, err)
			sendProgress(progress, tracklistFailedUpdate(i+1, len(mixes), mix, err))
			continue
		}

		mix.Tracklist = text
		result.Mixes = append(result.Mixes, mix)
	}

	if len(result.Mixes) == 0 {
		return nil, fmt.Errorf("%w: none of %d mixes had a tracklist", shared.ErrNoTracklist, len(mixes))
	}

	result.Combined = CombineTracklists(result.Mixes)
	return result, nil
}

// CombineTracklists joins mix tracklists into one document, each under a
// "# <title>" header. The tracklist parser skips the headers.
func CombineTracklists(mixes []models.Mix) string {
	sections := make([]string, 0, len(mixes))
	for _, mix := range mixes {
		sections = append(sections, fmt.Sprintf("# %s\n%s", mix.Title, mix.Tracklist))
	}
	return strings.Join(sections, "\n\n")
}
