// package tasks orchestrates the long-running operations: digging an
// artist's mixes out of MixesDB and sweeping tracklists across the store
// searchers. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/services"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"golang.org/x/time/rate"
)

// ResultCacher caches store search results keyed by store and normalized
// query. Implemented by the repositories cache adapter.
type ResultCacher interface {
	// Get returns cached results and whether the key was present. An empty
	// cached slice is a valid "store had nothing" answer.
	Get(store, query string) ([]models.StoreResult, bool)

	// Put stores results for a key. Duplicate entries are ignored.
	Put(store, query string, results []models.StoreResult) error
}

// SearchStats summarizes a sweep, mirroring the stats file layout.
type SearchStats struct {
	TotalTracks int
	FoundTracks int            // tracks with at least one hit anywhere
	StoreHits   map[string]int // per store: tracks with at least one hit
}

// Rates returns each store's hit rate as a percentage of all tracks.
func (s SearchStats) Rates() map[string]float64 {
	rates := make(map[string]float64, len(s.StoreHits))
	for store, count := range s.StoreHits {
		if s.TotalTracks > 0 {
			rates[store] = float64(count) / float64(s.TotalTracks) * 100
		}
	}
	return rates
}

// SortedRates returns store names ordered by descending hit rate.
func (s SearchStats) SortedRates() []string {
	names := make([]string, 0, len(s.StoreHits))
	for store := range s.StoreHits {
		names = append(names, store)
	}
	rates := s.Rates()
	sort.Slice(names, func(i, j int) bool {
		if rates[names[i]] == rates[names[j]] {
			return names[i] < names[j]
		}
		return rates[names[i]] > rates[names[j]]
	})
	return names
}

// SearchOutcome is everything a sweep produced.
type SearchOutcome struct {
	Tracks []models.Track
	Rows   []models.MatchRow // one row per hit, placeholder row per miss
	Stats  SearchStats
}

// SearchEngine sweeps tracks across the configured store searchers with
// rate limiting and optional cache-aside.
type SearchEngine struct {
	searchers []services.Searcher
	cache     ResultCacher
	limiter   *rate.Limiter
	logger    *log.Logger
}

// NewSearchEngine creates a SearchEngine. cache may be nil; requestsPerSec
// defaults to 0.5 (one request every two seconds, matching polite scraping).
func NewSearchEngine(searchers []services.Searcher, cache ResultCacher, requestsPerSec float64, logger *log.Logger) *SearchEngine {
	if requestsPerSec <= 0 {
		requestsPerSec = 0.5
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SearchEngine{
		searchers: searchers,
		cache:     cache,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run sweeps every track across every store. Store failures are logged and
// treated as empty results; only an empty track list or ctx cancellation is
// an error.
func (e *SearchEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, tracks []models.Track) (*SearchOutcome, error) {
	if len(tracks) == 0 {
		return nil, shared.ErrNoTracks
	}
	if len(e.searchers) == 0 {
		return nil, fmt.Errorf("%w: no stores configured", shared.ErrInvalidConfig)
	}

	outcome := &SearchOutcome{
		Tracks: tracks,
		Stats: SearchStats{
			TotalTracks: len(tracks),
			StoreHits:   make(map[string]int),
		},
	}

	for i, track := range tracks {
		sendProgress(progress, searchTrackUpdate(i+1, len(tracks), track))

		found := false
		for _, searcher := range e.searchers {
			results, err := e.searchOne(ctx, searcher, track)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				e.logger.Warnf("%s search failed for '%s - %s': %v", searcher.Name(), track.Artist, track.Title, err)
				continue
			}
			if len(results) == 0 {
				continue
			}

			found = true
			outcome.Stats.StoreHits[searcher.Name()]++
			for _, res := range results {
				outcome.Rows = append(outcome.Rows, matchRow(track, res))
			}
		}

		if found {
			outcome.Stats.FoundTracks++
		} else {
			outcome.Rows = append(outcome.Rows, missRow(track))
		}
	}

	return outcome, nil
}

// searchOne consults the cache first; on a miss it rate-limits, hits the
// store, and caches whatever came back (including nothing).
func (e *SearchEngine) searchOne(ctx context.Context, searcher services.Searcher, track models.Track) ([]models.StoreResult, error) {
	query := shared.NormalizeQuery(track.Artist, track.Title)
	if query == "" {
		return nil, nil
	}

	if e.cache != nil {
		if cached, ok := e.cache.Get(searcher.Name(), query); ok {
			return cached, nil
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	results, err := searcher.Search(ctx, track)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Put(searcher.Name(), query, results); err != nil {
			e.logger.Warnf("failed to cache %s results: %v", searcher.Name(), err)
		}
	}

	return results, nil
}

func matchRow(track models.Track, res models.StoreResult) models.MatchRow {
	return models.MatchRow{
		Timestamp:      track.Timestamp,
		OriginalArtist: track.Artist,
		OriginalTitle:  track.Title,
		RemixInfo:      track.RemixInfo,
		Store:          res.Store,
		FoundArtist:    res.Artist,
		FoundTitle:     res.Title,
		URL:            res.URL,
		Price:          res.Price,
	}
}

func missRow(track models.Track) models.MatchRow {
	return models.MatchRow{
		Timestamp:      track.Timestamp,
		OriginalArtist: track.Artist,
		OriginalTitle:  track.Title,
		RemixInfo:      track.RemixInfo,
		Store:          models.NoResultsStore,
	}
}
