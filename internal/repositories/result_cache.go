package repositories

import (
	"fmt"
	"strings"

	"github.com/strictlymomo/trainspotters-friend/internal/models"
)

// ResultCacheAdapter implements tasks.ResultCacher using ResultRepository.
//
// Deduplication rides on the (store, query, url) UNIQUE constraint;
// violations are silently ignored. Empty outcomes are not persisted, so a
// store that had nothing gets asked again on the next sweep.
type ResultCacheAdapter struct {
	repo *ResultRepository
}

// NewResultCacheAdapter creates a new ResultCacheAdapter with the given repository
func NewResultCacheAdapter(repo *ResultRepository) *ResultCacheAdapter {
	return &ResultCacheAdapter{repo: repo}
}

// Get returns cached hits for the store and query. ok is false when nothing
// is cached (or the lookup failed), telling the engine to hit the store.
func (a *ResultCacheAdapter) Get(store, query string) ([]models.StoreResult, bool) {
	cached, err := a.repo.GetByStoreQuery(store, query)
	if err != nil || len(cached) == 0 {
		return nil, false
	}

	results := make([]models.StoreResult, 0, len(cached))
	for _, c := range cached {
		results = append(results, c.Result())
	}
	return results, true
}

// Put caches store hits for a query. Rows already present are skipped.
func (a *ResultCacheAdapter) Put(store, query string, results []models.StoreResult) error {
	for _, res := range results {
		cached := models.NewCachedResult(0, store, query, res)
		if err := a.repo.Create(cached); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				continue
			}
			return fmt.Errorf("failed to cache result: %w", err)
		}
	}
	return nil
}
