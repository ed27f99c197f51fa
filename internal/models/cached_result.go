package models

import (
	"fmt"
	"time"
)

var _ Model = (*CachedResult)(nil)

// CachedResult is a persisted store search result.
//
// Results are cached per (store, query) so repeat sweeps over the same
// tracklist skip the network entirely.
type CachedResult struct {
	id        string
	sequence  int
	store     string
	query     string
	result    StoreResult
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedResult wraps a StoreResult for persistence under the given store and normalized query.
func NewCachedResult(sequence int, store, query string, result StoreResult) *CachedResult {
	now := time.Now()
	return &CachedResult{
		sequence:  sequence,
		store:     store,
		query:     query,
		result:    result,
		createdAt: now,
		updatedAt: now,
	}
}

// HydrateCachedResult reconstructs a CachedResult from database columns.
func HydrateCachedResult(id string, sequence int, store, query string, result StoreResult, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedResult {
	return &CachedResult{
		id:        id,
		sequence:  sequence,
		store:     store,
		query:     query,
		result:    result,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (r *CachedResult) ID() string            { return r.id }
func (r *CachedResult) Sequence() int         { return r.sequence }
func (r *CachedResult) Store() string         { return r.store }
func (r *CachedResult) Query() string         { return r.query }
func (r *CachedResult) Result() StoreResult   { return r.result }
func (r *CachedResult) CreatedAt() time.Time  { return r.createdAt }
func (r *CachedResult) UpdatedAt() time.Time  { return r.updatedAt }
func (r *CachedResult) DeletedAt() *time.Time { return r.deletedAt }

func (r *CachedResult) SetID(id string)               { r.id = id }
func (r *CachedResult) SetUpdatedAt(t time.Time)      { r.updatedAt = t }
func (r *CachedResult) SetDeletedAt(t *time.Time)     { r.deletedAt = t }
func (r *CachedResult) SetResult(res StoreResult)     { r.result = res }
func (r *CachedResult) SetSequence(sequence int)      { r.sequence = sequence }
func (r *CachedResult) SetStoreQuery(store, q string) { r.store = store; r.query = q }

// Validate checks required fields before persistence.
func (r *CachedResult) Validate() error {
	if r.id == "" {
		return fmt.Errorf("cached result missing id")
	}
	if r.store == "" {
		return fmt.Errorf("cached result missing store")
	}
	if r.query == "" {
		return fmt.Errorf("cached result missing query")
	}
	if r.result.URL == "" {
		return fmt.Errorf("cached result missing url")
	}
	return nil
}
