package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

// ResultRepository persists cached store search results.
//
// Rows are unique per (store, query, url); duplicates hit the UNIQUE
// constraint and are treated as already-cached by the adapter.
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a ResultRepository with the given database connection
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a new [models.CachedResult] with generated ID and sequence
func (r *ResultRepository) Create(result *models.CachedResult) error {
	sequence, err := NextSequence(r.db, "results")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	result.SetSequence(sequence)

	id := shared.GenerateID()
	result.SetID(id)

	if err := result.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO results (id, sequence, store, query, artist, title, url, price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res := result.Result()
	_, err = r.db.Exec(query,
		id,
		sequence,
		result.Store(),
		result.Query(),
		res.Artist,
		res.Title,
		res.URL,
		res.Price,
		result.CreatedAt(),
		result.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	return nil
}

// Get retrieves a cached result by ID, excluding soft-deleted rows
func (r *ResultRepository) Get(id string) (*models.CachedResult, error) {
	query := `
		SELECT id, sequence, store, query, artist, title, url, price, created_at, updated_at, deleted_at
		FROM results
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByStoreQuery retrieves all cached results for a store and normalized
// query, in sequence order.
func (r *ResultRepository) GetByStoreQuery(store, searchQuery string) ([]*models.CachedResult, error) {
	query := `
		SELECT id, sequence, store, query, artist, title, url, price, created_at, updated_at, deleted_at
		FROM results
		WHERE store = ? AND query = ? AND deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query, store, searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*models.CachedResult
	for rows.Next() {
		result, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}

// Update modifies an existing cached result
func (r *ResultRepository) Update(result *models.CachedResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	result.SetUpdatedAt(now)

	query := `
		UPDATE results
		SET artist = ?, title = ?, url = ?, price = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	res := result.Result()
	execResult, err := r.db.Exec(query, res.Artist, res.Title, res.URL, res.Price, now, result.ID())
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}

	rows, err := execResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("result not found or already deleted: %s", result.ID())
	}

	return nil
}

// Delete soft-deletes a cached result by ID
func (r *ResultRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE results
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("result not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached results for a store, most recent first.
func (r *ResultRepository) List(store string, limit int) ([]*models.CachedResult, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, sequence, store, query, artist, title, url, price, created_at, updated_at, deleted_at
		FROM results
		WHERE store = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, store, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*models.CachedResult
	for rows.Next() {
		result, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *ResultRepository) scanOne(row *sql.Row) (*models.CachedResult, error) {
	result, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("result not found")
	}
	return result, err
}

func (r *ResultRepository) scanRow(row scannable) (*models.CachedResult, error) {
	var (
		id, store, query     string
		sequence             int
		res                  models.StoreResult
		createdAt, updatedAt time.Time
		deletedAt            sql.NullTime
	)

	err := row.Scan(&id, &sequence, &store, &query, &res.Artist, &res.Title, &res.URL, &res.Price, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	res.Store = store
	res.Available = true

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.HydrateCachedResult(id, sequence, store, query, res, createdAt, updatedAt, deleted), nil
}
