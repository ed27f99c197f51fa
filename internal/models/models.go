// package models defines the data model for the trainspotter toolkit
package models

import (
	"time"
)

// Model defines the base interface for persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Track is one parsed tracklist entry.
type Track struct {
	Timestamp string // Position within the mix, e.g. "00:00", "[012]", "3."
	Artist    string
	Title     string
	RemixInfo string // Parenthesized remix/mix/dub suffix, if any
}

// Query returns the track's store search query.
func (t Track) Query() string {
	q := t.Artist
	if t.Title != "" {
		if q != "" {
			q += " "
		}
		q += t.Title
	}
	return q
}

// StoreResult is a single hit returned by a digital store search.
type StoreResult struct {
	Store     string // Store display name, e.g. "Bandcamp"
	Artist    string
	Title     string
	URL       string
	Price     string
	Available bool
}

// Mix is one mix page discovered on a MixesDB artist listing.
type Mix struct {
	Title     string
	URL       string
	Tracklist string // Plain-text tracklist, one entry per line
}

// MatchRow is one row of the results CSV: an original track paired with one
// store hit, or a placeholder row when nothing was found anywhere.
type MatchRow struct {
	Timestamp      string `json:"timestamp"`
	OriginalArtist string `json:"original_artist"`
	OriginalTitle  string `json:"original_title"`
	RemixInfo      string `json:"remix_info"`
	Store          string `json:"platform"`
	FoundArtist    string `json:"found_artist"`
	FoundTitle     string `json:"found_title"`
	URL            string `json:"url"`
	Price          string `json:"price"`
}

// NoResultsStore is the placeholder written to MatchRow.Store when no store
// returned anything for a track.
const NoResultsStore = "No results found"
