package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Scraping and search errors
	ErrRequestFailed    = fmt.Errorf("request failed")
	ErrArtistNotFound   = fmt.Errorf("artist page not found")
	ErrNoMixesFound     = fmt.Errorf("no mixes found")
	ErrNoTracklist      = fmt.Errorf("no tracklist found")
	ErrStoreUnavailable = fmt.Errorf("store unavailable")

	// Input validation errors
	ErrNoTracks        = fmt.Errorf("no valid tracks found")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
