package tasks

import (
	"fmt"

	"github.com/strictlymomo/trainspotters-friend/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchListing Phase = iota
	FetchTracklists
	SearchStores
)

func (p Phase) String() string {
	switch p {
	case FetchListing:
		return "fetch_listing"
	case FetchTracklists:
		return "fetch_tracklists"
	case SearchStores:
		return "search_stores"
	default:
		return ""
	}
}

func fetchListingUpdate(artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchListing,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching mix listing for %s...", artist),
	}
}

func listingLoadedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchListing,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d mixes", count),
	}
}

func fetchTracklistUpdate(step, total int, mix models.Mix) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracklists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, mix.Title),
		Data:    mix,
	}
}

func tracklistFailedUpdate(step, total int, mix models.Mix, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracklists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, mix.Title, err),
	}
}

func searchTrackUpdate(step, total int, track models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchStores,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, track.Artist, track.Title),
		Data:    track,
	}
}
