// package host defines the boundary with the collection page the preview
// tooling drives. The page, its items, and its audio element are
// collaborators, not owned state: every affordance lookup is an explicit
// optional, and absence is always a valid answer.
package host

// ReadyToSeek is the minimum [Audio.ReadyState] at which enough data is
// buffered to reposition playback.
const ReadyToSeek = 2

// Control is a triggerable affordance on the page (a play toggle, a buy
// link, a "show more" button).
type Control interface {
	Trigger()
}

// Audio exposes the page's single playback element.
type Audio interface {
	// Position returns the current playback position in seconds.
	Position() float64

	// SetPosition moves playback to the given position in seconds.
	SetPosition(seconds float64)

	// Duration returns the total length in seconds.
	Duration() float64

	// ReadyState returns the buffering ordinal; values of [ReadyToSeek] or
	// higher mean seeking is safe.
	ReadyState() int
}

// Item is one entry in the page's ordered listing.
type Item interface {
	// PlayControl returns the item's play affordance, or false when absent.
	// The control is a toggle: triggering it starts playback when the item
	// is idle and stops it when the item is marked playing.
	PlayControl() (Control, bool)

	// BuyControl returns the item's purchase affordance, or false when absent.
	BuyControl() (Control, bool)

	// Playing reports whether the page currently marks this item as playing.
	// The marker is owned by the page, not by callers.
	Playing() bool

	// ScrollIntoView brings the item into the visible viewport.
	ScrollIntoView()
}

// Page is the queryable collection page.
type Page interface {
	// Items returns the ordered item list as currently present.
	Items() []Item

	// ItemCount returns len(Items()) without materializing the slice.
	ItemCount() int

	// Audio returns the page's playback element, or false when none exists.
	Audio() (Audio, bool)

	// ShowMore returns the page's visible load-more affordance, or false
	// when it is absent or hidden.
	ShowMore() (Control, bool)

	ScrollToBottom()
	ScrollToTop()
}
