package host

import "sync"

// Collection is an in-memory [Page]: a stand-in for the real listing used by
// the TUI preview and by tests. Hooks let callers observe scrolls, grow the
// item list on "show more", and react to play/buy triggers.
type Collection struct {
	mu       sync.Mutex
	items    []*CollectionItem
	audio    *SimAudio
	hasMore  bool
	atBottom bool

	// OnShowMore runs when the load-more control is triggered. Append items
	// via Append from inside the hook to simulate incremental loading.
	OnShowMore func()
}

var _ Page = (*Collection)(nil)

// NewCollection builds a Collection with one item per entry.
func NewCollection(entries []ItemData) *Collection {
	c := &Collection{}
	for _, e := range entries {
		c.items = append(c.items, newCollectionItem(c, e))
	}
	return c
}

// SetAudio installs the page's playback element. Pass nil to remove it.
func (c *Collection) SetAudio(a *SimAudio) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.audio = a
}

// SetHasMore toggles visibility of the load-more control.
func (c *Collection) SetHasMore(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasMore = v
}

// Append adds items to the end of the listing.
func (c *Collection) Append(entries ...ItemData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		c.items = append(c.items, newCollectionItem(c, e))
	}
}

func (c *Collection) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	for i, it := range c.items {
		out[i] = it
	}
	return out
}

func (c *Collection) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection) Audio() (Audio, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.audio == nil {
		return nil, false
	}
	return c.audio, true
}

func (c *Collection) ShowMore() (Control, bool) {
	c.mu.Lock()
	visible := c.hasMore
	c.mu.Unlock()
	if !visible {
		return nil, false
	}
	return controlFunc(func() {
		if c.OnShowMore != nil {
			c.OnShowMore()
		}
	}), true
}

func (c *Collection) ScrollToBottom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.atBottom = true
}

func (c *Collection) ScrollToTop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.atBottom = false
}

// AtTop reports whether the viewport is at the top of the listing.
func (c *Collection) AtTop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.atBottom
}

// NowPlaying returns the item currently marked playing, if any.
func (c *Collection) NowPlaying() (*CollectionItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.playing {
			return it, true
		}
	}
	return nil, false
}

// PlayingCount returns how many items carry the playing marker. The page
// contract says this never exceeds one; tests assert on it.
func (c *Collection) PlayingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		if it.playing {
			n++
		}
	}
	return n
}

// ItemAt returns the concrete item at index i, or false when out of range.
func (c *Collection) ItemAt(i int) (*CollectionItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.items) {
		return nil, false
	}
	return c.items[i], true
}

// ItemData describes one listing entry for [NewCollection].
type ItemData struct {
	Label  string
	BuyURL string

	// NoPlay / NoBuy omit the corresponding affordance, exercising the
	// optional-lookup paths.
	NoPlay bool
	NoBuy  bool

	// OnPlay is invoked after the play toggle flips the marker, with the new
	// state. OnBuy is invoked when the purchase affordance fires.
	OnPlay func(playing bool)
	OnBuy  func(url string)
}

// CollectionItem is the in-memory [Item].
type CollectionItem struct {
	page     *Collection
	data     ItemData
	playing  bool
	scrolled int
}

var _ Item = (*CollectionItem)(nil)

func newCollectionItem(page *Collection, data ItemData) *CollectionItem {
	return &CollectionItem{page: page, data: data}
}

// Label returns the entry's display label.
func (it *CollectionItem) Label() string { return it.data.Label }

// BuyURL returns the entry's purchase link target.
func (it *CollectionItem) BuyURL() string { return it.data.BuyURL }

func (it *CollectionItem) Playing() bool {
	it.page.mu.Lock()
	defer it.page.mu.Unlock()
	return it.playing
}

func (it *CollectionItem) PlayControl() (Control, bool) {
	if it.data.NoPlay {
		return nil, false
	}
	return controlFunc(func() {
		it.page.mu.Lock()
		it.playing = !it.playing
		now := it.playing
		it.page.mu.Unlock()
		if it.data.OnPlay != nil {
			it.data.OnPlay(now)
		}
	}), true
}

func (it *CollectionItem) BuyControl() (Control, bool) {
	if it.data.NoBuy || it.data.BuyURL == "" {
		return nil, false
	}
	return controlFunc(func() {
		if it.data.OnBuy != nil {
			it.data.OnBuy(it.data.BuyURL)
		}
	}), true
}

func (it *CollectionItem) ScrollIntoView() {
	it.page.mu.Lock()
	defer it.page.mu.Unlock()
	it.scrolled++
}

// ScrolledIntoView reports how many times the item was scrolled into view.
func (it *CollectionItem) ScrolledIntoView() int {
	it.page.mu.Lock()
	defer it.page.mu.Unlock()
	return it.scrolled
}

type controlFunc func()

func (f controlFunc) Trigger() { f() }

// SimAudio is an in-memory [Audio]. The TUI advances it on a tick; tests set
// its fields directly.
type SimAudio struct {
	mu       sync.Mutex
	position float64
	duration float64
	ready    int
}

var _ Audio = (*SimAudio)(nil)

// NewSimAudio returns a SimAudio with the given duration in seconds and a
// ReadyState of zero (nothing buffered yet).
func NewSimAudio(duration float64) *SimAudio {
	return &SimAudio{duration: duration}
}

func (a *SimAudio) Position() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

func (a *SimAudio) SetPosition(seconds float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = seconds
}

func (a *SimAudio) Duration() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.duration
}

func (a *SimAudio) ReadyState() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ready
}

// SetReadyState sets the buffering ordinal.
func (a *SimAudio) SetReadyState(v int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ready = v
}

// Advance moves the position forward by dt seconds, clamped to the duration.
func (a *SimAudio) Advance(dt float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position += dt
	if a.position > a.duration {
		a.position = a.duration
	}
}

// Reset rewinds to zero and marks the element unbuffered.
func (a *SimAudio) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = 0
	a.ready = 0
}
