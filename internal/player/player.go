// package player implements the preview playback controller: a per-session
// state machine that starts previews on dwell, stops them on leave, and
// exposes transport keys (rewind, fast-forward, skip, buy).
//
// The controller owns two pieces of mutable state, the now-playing item and
// the single pending hover timer, both encapsulated here and guarded by a
// mutex because timer callbacks arrive on their own goroutines. The playing
// marker itself belongs to the page; the controller only toggles it through
// the item's play affordance.
package player

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/host"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

// Key identifies a transport key press.
type Key int

const (
	KeyRewind Key = iota
	KeyForward
	KeySkip
	KeyBuy
)

// Config holds the controller's fixed delays and offsets.
type Config struct {
	HoverDelay   time.Duration // dwell before a hover starts playback
	SeekStep     time.Duration // rewind / fast-forward offset
	PollInterval time.Duration // readiness poll cadence
	PollTimeout  time.Duration // hard deadline for the midpoint seek
	SkipGuard    time.Duration // window in which repeat skips are ignored
}

// DefaultConfig returns the controller defaults.
func DefaultConfig() Config {
	return Config{
		HoverDelay:   500 * time.Millisecond,
		SeekStep:     30 * time.Second,
		PollInterval: 250 * time.Millisecond,
		PollTimeout:  5 * time.Second,
		SkipGuard:    400 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HoverDelay <= 0 {
		c.HoverDelay = d.HoverDelay
	}
	if c.SeekStep <= 0 {
		c.SeekStep = d.SeekStep
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = d.PollTimeout
	}
	if c.SkipGuard <= 0 {
		c.SkipGuard = d.SkipGuard
	}
	return c
}

// Controller drives preview playback for one page.
//
// Events are delivered through [Controller.PointerEnter],
// [Controller.PointerLeave], and [Controller.Press]; a test harness can call
// them synchronously with a fake clock and no UI runtime at all.
type Controller struct {
	mu     sync.Mutex
	page   host.Page
	clock  shared.Clock
	cfg    Config
	logger *log.Logger

	nowPlaying host.Item
	hover      *hoverWait
	poll       *seekPoll
	lastSkip   time.Time
	skipped    bool
}

// hoverWait tracks one pending delayed start. A new hover supersedes the old
// one by identity: stale callbacks see c.hover != h and bail, even when they
// re-arm for the same item.
type hoverWait struct {
	item  host.Item
	timer shared.Timer
}

// seekPoll tracks one outstanding midpoint-seek poll. A new poll supersedes
// the old one by identity: stale callbacks see c.poll != p and bail.
type seekPoll struct {
	timer    shared.Timer
	deadline time.Time
}

// New creates a Controller bound to page. A nil clock means the system clock.
func New(page host.Page, cfg Config, clock shared.Clock, logger *log.Logger) *Controller {
	if clock == nil {
		clock = shared.NewSystemClock()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{
		page:   page,
		clock:  clock,
		cfg:    cfg.withDefaults(),
		logger: logger,
	}
}

// NowPlaying returns the session's current item, or false when idle.
func (c *Controller) NowPlaying() (host.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nowPlaying == nil {
		return nil, false
	}
	return c.nowPlaying, true
}

// PointerEnter arms the hover timer for item. Any previously pending timer
// is superseded: at most one delayed start is outstanding at a time.
func (c *Controller) PointerEnter(item host.Item) {
	if item == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelHoverLocked()
	h := &hoverWait{item: item}
	c.hover = h
	h.timer = c.clock.AfterFunc(c.cfg.HoverDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.hover != h {
			// Superseded or cancelled between fire and lock.
			return
		}
		c.hover = nil
		c.startLocked(item)
	})
}

// PointerLeave cancels a pending hover start for item, or stops item if it
// is the one playing. Leaving an unrelated item is a no-op.
func (c *Controller) PointerLeave(item host.Item) {
	if item == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hover != nil && c.hover.item == item {
		c.cancelHoverLocked()
		return
	}

	if c.nowPlaying == item {
		c.stopLocked(item)
		c.nowPlaying = nil
	}
}

// Toggle starts item immediately, bypassing the hover delay, or stops it
// when it is the one playing. Used for direct activation rather than dwell.
func (c *Controller) Toggle(item host.Item) {
	if item == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hover != nil && c.hover.item == item {
		c.cancelHoverLocked()
	}

	if c.nowPlaying == item {
		c.stopLocked(item)
		c.nowPlaying = nil
		return
	}
	c.startLocked(item)
}

// Press handles a transport key. Rewind, fast-forward, and buy only act
// while something is playing; skip moves the session to the next item in
// sequence, ignoring repeats inside the guard window.
func (c *Controller) Press(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch k {
	case KeyRewind:
		c.seekLocked(-c.cfg.SeekStep.Seconds())
	case KeyForward:
		c.seekLocked(c.cfg.SeekStep.Seconds())
	case KeySkip:
		c.skipLocked()
	case KeyBuy:
		c.buyLocked()
	}
}

// startLocked performs the Playing(a) -> Playing(b) transition: stop the old
// item first so two previews are never audible at once, then trigger the new
// item's play toggle and arm the midpoint seek.
func (c *Controller) startLocked(item host.Item) {
	if c.nowPlaying != nil && c.nowPlaying != item {
		c.stopLocked(c.nowPlaying)
	}

	if !item.Playing() {
		if play, ok := item.PlayControl(); ok {
			play.Trigger()
		}
	}
	c.nowPlaying = item
	c.armSeekPollLocked()
}

// stopLocked triggers the item's play toggle if it is still marked playing,
// and abandons any outstanding readiness poll.
func (c *Controller) stopLocked(item host.Item) {
	c.cancelPollLocked()
	if !item.Playing() {
		return
	}
	if play, ok := item.PlayControl(); ok {
		play.Trigger()
	}
}

// armSeekPollLocked schedules the readiness poll that seeks the audio
// element to its midpoint once enough data is buffered. The poll is
// abandoned unconditionally at its deadline, leaving playback untouched.
func (c *Controller) armSeekPollLocked() {
	c.cancelPollLocked()

	p := &seekPoll{deadline: c.clock.Now().Add(c.cfg.PollTimeout)}
	c.poll = p

	var tick func()
	tick = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.poll != p {
			return
		}

		if audio, ok := c.page.Audio(); ok && audio.ReadyState() >= host.ReadyToSeek {
			audio.SetPosition(audio.Duration() / 2)
			c.poll = nil
			return
		}

		if !c.clock.Now().Before(p.deadline) {
			c.logger.Debug("audio never became seekable, skipping midpoint seek")
			c.poll = nil
			return
		}

		p.timer = c.clock.AfterFunc(c.cfg.PollInterval, tick)
	}
	p.timer = c.clock.AfterFunc(c.cfg.PollInterval, tick)
}

func (c *Controller) seekLocked(offset float64) {
	if c.nowPlaying == nil {
		return
	}
	audio, ok := c.page.Audio()
	if !ok {
		return
	}

	pos := audio.Position() + offset
	if pos < 0 {
		pos = 0
	}
	if d := audio.Duration(); pos > d {
		pos = d
	}
	audio.SetPosition(pos)
}

func (c *Controller) skipLocked() {
	if c.nowPlaying == nil {
		return
	}

	now := c.clock.Now()
	if c.skipped && now.Sub(c.lastSkip) < c.cfg.SkipGuard {
		// Key repeat; a double skip would jump two items.
		return
	}

	next, ok := c.nextItemLocked()
	if !ok {
		return
	}

	c.skipped = true
	c.lastSkip = now
	c.startLocked(next)
	next.ScrollIntoView()
}

// nextItemLocked resolves the item following nowPlaying in sequence order.
func (c *Controller) nextItemLocked() (host.Item, bool) {
	items := c.page.Items()
	for i, it := range items {
		if it == c.nowPlaying && i+1 < len(items) {
			return items[i+1], true
		}
	}
	return nil, false
}

func (c *Controller) buyLocked() {
	if c.nowPlaying == nil {
		return
	}
	if buy, ok := c.nowPlaying.BuyControl(); ok {
		buy.Trigger()
	}
}

func (c *Controller) cancelHoverLocked() {
	if c.hover != nil {
		if c.hover.timer != nil {
			c.hover.timer.Stop()
		}
		c.hover = nil
	}
}

func (c *Controller) cancelPollLocked() {
	if c.poll != nil {
		if c.poll.timer != nil {
			c.poll.timer.Stop()
		}
		c.poll = nil
	}
}

// Close cancels any pending timers. Call on page teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelHoverLocked()
	c.cancelPollLocked()
}
