// package loader implements the incremental content loader: it drives a
// page's pagination until the listing stops growing or a cap is hit, so
// later consumers see the final item list.
package loader

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/host"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

// stallLimit is how many consecutive no-growth iterations the loop tolerates
// before declaring the listing exhausted. A single slow response must not
// terminate the load, so one unchanged poll is not enough.
const stallLimit = 3

// Loader repeatedly triggers pagination on a [host.Page] until a stability
// condition is met or a cap is reached.
type Loader struct {
	page   host.Page
	clock  shared.Clock
	settle time.Duration
	logger *log.Logger
}

// Opts configures a [Loader].
type Opts struct {
	Clock       shared.Clock  // defaults to the system clock
	SettleDelay time.Duration // wait after each scroll / show-more trigger
	Logger      *log.Logger
}

// New creates a Loader for the given page.
func New(page host.Page, opts Opts) *Loader {
	if opts.Clock == nil {
		opts.Clock = shared.NewSystemClock()
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 750 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Loader{
		page:   page,
		clock:  opts.Clock,
		settle: opts.SettleDelay,
		logger: opts.Logger,
	}
}

// LoadAll grows the listing until the item count stops changing for
// [stallLimit] consecutive iterations, reaches maxItems, or ctx is
// cancelled. Best-effort: a slow network yields fewer items, never an
// error. The scroll position is restored to the top on every exit path.
func (l *Loader) LoadAll(ctx context.Context, maxItems int) {
	defer l.page.ScrollToTop()

	prev := -1
	stalls := 0

	for {
		if ctx.Err() != nil {
			l.logger.Info("loading cancelled", "items", l.page.ItemCount())
			return
		}

		count := l.page.ItemCount()
		if maxItems > 0 && count >= maxItems {
			l.logger.Info("loading capped", "items", count, "max", maxItems)
			return
		}

		if count == prev {
			stalls++
			if stalls >= stallLimit {
				l.logger.Info("listing stable, loading complete", "items", count)
				return
			}
		} else {
			stalls = 0
		}
		prev = count

		l.page.ScrollToBottom()
		l.clock.Sleep(ctx, l.settle)

		if more, ok := l.page.ShowMore(); ok {
			more.Trigger()
			l.clock.Sleep(ctx, l.settle)
		}
	}
}
