package shared

import (
	"context"
	"time"
)

// Timer is a cancellable pending callback returned by [Clock.AfterFunc].
type Timer interface {
	// Stop cancels the timer. It reports false if the callback already fired.
	Stop() bool
}

// Clock abstracts wall time so delay-driven loops (settle waits, hover
// timers, readiness polls) can run against a fake in tests without real
// timers.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is cancelled, whichever comes first.
	Sleep(ctx context.Context, d time.Duration)

	// AfterFunc schedules fn to run after d. The callback may run on its own
	// goroutine; callers that share state with it must synchronize.
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemClock implements [Clock] with the time package.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
