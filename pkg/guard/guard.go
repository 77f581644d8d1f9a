// Package guard admits at most one heavy document operation at a time.
// Requests that arrive while an operation is running are rejected, never
// queued.
package guard

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Guard is a single-slot admission lock
type Guard struct {
	slot     *semaphore.Weighted
	busy     atomic.Bool
	onChange func(busy bool)
}

// New creates an idle guard. onChange, if set, is called with true after an
// operation is admitted and with false after it finishes.
func New(onChange func(busy bool)) *Guard {
	return &Guard{
		slot:     semaphore.NewWeighted(1),
		onChange: onChange,
	}
}

// Busy reports whether an operation is in flight
func (g *Guard) Busy() bool {
	return g.busy.Load()
}

// TryRun runs op if no other operation is in flight and reports whether it
// was admitted. The slot is released on every exit path, including a panic
// in op.
func (g *Guard) TryRun(ctx context.Context, op func(ctx context.Context) error) (bool, error) {
	if !g.slot.TryAcquire(1) {
		return false, nil
	}
	g.setBusy(true)
	defer func() {
		g.setBusy(false)
		g.slot.Release(1)
	}()

	return true, op(ctx)
}

func (g *Guard) setBusy(busy bool) {
	g.busy.Store(busy)
	if g.onChange != nil {
		g.onChange(busy)
	}
}
