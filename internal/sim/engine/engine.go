// Package engine drives the simulation at a fixed interval, advancing
// every path's progress each tick and forwarding the resulting
// position-update batch downstream.
package engine

import (
	"context"
	"time"

	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

// DefaultPeriod matches the downstream transmission cadence (50 Hz).
// The engine accepts any period; nothing below depends on this value.
const DefaultPeriod = 20 * time.Millisecond

// Engine computes elapsed wall-clock time between invocations and feeds
// it to the store. Batches are forwarded in a single call and never
// split; empty batches are dropped.
type Engine struct {
	store    *store.Store
	period   time.Duration
	notify   func([]types.PositionUpdate)
	lastTick time.Time
}

func New(s *store.Store, period time.Duration, notify func([]types.PositionUpdate)) *Engine {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Engine{store: s, period: period, notify: notify}
}

// Tick advances the simulation by the wall-clock time elapsed since the
// previous Tick. The first invocation is a no-op advance (zero elapsed).
// Jittered or zero elapsed times are harmless; progress only ever moves
// forward by speed*elapsed.
func (e *Engine) Tick(now time.Time) {
	var elapsed float64
	if !e.lastTick.IsZero() {
		elapsed = now.Sub(e.lastTick).Seconds()
	}
	e.lastTick = now

	updates := e.store.Advance(elapsed)
	if len(updates) > 0 && e.notify != nil {
		e.notify(updates)
	}
}

// Run ticks at the configured period until the context is cancelled.
// In-flight ticks always complete; stopping the engine is simply
// ceasing to invoke it.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.Tick(now)
		}
	}
}
