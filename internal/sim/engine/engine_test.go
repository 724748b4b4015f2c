package engine

import (
	"math"
	"testing"
	"time"

	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

func TestFirstTickIsNoOp(t *testing.T) {
	s := store.New()
	p, _ := s.Create(types.KindAircraft, []types.Waypoint{{Lat: 20, Lon: 78}, {Lat: 21, Lon: 79}}, store.Attributes{SpeedKts: 450})

	var batches [][]types.PositionUpdate
	e := New(s, DefaultPeriod, func(u []types.PositionUpdate) { batches = append(batches, u) })

	// The first tick has no previous invocation to measure from; the
	// entity must not move regardless of when it happens.
	e.Tick(time.Now().Add(time.Hour))

	got, _ := s.GetByID(p.ID)
	if got.Progress != 0 {
		t.Errorf("first tick moved progress to %f", got.Progress)
	}
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("batches = %v, expected one batch of one update", batches)
	}
}

func TestTickAdvancesByElapsedTime(t *testing.T) {
	s := store.New()
	p, _ := s.Create(types.KindAircraft, []types.Waypoint{{Lat: 20, Lon: 78}, {Lat: 21, Lon: 79}}, store.Attributes{SpeedKts: 450})

	var last []types.PositionUpdate
	e := New(s, DefaultPeriod, func(u []types.PositionUpdate) { last = u })

	start := time.Now()
	e.Tick(start)
	e.Tick(start.Add(time.Hour))

	got, _ := s.GetByID(p.ID)
	want := math.Mod(450/p.DistanceNM, 1)
	if math.Abs(got.Progress-want) > 1e-9 {
		t.Errorf("progress after one simulated hour = %f, expected %f", got.Progress, want)
	}
	if len(last) != 1 || last[0].ID != p.ID {
		t.Errorf("last batch = %+v", last)
	}
}

func TestEmptyBatchesNotForwarded(t *testing.T) {
	s := store.New()
	calls := 0
	e := New(s, DefaultPeriod, func(u []types.PositionUpdate) { calls++ })

	start := time.Now()
	e.Tick(start)
	e.Tick(start.Add(time.Second))

	if calls != 0 {
		t.Errorf("notifier called %d times on an empty store", calls)
	}
}

func TestZeroAndJitteredElapsedTolerated(t *testing.T) {
	s := store.New()
	p, _ := s.Create(types.KindAircraft, []types.Waypoint{{Lat: 20, Lon: 78}, {Lat: 21, Lon: 79}}, store.Attributes{SpeedKts: 450})

	e := New(s, DefaultPeriod, nil)

	now := time.Now()
	e.Tick(now)
	e.Tick(now) // zero elapsed
	for i := 0; i < 1000; i++ {
		now = now.Add(time.Duration(i%7) * 13 * time.Millisecond)
		e.Tick(now)
		got, _ := s.GetByID(p.ID)
		if got.Progress < 0 || got.Progress >= 1 {
			t.Fatalf("progress %f outside [0, 1) at tick %d", got.Progress, i)
		}
	}
}

func TestDefaultPeriodApplied(t *testing.T) {
	e := New(store.New(), 0, nil)
	if e.period != DefaultPeriod {
		t.Errorf("period = %v, expected %v", e.period, DefaultPeriod)
	}
}
