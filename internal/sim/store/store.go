// Package store owns the authoritative collection of simulated paths.
// Every operation is internally synchronized: one exclusive lock is held
// for the full duration of each call, and reads copy data out before the
// lock is released so callers never hold references into protected state.
package store

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/brunoga/deep"

	"tactical-sim/internal/sim/geodesy"
	"tactical-sim/pkg/types"
)

// Randomly assigned attribute ranges per kind, used when a creation
// omits speed or altitude.
const (
	aircraftMinSpeedKts = 400
	aircraftMaxSpeedKts = 550
	aircraftMinAltFt    = 10000
	aircraftMaxAltFt    = 35000

	trackMinSpeedKts = 350
	trackMaxSpeedKts = 500
	trackMinAltFt    = 5000
	trackMaxAltFt    = 20000
)

// Attributes carries optional creation parameters. Zero-valued fields are
// assigned automatically: distance from the waypoint geometry, speed and
// altitude uniformly at random within the kind's range.
type Attributes struct {
	DistanceNM float64
	SpeedKts   float64
	AltitudeFt float64
}

// Store is the lock-protected mapping of path ID to path entity. It owns
// identifier allocation: IDs are a kind prefix plus a zero-padded counter
// ("AC-0001", "TRK-0001"), with independent counters per kind. Counters
// are never rewound except by ClearAll.
type Store struct {
	mu             sync.Mutex
	paths          map[string]*types.Path
	nextAircraftID int
	nextTrackID    int
}

func New() *Store {
	return &Store{
		paths:          make(map[string]*types.Path),
		nextAircraftID: 1,
		nextTrackID:    1,
	}
}

// Create allocates the next identifier for the kind and adds a new path.
// At least two waypoints are required.
func (s *Store) Create(kind types.PathKind, waypoints []types.Waypoint, attrs Attributes) (types.Path, error) {
	if !kind.Valid() {
		return types.Path{}, types.ErrInvalidKind
	}
	if len(waypoints) < 2 {
		return types.Path{}, types.ErrMinimumWaypoints
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	if kind == types.KindAircraft {
		id = fmt.Sprintf("AC-%04d", s.nextAircraftID)
		s.nextAircraftID++
	} else {
		id = fmt.Sprintf("TRK-%04d", s.nextTrackID)
		s.nextTrackID++
	}

	p := &types.Path{
		ID:         id,
		Kind:       kind,
		Waypoints:  deep.MustCopy(waypoints),
		DistanceNM: attrs.DistanceNM,
		SpeedKts:   attrs.SpeedKts,
		AltitudeFt: attrs.AltitudeFt,
		Progress:   0,
		Color:      kind.Color(),
		CreatedAt:  time.Now(),
	}
	if p.DistanceNM == 0 {
		p.DistanceNM = geodesy.Distance(p.Waypoints)
	}
	if p.SpeedKts == 0 {
		if kind == types.KindAircraft {
			p.SpeedKts = randRange(aircraftMinSpeedKts, aircraftMaxSpeedKts)
		} else {
			p.SpeedKts = randRange(trackMinSpeedKts, trackMaxSpeedKts)
		}
	}
	if p.AltitudeFt == 0 {
		if kind == types.KindAircraft {
			p.AltitudeFt = randRange(aircraftMinAltFt, aircraftMaxAltFt)
		} else {
			p.AltitudeFt = randRange(trackMinAltFt, trackMaxAltFt)
		}
	}

	s.paths[id] = p
	return deep.MustCopy(*p), nil
}

// GetAll returns an independent snapshot of every path. Mutating the
// result never affects stored state.
func (s *Store) GetAll() map[string]types.Path {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make(map[string]types.Path, len(s.paths))
	for id, p := range s.paths {
		all[id] = deep.MustCopy(*p)
	}
	return all
}

// GetByID returns an independent copy of one path.
func (s *Store) GetByID(id string) (types.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.Path{}, types.ErrNotFound
	}
	return deep.MustCopy(*p), nil
}

// UpdateWaypoints replaces a path's waypoint sequence wholesale,
// recomputes its distance, and clamps progress so it never sits at or
// past the end of the new geometry.
func (s *Store) UpdateWaypoints(id string, waypoints []types.Waypoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.ErrNotFound
	}
	p.Waypoints = deep.MustCopy(waypoints)
	p.DistanceNM = geodesy.Distance(p.Waypoints)
	p.Progress = math.Min(p.Progress, 0.999)
	return nil
}

// MoveWaypoint relocates the waypoint at index and recomputes distance.
func (s *Store) MoveWaypoint(id string, index int, point types.Waypoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.ErrNotFound
	}
	if index < 0 || index >= len(p.Waypoints) {
		return types.ErrInvalidIndex
	}
	p.Waypoints[index] = point
	p.DistanceNM = geodesy.Distance(p.Waypoints)
	return nil
}

// InsertWaypoint inserts a waypoint at index (0..len inclusive) and
// recomputes distance.
func (s *Store) InsertWaypoint(id string, index int, point types.Waypoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.ErrNotFound
	}
	if index < 0 || index > len(p.Waypoints) {
		return types.ErrInvalidIndex
	}
	p.Waypoints = slices.Insert(p.Waypoints, index, point)
	p.DistanceNM = geodesy.Distance(p.Waypoints)
	return nil
}

// RemoveWaypoint deletes the waypoint at index. Paths keep a minimum of
// two waypoints; a removal that would drop below that is refused and
// leaves the path unchanged.
func (s *Store) RemoveWaypoint(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.ErrNotFound
	}
	if index < 0 || index >= len(p.Waypoints) {
		return types.ErrInvalidIndex
	}
	if len(p.Waypoints) <= 2 {
		return types.ErrMinimumWaypoints
	}
	p.Waypoints = slices.Delete(p.Waypoints, index, index+1)
	p.DistanceNM = geodesy.Distance(p.Waypoints)
	return nil
}

// Delete removes a path and returns the deleted entity.
func (s *Store) Delete(id string) (types.Path, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.Path{}, types.ErrNotFound
	}
	delete(s.paths, id)
	return deep.MustCopy(*p), nil
}

// Restore overwrites a live path's mutable fields from a snapshot,
// field for field. The stored path shares no memory with the snapshot
// afterwards.
func (s *Store) Restore(id string, snapshot types.Path) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.paths[id]
	if !ok {
		return types.ErrNotFound
	}
	p.Waypoints = deep.MustCopy(snapshot.Waypoints)
	p.DistanceNM = snapshot.DistanceNM
	p.SpeedKts = snapshot.SpeedKts
	p.AltitudeFt = snapshot.AltitudeFt
	p.Progress = snapshot.Progress
	return nil
}

// ClearAll empties the store and resets both identifier counters, so
// subsequent creations reuse the smallest free numbering.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paths = make(map[string]*types.Path)
	s.nextAircraftID = 1
	s.nextTrackID = 1
}

// Counts returns the number of aircraft and track paths.
func (s *Store) Counts() (aircraft, tracks int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.paths {
		if p.Kind == types.KindAircraft {
			aircraft++
		} else {
			tracks++
		}
	}
	return aircraft, tracks
}

// Advance moves every path's progress forward proportional to elapsed
// time and speed, wrapping modulo 1, and returns one position update per
// moving path. Paths with zero distance do not move and emit nothing.
// Update order within the batch is unspecified.
func (s *Store) Advance(elapsedSeconds float64) []types.PositionUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	updates := make([]types.PositionUpdate, 0, len(s.paths))
	for _, p := range s.paths {
		if p.DistanceNM <= 0 {
			continue
		}

		traveledNM := p.SpeedKts / 3600 * elapsedSeconds
		p.Progress += traveledNM / p.DistanceNM
		if p.Progress >= 1 {
			p.Progress = math.Mod(p.Progress, 1)
		}

		point := geodesy.Interpolate(p.Waypoints, p.Progress)
		updates = append(updates, types.PositionUpdate{
			ID:         p.ID,
			Kind:       p.Kind,
			Lat:        point.Lat,
			Lon:        point.Lon,
			AltitudeFt: p.AltitudeFt,
			SpeedKts:   p.SpeedKts,
			BearingDeg: geodesy.Bearing(p.Waypoints, p.Progress),
		})
	}
	return updates
}

func randRange(min, max int) float64 {
	return float64(min + rand.Intn(max-min+1))
}
