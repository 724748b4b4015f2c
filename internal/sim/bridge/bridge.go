// Package bridge is the narrow boundary collaborators call into. It
// translates operator commands to store/editor calls and fans outbound
// notifications to registered collaborators; it performs no business
// logic of its own.
package bridge

import (
	"github.com/labstack/gommon/log"

	"tactical-sim/internal/sim/editor"
	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

// Notifier receives outbound notifications. Implementations must return
// promptly; the bridge calls them synchronously.
type Notifier interface {
	PathAdded(types.Path)
	PathRemoved(id string)
	PathsCleared()
	EditStarted(id string)
	EditStopped(final types.Path)
	PositionUpdates([]types.PositionUpdate)
}

// Bridge adapts collaborator commands to the path store and edit
// session controller.
type Bridge struct {
	store     *store.Store
	editor    *editor.Controller
	notifiers []Notifier
	journal   *journal
}

func New(s *store.Store, e *editor.Controller, notifiers ...Notifier) *Bridge {
	return &Bridge{
		store:     s,
		editor:    e,
		notifiers: notifiers,
		journal:   newJournal(50),
	}
}

// CreatePath adds a new path from explicit waypoints.
func (b *Bridge) CreatePath(kind types.PathKind, waypoints []types.Waypoint, attrs store.Attributes) (types.Path, error) {
	p, err := b.store.Create(kind, waypoints, attrs)
	if err != nil {
		log.Warnf("create %s path rejected: %v", kind, err)
		return types.Path{}, err
	}
	b.journal.add(p.ID, "path created")
	for _, n := range b.notifiers {
		n.PathAdded(p)
	}
	return p, nil
}

// CreateManualPath builds a straight-line path from start to end,
// densified to ten evenly interpolated waypoints.
func (b *Bridge) CreateManualPath(kind types.PathKind, start, end types.Waypoint, speedKts, altitudeFt float64) (types.Path, error) {
	const numPoints = 10
	waypoints := make([]types.Waypoint, numPoints)
	for i := range waypoints {
		t := float64(i) / float64(numPoints-1)
		waypoints[i] = types.Waypoint{
			Lat: start.Lat + (end.Lat-start.Lat)*t,
			Lon: start.Lon + (end.Lon-start.Lon)*t,
		}
	}
	return b.CreatePath(kind, waypoints, store.Attributes{SpeedKts: speedKts, AltitudeFt: altitudeFt})
}

// BeginEdit opens the system-wide edit session on a path.
func (b *Bridge) BeginEdit(id string) (types.Path, error) {
	p, err := b.editor.Begin(id)
	if err != nil {
		log.Warnf("begin edit %s rejected: %v", id, err)
		return types.Path{}, err
	}
	b.journal.add(id, "edit started")
	for _, n := range b.notifiers {
		n.EditStarted(id)
	}
	return p, nil
}

func (b *Bridge) MoveWaypoint(id string, index int, point types.Waypoint) error {
	return b.editor.MoveWaypoint(id, index, point)
}

func (b *Bridge) InsertWaypoint(id string, index int, point types.Waypoint) error {
	return b.editor.InsertWaypoint(id, index, point)
}

func (b *Bridge) RemoveWaypoint(id string, index int) error {
	return b.editor.RemoveWaypoint(id, index)
}

// UpdatePathWaypoints replaces a path's route wholesale, outside any
// edit session. The store recomputes distance and clamps progress.
func (b *Bridge) UpdatePathWaypoints(id string, waypoints []types.Waypoint) error {
	if err := b.store.UpdateWaypoints(id, waypoints); err != nil {
		log.Warnf("update waypoints on %s rejected: %v", id, err)
		return err
	}
	b.journal.add(id, "waypoints replaced")
	return nil
}

// CommitEdit ends the session keeping all applied edits.
func (b *Bridge) CommitEdit() (types.Path, error) {
	p, err := b.editor.Commit()
	if err != nil {
		return types.Path{}, err
	}
	b.journal.add(p.ID, "edit committed")
	for _, n := range b.notifiers {
		n.EditStopped(p)
	}
	return p, nil
}

// CancelEdit ends the session reverting the path to its pre-edit state.
func (b *Bridge) CancelEdit() (types.Path, error) {
	p, err := b.editor.Cancel()
	if err != nil {
		return types.Path{}, err
	}
	b.journal.add(p.ID, "edit cancelled, path restored")
	for _, n := range b.notifiers {
		n.EditStopped(p)
	}
	return p, nil
}

// DeletePath removes a path unless it is under active edit.
func (b *Bridge) DeletePath(id string) (types.Path, error) {
	p, err := b.editor.DeletePath(id)
	if err != nil {
		log.Warnf("delete %s rejected: %v", id, err)
		return types.Path{}, err
	}
	b.journal.add(id, "path deleted")
	for _, n := range b.notifiers {
		n.PathRemoved(id)
	}
	return p, nil
}

// ClearAll empties the store and resets identifier allocation. An open
// edit session is abandoned; its next transition observes the missing
// target and clears itself.
func (b *Bridge) ClearAll() {
	b.store.ClearAll()
	b.journal.add("", "all paths cleared")
	for _, n := range b.notifiers {
		n.PathsCleared()
	}
}

// ForwardUpdates fans a position-update batch to every collaborator in
// one call per notifier; batches are never split or reordered.
func (b *Bridge) ForwardUpdates(updates []types.PositionUpdate) {
	for _, n := range b.notifiers {
		n.PositionUpdates(updates)
	}
}

// Paths returns an independent snapshot of all paths.
func (b *Bridge) Paths() map[string]types.Path {
	return b.store.GetAll()
}

// Counts returns the number of aircraft and track paths.
func (b *Bridge) Counts() (aircraft, tracks int) {
	return b.store.Counts()
}
