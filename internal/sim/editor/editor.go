// Package editor implements the begin/commit/cancel transaction around
// mutating a single path's geometry. At most one edit session exists
// system-wide; cancel restores every mutable field of the target path
// from a deep snapshot taken when the session began.
package editor

import (
	"sync"

	"github.com/brunoga/deep"

	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

// Controller is the edit session state machine: Idle, or Editing one
// path. It holds a handle into the store plus its own private snapshot;
// the snapshot shares no memory with the live path.
type Controller struct {
	mu       sync.Mutex
	store    *store.Store
	pathID   string
	snapshot *types.Path
}

func New(s *store.Store) *Controller {
	return &Controller{store: s}
}

// Begin opens an edit session on the given path, capturing a deep copy
// of every mutable field. Fails if a session is already active or the
// path does not exist.
func (c *Controller) Begin(pathID string) (types.Path, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return types.Path{}, types.ErrSessionActive
	}

	p, err := c.store.GetByID(pathID)
	if err != nil {
		return types.Path{}, err
	}

	snap := deep.MustCopy(p)
	c.pathID = pathID
	c.snapshot = &snap
	return p, nil
}

// Editing reports the target of the active session, if any.
func (c *Controller) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pathID, c.snapshot != nil
}

// MoveWaypoint relocates a waypoint of the path under edit. Commands
// referencing any other path are ignored; late or stale collaborator
// messages must not mutate the wrong path.
func (c *Controller) MoveWaypoint(pathID string, index int, point types.Waypoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return types.ErrNoSession
	}
	if pathID != c.pathID {
		return nil
	}
	return c.store.MoveWaypoint(pathID, index, point)
}

// InsertWaypoint adds a waypoint to the path under edit; mismatched
// targets are ignored.
func (c *Controller) InsertWaypoint(pathID string, index int, point types.Waypoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return types.ErrNoSession
	}
	if pathID != c.pathID {
		return nil
	}
	return c.store.InsertWaypoint(pathID, index, point)
}

// RemoveWaypoint deletes a waypoint of the path under edit; mismatched
// targets are ignored. The store's two-waypoint minimum surfaces as
// ErrMinimumWaypoints.
func (c *Controller) RemoveWaypoint(pathID string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return types.ErrNoSession
	}
	if pathID != c.pathID {
		return nil
	}
	return c.store.RemoveWaypoint(pathID, index)
}

// Commit ends the session keeping all applied mutations, discards the
// snapshot, and returns the live path state. If the target vanished
// mid-session (a global reset), the session is still cleared.
func (c *Controller) Commit() (types.Path, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return types.Path{}, types.ErrNoSession
	}

	p, err := c.store.GetByID(c.pathID)
	c.pathID = ""
	c.snapshot = nil
	return p, err
}

// Cancel ends the session reverting the live path, field for field, to
// the snapshot taken at Begin. Restoration is all fields or none; a
// cancel after zero edits still clears the session. Returns the restored
// path state.
func (c *Controller) Cancel() (types.Path, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return types.Path{}, types.ErrNoSession
	}

	snap := *c.snapshot
	err := c.store.Restore(c.pathID, snap)
	c.pathID = ""
	c.snapshot = nil
	if err != nil {
		// Target vanished mid-session; nothing to restore into.
		return types.Path{}, err
	}
	return snap, nil
}

// DeletePath removes a path, refusing if it is the target of the active
// session. Deleting out from under an open edit is never allowed.
func (c *Controller) DeletePath(pathID string) (types.Path, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && pathID == c.pathID {
		return types.Path{}, types.ErrPathLocked
	}
	return c.store.Delete(pathID)
}
