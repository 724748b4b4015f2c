package types

import "errors"

// Command failures are local, recoverable conditions returned to the
// caller; none of them is ever fatal to the process.
var (
	ErrNotFound         = errors.New("path not found")
	ErrInvalidIndex     = errors.New("waypoint index out of range")
	ErrMinimumWaypoints = errors.New("minimum 2 waypoints required")
	ErrInvalidKind      = errors.New("unknown path kind")
	ErrSessionActive    = errors.New("an edit session is already active")
	ErrNoSession        = errors.New("no active edit session")
	ErrPathLocked       = errors.New("path is locked by an active edit session")
)
