package types

import (
	"encoding/json"
	"fmt"
	"time"
)

type PathKind string

const (
	KindAircraft PathKind = "aircraft"
	KindTrack    PathKind = "track"
)

// Color returns the presentation hint carried on every path of this kind.
func (k PathKind) Color() string {
	if k == KindTrack {
		return "red"
	}
	return "green"
}

func (k PathKind) Valid() bool {
	return k == KindAircraft || k == KindTrack
}

// Waypoint is a WGS84 latitude/longitude pair in degrees. Waypoint order
// within a path defines the travel route.
type Waypoint struct {
	Lat float64
	Lon float64
}

// Waypoints travel on the wire as [lat, lon] pairs.
func (w Waypoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{w.Lat, w.Lon})
}

func (w *Waypoint) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("waypoint: %w", err)
	}
	w.Lat, w.Lon = pair[0], pair[1]
	return nil
}

// Path is a simulated route with kinematic attributes. Progress is the
// fractional position in [0, 1) along the waypoint sequence; it wraps
// modulo 1 so the entity loops back to the start.
type Path struct {
	ID         string     `json:"id"`
	Kind       PathKind   `json:"type"`
	Waypoints  []Waypoint `json:"points"`
	DistanceNM float64    `json:"distance_nm"`
	SpeedKts   float64    `json:"speed_kts"`
	AltitudeFt float64    `json:"altitude_ft"`
	Progress   float64    `json:"current_position"`
	Color      string     `json:"color"`
	CreatedAt  time.Time  `json:"created"`
}

// PositionUpdate is one entity's live position for a single tick.
type PositionUpdate struct {
	ID         string   `json:"id"`
	Kind       PathKind `json:"type"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	AltitudeFt float64  `json:"alt"`
	SpeedKts   float64  `json:"speed"`
	BearingDeg float64  `json:"heading"`
}
