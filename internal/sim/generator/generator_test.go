package generator

import (
	"testing"

	"tactical-sim/internal/sim/bridge"
	"tactical-sim/internal/sim/editor"
	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

type nopNotifier struct{}

func (nopNotifier) PathAdded(types.Path)                   {}
func (nopNotifier) PathRemoved(string)                     {}
func (nopNotifier) PathsCleared()                          {}
func (nopNotifier) EditStarted(string)                     {}
func (nopNotifier) EditStopped(types.Path)                 {}
func (nopNotifier) PositionUpdates([]types.PositionUpdate) {}

func TestGenerateCountsAndKinds(t *testing.T) {
	s := store.New()
	b := bridge.New(s, editor.New(s), nopNotifier{})
	g := New(b, DefaultRegions())

	if err := g.Generate(12, 25); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	aircraft, tracks := s.Counts()
	if aircraft != 12 || tracks != 25 {
		t.Errorf("counts = %d aircraft, %d tracks; expected 12, 25", aircraft, tracks)
	}
}

func TestGeneratedPathsWithinRegions(t *testing.T) {
	region := Region{Name: "BOX", MinLat: 10, MaxLat: 12, MinLon: 70, MaxLon: 73}
	s := store.New()
	b := bridge.New(s, editor.New(s), nopNotifier{})
	g := New(b, []Region{region})

	if err := g.Generate(10, 10); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for id, p := range s.GetAll() {
		if n := len(p.Waypoints); n < minWaypoints || n > maxWaypoints {
			t.Errorf("%s has %d waypoints, expected %d-%d", id, n, minWaypoints, maxWaypoints)
		}
		for _, w := range p.Waypoints {
			if w.Lat < region.MinLat || w.Lat > region.MaxLat || w.Lon < region.MinLon || w.Lon > region.MaxLon {
				t.Errorf("%s waypoint %+v outside region bounds", id, w)
			}
		}
		if p.DistanceNM <= 0 {
			t.Errorf("%s has zero distance", id)
		}
		if p.SpeedKts <= 0 || p.AltitudeFt <= 0 {
			t.Errorf("%s missing kinematic attributes: %+v", id, p)
		}
	}
}

func TestGeneratedAttributeRanges(t *testing.T) {
	s := store.New()
	b := bridge.New(s, editor.New(s), nopNotifier{})
	g := New(b, DefaultRegions())

	if err := g.Generate(30, 30); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for id, p := range s.GetAll() {
		switch p.Kind {
		case types.KindAircraft:
			if p.SpeedKts < bulkAircraftMinSpeedKts || p.SpeedKts > bulkAircraftMaxSpeedKts {
				t.Errorf("%s speed %f outside bulk aircraft range", id, p.SpeedKts)
			}
			if p.AltitudeFt < bulkAircraftMinAltFt || p.AltitudeFt > bulkAircraftMaxAltFt {
				t.Errorf("%s altitude %f outside bulk aircraft range", id, p.AltitudeFt)
			}
		case types.KindTrack:
			if p.SpeedKts < bulkTrackMinSpeedKts || p.SpeedKts > bulkTrackMaxSpeedKts {
				t.Errorf("%s speed %f outside bulk track range", id, p.SpeedKts)
			}
			if p.AltitudeFt < bulkTrackMinAltFt || p.AltitudeFt > bulkTrackMaxAltFt {
				t.Errorf("%s altitude %f outside bulk track range", id, p.AltitudeFt)
			}
		}
	}
}
