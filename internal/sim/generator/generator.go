// Package generator creates batches of random paths spread across named
// geographic regions. Each path creation is its own short store critical
// section, so the tick engine is never starved during bulk generation.
package generator

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"tactical-sim/internal/sim/bridge"
	"tactical-sim/internal/sim/store"
	"tactical-sim/pkg/types"
)

// Bulk-generation attribute ranges. These intentionally differ from the
// single-creation defaults: bulk traffic skews faster and higher for
// aircraft, wider for tracks.
const (
	bulkAircraftMinSpeedKts = 350
	bulkAircraftMaxSpeedKts = 550
	bulkAircraftMinAltFt    = 15000
	bulkAircraftMaxAltFt    = 35000

	bulkTrackMinSpeedKts = 300
	bulkTrackMaxSpeedKts = 500
	bulkTrackMinAltFt    = 5000
	bulkTrackMaxAltFt    = 25000

	minWaypoints = 3
	maxWaypoints = 6
)

// Region is a named latitude/longitude bounding box paths are scattered
// within.
type Region struct {
	Name   string
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// DefaultRegions covers the Indian subcontinent.
func DefaultRegions() []Region {
	return []Region{
		{Name: "NORTH", MinLat: 28.0, MaxLat: 35.0, MinLon: 74.0, MaxLon: 80.0},
		{Name: "CENTRAL", MinLat: 20.0, MaxLat: 26.0, MinLon: 75.0, MaxLon: 82.0},
		{Name: "SOUTH", MinLat: 8.0, MaxLat: 16.0, MinLon: 75.0, MaxLon: 80.0},
		{Name: "EAST", MinLat: 20.0, MaxLat: 27.0, MinLon: 82.0, MaxLon: 92.0},
		{Name: "WEST", MinLat: 15.0, MaxLat: 25.0, MinLon: 68.0, MaxLon: 75.0},
		{Name: "NORTHEAST", MinLat: 23.0, MaxLat: 29.0, MinLon: 88.0, MaxLon: 96.0},
	}
}

// Generator scatters random paths across its regions through the
// command boundary, so every generated path is announced like an
// operator-drawn one.
type Generator struct {
	bridge  *bridge.Bridge
	regions []Region
}

func New(b *bridge.Bridge, regions []Region) *Generator {
	if len(regions) == 0 {
		regions = DefaultRegions()
	}
	return &Generator{bridge: b, regions: regions}
}

// Generate creates the requested number of aircraft and track paths,
// each with 3-6 random waypoints inside a randomly chosen region.
// Creations run concurrently; the first failure aborts the batch.
func (g *Generator) Generate(aircraft, tracks int) error {
	var eg errgroup.Group
	eg.SetLimit(8)

	for i := 0; i < aircraft; i++ {
		eg.Go(func() error {
			region := g.regions[rand.Intn(len(g.regions))]
			_, err := g.bridge.CreatePath(types.KindAircraft, randomWaypoints(region), store.Attributes{
				SpeedKts:   randRange(bulkAircraftMinSpeedKts, bulkAircraftMaxSpeedKts),
				AltitudeFt: randRange(bulkAircraftMinAltFt, bulkAircraftMaxAltFt),
			})
			return err
		})
	}

	for i := 0; i < tracks; i++ {
		eg.Go(func() error {
			region := g.regions[rand.Intn(len(g.regions))]
			_, err := g.bridge.CreatePath(types.KindTrack, randomWaypoints(region), store.Attributes{
				SpeedKts:   randRange(bulkTrackMinSpeedKts, bulkTrackMaxSpeedKts),
				AltitudeFt: randRange(bulkTrackMinAltFt, bulkTrackMaxAltFt),
			})
			return err
		})
	}

	return eg.Wait()
}

func randomWaypoints(region Region) []types.Waypoint {
	n := minWaypoints + rand.Intn(maxWaypoints-minWaypoints+1)
	waypoints := make([]types.Waypoint, n)
	for i := range waypoints {
		waypoints[i] = types.Waypoint{
			Lat: region.MinLat + rand.Float64()*(region.MaxLat-region.MinLat),
			Lon: region.MinLon + rand.Float64()*(region.MaxLon-region.MinLon),
		}
	}
	return waypoints
}

func randRange(min, max int) float64 {
	return float64(min + rand.Intn(max-min+1))
}
