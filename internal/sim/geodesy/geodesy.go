// Package geodesy provides the great-circle math used to place entities
// along their waypoint sequences. All functions are pure.
package geodesy

import (
	"math"

	"tactical-sim/pkg/types"
)

// EarthRadiusNM is the mean Earth radius in nautical miles.
const EarthRadiusNM = 3440.065

// Distance returns the total great-circle length of the waypoint sequence
// in nautical miles, summing pairwise haversine distances. Fewer than two
// waypoints yields 0.
func Distance(waypoints []types.Waypoint) float64 {
	if len(waypoints) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(waypoints)-1; i++ {
		total += haversine(waypoints[i], waypoints[i+1])
	}
	return total
}

func haversine(p1, p2 types.Waypoint) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lon1 := p1.Lon * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	lon2 := p2.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Floating-point overshoot can push a just outside [0, 1] for
	// antipodal or near-zero separations; clamp before Asin.
	a = math.Min(math.Max(a, 0), 1)

	return EarthRadiusNM * 2 * math.Asin(math.Sqrt(a))
}

// Interpolate returns the position at the given progress fraction,
// treating the sequence as n-1 equal-length parametric segments. Segment
// length in progress-space is 1/(n-1) regardless of physical segment
// length; progress >= 1 clamps to the final waypoint.
func Interpolate(waypoints []types.Waypoint, progress float64) types.Waypoint {
	if len(waypoints) < 2 {
		if len(waypoints) == 1 {
			return waypoints[0]
		}
		return types.Waypoint{}
	}

	segmentLength := 1.0 / float64(len(waypoints)-1)
	segment := int(progress / segmentLength)
	if segment >= len(waypoints)-1 {
		return waypoints[len(waypoints)-1]
	}

	local := (progress - float64(segment)*segmentLength) / segmentLength
	p1 := waypoints[segment]
	p2 := waypoints[segment+1]

	return types.Waypoint{
		Lat: p1.Lat + (p2.Lat-p1.Lat)*local,
		Lon: p1.Lon + (p2.Lon-p1.Lon)*local,
	}
}

// Bearing returns the direction of travel in degrees [0, 360) at the
// given progress, sampled between the interpolated position and a point
// slightly further along the route. Coincident samples (end of path,
// degenerate geometry) return 0.
func Bearing(waypoints []types.Waypoint, progress float64) float64 {
	if len(waypoints) < 2 {
		return 0
	}

	current := Interpolate(waypoints, progress)
	next := Interpolate(waypoints, math.Min(progress+0.01, 0.999))

	dlat := next.Lat - current.Lat
	dlon := next.Lon - current.Lon
	if dlat == 0 && dlon == 0 {
		return 0
	}

	bearing := math.Atan2(dlon, dlat) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}
