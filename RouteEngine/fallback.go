package RouteEngine

import (
	"math"

	"MakeMyWay/Models"
)

// Number of corners in the synthesized fallback polygon.
const fallbackPolygonPoints = 8

// SyntheticLoop builds a plausible-looking loop with no road fidelity: a
// regular polygon on a circle sized so its perimeter lands near the target
// distance, passing through the start point. Explicitly a degraded mode,
// used only when the routing engine is unreachable for a whole search.
func SyntheticLoop(start Models.GeoPoint, targetKm float64, mode Models.Mode) Models.CandidateRoute {
	radius := targetKm / (2 * math.Pi) * 0.8

	// Put the circle's center one radius north of the start so the polygon
	// passes through the start itself.
	center := DestinationPoint(start, math.Pi/2, radius)

	points := make([]Models.GeoPoint, 0, fallbackPolygonPoints+1)
	for i := 0; i < fallbackPolygonPoints; i++ {
		// The start sits at bearing -pi/2 from the center.
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(fallbackPolygonPoints)
		points = append(points, DestinationPoint(center, angle, radius))
	}
	points = append(points, start)
	points[0] = start

	distance := PathLengthKm(points)
	return Models.CandidateRoute{
		Points:      points,
		DistanceKm:  distance,
		DurationMin: distance / mode.Config().AvgSpeedKmh * 60,
	}
}
