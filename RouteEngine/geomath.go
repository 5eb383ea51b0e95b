package RouteEngine

import (
	"math"

	"MakeMyWay/Models"
)

// Earth radius in kilometers
const earthRadiusKm = 6371.0

// Flat-earth degrees-per-kilometer approximation, shared by both axes.
// Accurate enough at city scale and kept on purpose: the search loop
// corrects any radius error anyway.
const degreesPerKm = 1.0 / 111.0

// HaversineKm calculates the great-circle distance between two points in km.
func HaversineKm(a, b Models.GeoPoint) float64 {
	if a.Lat == b.Lat && a.Lng == b.Lng {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// DestinationPoint returns the point radiusKm away from center along the
// given bearing (radians, measured counterclockwise from east).
func DestinationPoint(center Models.GeoPoint, bearingRad, radiusKm float64) Models.GeoPoint {
	return Models.GeoPoint{
		Lat: center.Lat + radiusKm*degreesPerKm*math.Sin(bearingRad),
		Lng: center.Lng + radiusKm*degreesPerKm*math.Cos(bearingRad),
	}
}

// PathLengthKm sums the haversine distance between consecutive points. Used
// only as a fallback when the routing engine did not report a distance.
func PathLengthKm(points []Models.GeoPoint) float64 {
	if len(points) < 2 {
		return 0
	}

	var distance float64
	for i := 0; i < len(points)-1; i++ {
		distance += HaversineKm(points[i], points[i+1])
	}
	return distance
}

// Interpolate returns the point a fraction t of the way from a to b along
// the straight line between them.
func Interpolate(a, b Models.GeoPoint, t float64) Models.GeoPoint {
	return Models.GeoPoint{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}

// lineBearing returns the flat-plane bearing of the a->b direction in the
// same convention DestinationPoint uses.
func lineBearing(a, b Models.GeoPoint) float64 {
	return math.Atan2(b.Lat-a.Lat, b.Lng-a.Lng)
}
