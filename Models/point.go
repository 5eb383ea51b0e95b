package Models

import "fmt"

// GeoPoint is a coordinate pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Key returns a string form of the point rounded to the given number of
// decimal places. Six decimals (~10 cm) are used for cache lookups, five
// (~1 m) for waypoint deduplication.
func (p GeoPoint) Key(decimals int) string {
	return fmt.Sprintf("%.*f,%.*f", decimals, p.Lat, decimals, p.Lng)
}

// NearlyEqual reports whether two points round to the same ~1 m grid cell.
func (p GeoPoint) NearlyEqual(other GeoPoint) bool {
	return p.Key(5) == other.Key(5)
}
