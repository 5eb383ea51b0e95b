package RouteEngine

import "MakeMyWay/Models"

// decodePolyline decodes a Google polyline5 string, the geometry format the
// routing engine returns, into an ordered point slice.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func decodePolyline(encoded string) []Models.GeoPoint {
	if len(encoded) == 0 {
		return nil
	}

	points := make([]Models.GeoPoint, 0, len(encoded)/4+1)
	index := 0
	lat, lng := 0, 0
	strLen := len(encoded)

	for index < strLen {
		result, shift := 0, 0
		for index < strLen {
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		lat += (result >> 1) ^ (-(result & 1))

		result, shift = 0, 0
		for index < strLen {
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		lng += (result >> 1) ^ (-(result & 1))

		points = append(points, Models.GeoPoint{
			Lat: float64(lat) * 1e-5,
			Lng: float64(lng) * 1e-5,
		})
	}

	return points
}
