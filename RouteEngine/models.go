package RouteEngine

import "MakeMyWay/Models"

// GenerateResponse is the structure of the API response
type GenerateResponse struct {
	Points      []Models.GeoPoint `json:"points"`
	DistanceKm  float64           `json:"distanceKm"`
	DurationMin float64           `json:"durationMin"`
	Converged   bool              `json:"converged"`
	Attempts    int               `json:"attempts"`
	Fallback    bool              `json:"fallback,omitempty"` // synthesized without the routing engine
}
