package Models

// RouteRequest is the structure of the incoming generation request
type RouteRequest struct {
	Start            GeoPoint  `json:"start"`
	End              *GeoPoint `json:"end,omitempty"`
	TargetDistanceKm float64   `json:"targetDistanceKm" validate:"gt=0"`
	Mode             Mode      `json:"mode,omitempty"` // "walking", "running" or "cycling", defaults to "walking"
	CloseLoop        bool      `json:"closeLoop"`
}

// Normalize fills in the implicit parts of a request: a missing end point
// forces loop mode, and an empty mode defaults to walking.
func (r *RouteRequest) Normalize() {
	if r.End == nil {
		r.CloseLoop = true
	}
	if r.Mode == "" {
		r.Mode = ModeWalking
	}
}

// CandidateRoute is a route produced by the routing engine. DistanceKm and
// DurationMin carry the engine's reported totals, which are authoritative;
// they are not recomputed from the geometry.
type CandidateRoute struct {
	Points      []GeoPoint `json:"points"`
	DistanceKm  float64    `json:"distanceKm"`
	DurationMin float64    `json:"durationMin"`
}
