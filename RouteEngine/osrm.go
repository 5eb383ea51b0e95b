package RouteEngine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"MakeMyWay/Metrics"
	"MakeMyWay/Models"
)

// EngineClient is the routing engine seen by the planner and the search
// loop. The production implementation is OSRMClient; tests substitute stubs.
type EngineClient interface {
	// SnapToRoad returns the nearest routable point to p. Best effort: any
	// failure returns p unmodified.
	SnapToRoad(ctx context.Context, p Models.GeoPoint, mode Models.Mode) Models.GeoPoint
	// Route routes through the ordered points and returns the engine's
	// geometry and totals.
	Route(ctx context.Context, points []Models.GeoPoint, mode Models.Mode) (Models.CandidateRoute, error)
}

// nearestResponse mirrors the fields of the engine's nearest-point reply
// that this client reads.
type nearestResponse struct {
	Code      string `json:"code"`
	Waypoints []struct {
		Location []float64 `json:"location"` // [lng, lat]
	} `json:"waypoints"`
}

// routeResponse mirrors the engine's route reply.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// OSRMClient talks to an OSRM-compatible routing server. Every call checks
// the cache first; successful replies populate it.
type OSRMClient struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *RoutingCache
}

// NewOSRMClient creates a client against baseURL, e.g.
// "https://router.project-osrm.org".
func NewOSRMClient(baseURL string, cache *RoutingCache) *OSRMClient {
	return &OSRMClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Cache:   cache,
	}
}

// SnapToRoad asks the engine for the nearest point on the routable network.
// On any failure (network, non-Ok code, no results) the original point is
// returned; snapping never fails a generation.
func (o *OSRMClient) SnapToRoad(ctx context.Context, p Models.GeoPoint, mode Models.Mode) Models.GeoPoint {
	profile := mode.Config().Profile
	cacheKey := "nearest|" + profile + "|" + p.Key(6)
	if cached, ok := o.Cache.Get(cacheKey); ok {
		return cached.(Models.GeoPoint)
	}

	url := fmt.Sprintf("%s/nearest/v1/%s/%f,%f?number=1", o.BaseURL, profile, p.Lng, p.Lat)

	var resp nearestResponse
	if err := o.getJSON(ctx, "nearest", url, &resp); err != nil {
		log.Printf("Snap request failed, keeping original point: %v", err)
		return p
	}
	if resp.Code != "Ok" || len(resp.Waypoints) == 0 || len(resp.Waypoints[0].Location) < 2 {
		// "no results" keeps the original point, it is not an error
		return p
	}

	snapped := Models.GeoPoint{
		Lat: resp.Waypoints[0].Location[1],
		Lng: resp.Waypoints[0].Location[0],
	}
	o.Cache.Put(cacheKey, snapped)
	return snapped
}

// Route routes through the ordered waypoint list with full geometry. The
// engine's distance and duration are authoritative: they generally differ
// slightly from the geometric sum because of road snapping.
func (o *OSRMClient) Route(ctx context.Context, points []Models.GeoPoint, mode Models.Mode) (Models.CandidateRoute, error) {
	if len(points) < 2 {
		return Models.CandidateRoute{}, Models.ErrInsufficientPoints
	}

	profile := mode.Config().Profile
	cacheKey := routeCacheKey(profile, points)
	if cached, ok := o.Cache.Get(cacheKey); ok {
		return cached.(Models.CandidateRoute), nil
	}

	var coords strings.Builder
	for i, p := range points {
		if i > 0 {
			coords.WriteString(";")
		}
		fmt.Fprintf(&coords, "%f,%f", p.Lng, p.Lat)
	}
	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=polyline",
		o.BaseURL, profile, coords.String())

	var resp routeResponse
	if err := o.getJSON(ctx, "route", url, &resp); err != nil {
		return Models.CandidateRoute{}, err
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return Models.CandidateRoute{}, fmt.Errorf("%w: engine code %q", Models.ErrNoRouteFound, resp.Code)
	}

	geometry := decodePolyline(resp.Routes[0].Geometry)
	if len(geometry) < 2 {
		// Engine accepted the request but sent unusable geometry; fall back
		// to the waypoints themselves so the caller still gets a shape.
		geometry = points
	}

	route := Models.CandidateRoute{
		Points:      geometry,
		DistanceKm:  resp.Routes[0].Distance / 1000.0,
		DurationMin: resp.Routes[0].Duration / 60.0,
	}
	o.Cache.Put(cacheKey, route)
	return route, nil
}

func (o *OSRMClient) getJSON(ctx context.Context, op, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	t0 := time.Now()
	Metrics.EngineRequestsTotal.WithLabelValues(op).Inc()
	resp, err := o.HTTP.Do(req)
	if err != nil {
		Metrics.EngineFailuresTotal.WithLabelValues(op).Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		Metrics.EngineFailuresTotal.WithLabelValues(op).Inc()
		return fmt.Errorf("engine returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		Metrics.EngineFailuresTotal.WithLabelValues(op).Inc()
		return err
	}
	Metrics.EngineDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	return nil
}

// routeCacheKey builds a cache key from the profile and the ordered
// coordinate list rounded to ~10 cm.
func routeCacheKey(profile string, points []Models.GeoPoint) string {
	var b strings.Builder
	b.WriteString("route|")
	b.WriteString(profile)
	for _, p := range points {
		b.WriteString("|")
		b.WriteString(p.Key(6))
	}
	return b.String()
}
