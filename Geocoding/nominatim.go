package Geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"MakeMyWay/Metrics"
	"MakeMyWay/Models"
	"MakeMyWay/RouteEngine"
)

// Place is one address or POI suggestion handed to the frontend. The route
// search never depends on anything here beyond the point.
type Place struct {
	Name  string          `json:"name"`
	Point Models.GeoPoint `json:"point"`
}

// Two suggestions closer than this (in raw degrees, on both axes) are
// considered the same place. Not metrically uniform across latitudes;
// acceptable at the city scale this app serves.
const duplicateThresholdDeg = 0.001

// NominatimClient queries a Nominatim-compatible search endpoint for
// address and POI autocompletion.
type NominatimClient struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *RouteEngine.RoutingCache
}

// NewNominatimClient creates a client against baseURL, e.g.
// "https://nominatim.openstreetmap.org".
func NewNominatimClient(baseURL string, cache *RouteEngine.RoutingCache) *NominatimClient {
	return &NominatimClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Cache:   cache,
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns up to limit deduplicated suggestions for the query.
func (n *NominatimClient) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if limit <= 0 {
		limit = 5
	}

	cacheKey := fmt.Sprintf("geocode|%d|%s", limit, strings.ToLower(strings.TrimSpace(query)))
	if cached, ok := n.Cache.Get(cacheKey); ok {
		return cached.([]Place), nil
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit * 2)) // fetch extra, dedup below

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		n.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "MakeMyWay/1.0")

	Metrics.GeocodeRequestsTotal.Inc()
	resp, err := n.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}

	places := make([]Place, 0, limit)
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		p := Place{Name: r.DisplayName, Point: Models.GeoPoint{Lat: lat, Lng: lon}}
		if isDuplicate(places, p) {
			continue
		}
		places = append(places, p)
		if len(places) == limit {
			break
		}
	}

	n.Cache.Put(cacheKey, places)
	return places, nil
}

// isDuplicate reports whether a place is within the proximity threshold of
// one already kept.
func isDuplicate(kept []Place, p Place) bool {
	for _, k := range kept {
		if math.Abs(k.Point.Lat-p.Point.Lat) < duplicateThresholdDeg &&
			math.Abs(k.Point.Lng-p.Point.Lng) < duplicateThresholdDeg {
			return true
		}
	}
	return false
}
