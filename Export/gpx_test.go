package Export

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkrajina/gpxgo/gpx"

	"MakeMyWay/Models"
)

func sampleRoute() Models.CandidateRoute {
	return Models.CandidateRoute{
		Points: []Models.GeoPoint{
			{Lat: 48.8566, Lng: 2.3522},
			{Lat: 48.8600, Lng: 2.3480},
			{Lat: 48.8566, Lng: 2.3522},
		},
		DistanceKm:  5.2,
		DurationMin: 62,
	}
}

func TestToGPXRoundTrip(t *testing.T) {
	data, err := ToGPX(sampleRoute(), "Morning loop")
	require.NoError(t, err)

	doc, err := gpx.ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "MakeMyWay", doc.Creator)
	assert.Equal(t, "Morning loop", doc.Name)
	require.Len(t, doc.Tracks, 1)
	require.Len(t, doc.Tracks[0].Segments, 1)

	points := doc.Tracks[0].Segments[0].Points
	require.Len(t, points, 3)
	assert.InDelta(t, 48.8566, points[0].Latitude, 1e-9)
	assert.InDelta(t, 2.3522, points[0].Longitude, 1e-9)
	assert.InDelta(t, 48.8600, points[1].Latitude, 1e-9)
}

func TestToGPXDefaultName(t *testing.T) {
	data, err := ToGPX(sampleRoute(), "")
	require.NoError(t, err)

	doc, err := gpx.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "MakeMyWay route", doc.Name)
}

func TestDownloadGPXEndpoint(t *testing.T) {
	app := fiber.New()
	app.Post("/api/route/gpx", DownloadGPX)

	payload, err := json.Marshal(GPXRequest{Name: "Evening run", Route: sampleRoute()})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/route/gpx", strings.NewReader(string(payload)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/gpx+xml", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "route.gpx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	doc, err := gpx.ParseBytes(body)
	require.NoError(t, err)
	assert.Equal(t, "Evening run", doc.Name)
}

func TestDownloadGPXRejectsShortRoute(t *testing.T) {
	app := fiber.New()
	app.Post("/api/route/gpx", DownloadGPX)

	req := httptest.NewRequest(fiber.MethodPost, "/api/route/gpx",
		strings.NewReader(`{"route":{"points":[{"lat":1,"lng":2}]}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
