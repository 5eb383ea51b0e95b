package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoPointKey(t *testing.T) {
	p := GeoPoint{Lat: 48.8566123, Lng: 2.3522987}
	assert.Equal(t, "48.856612,2.352299", p.Key(6))
	assert.Equal(t, "48.85661,2.35230", p.Key(5))
}

func TestGeoPointNearlyEqual(t *testing.T) {
	p := GeoPoint{Lat: 48.85661, Lng: 2.35229}

	assert.True(t, p.NearlyEqual(GeoPoint{Lat: 48.856612, Lng: 2.352291}))
	assert.False(t, p.NearlyEqual(GeoPoint{Lat: 48.85663, Lng: 2.35229}))
	assert.True(t, p.NearlyEqual(p))
}

func TestModeValid(t *testing.T) {
	assert.True(t, ModeWalking.Valid())
	assert.True(t, ModeRunning.Valid())
	assert.True(t, ModeCycling.Valid())
	assert.False(t, Mode("driving").Valid())
	assert.False(t, Mode("").Valid())
}

func TestModeConfigDefaultsToWalking(t *testing.T) {
	assert.Equal(t, "bike", ModeCycling.Config().Profile)
	assert.Equal(t, ModeConfigs[ModeWalking], Mode("hoverboard").Config())
}

func TestRouteRequestNormalize(t *testing.T) {
	loop := RouteRequest{Start: GeoPoint{Lat: 48.8566, Lng: 2.3522}, TargetDistanceKm: 5}
	loop.Normalize()
	assert.True(t, loop.CloseLoop, "missing end point forces loop mode")
	assert.Equal(t, ModeWalking, loop.Mode)

	end := GeoPoint{Lat: 48.86, Lng: 2.35}
	p2p := RouteRequest{
		Start:            GeoPoint{Lat: 48.8566, Lng: 2.3522},
		End:              &end,
		TargetDistanceKm: 5,
		Mode:             ModeCycling,
	}
	p2p.Normalize()
	assert.False(t, p2p.CloseLoop)
	assert.Equal(t, ModeCycling, p2p.Mode)
}
