package RouteEngine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MakeMyWay/Models"
)

var paris = Models.GeoPoint{Lat: 48.8566, Lng: 2.3522}

// stubEngine scripts routing results: the n-th Route call returns the n-th
// distance, the last one repeating. A non-nil err fails every call.
type stubEngine struct {
	mu         sync.Mutex
	distances  []float64
	err        error
	snapCalls  int
	routeCalls int
}

func (s *stubEngine) SnapToRoad(_ context.Context, p Models.GeoPoint, _ Models.Mode) Models.GeoPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapCalls++
	return p
}

func (s *stubEngine) Route(_ context.Context, points []Models.GeoPoint, _ Models.Mode) (Models.CandidateRoute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routeCalls++
	if s.err != nil {
		return Models.CandidateRoute{}, s.err
	}
	idx := s.routeCalls - 1
	if idx >= len(s.distances) {
		idx = len(s.distances) - 1
	}
	d := s.distances[idx]
	return Models.CandidateRoute{Points: points, DistanceKm: d, DurationMin: d * 12}, nil
}

// spyPlanner records every planner invocation and hands back a fixed
// triangle of detour points around the center.
type spyPlanner struct {
	calls         int
	radiusFactors []float64
	waypoints     int // 0 means 3
}

func (s *spyPlanner) GenerateWaypoints(_ context.Context, center Models.GeoPoint, _ float64, _ Models.Mode, radiusFactor float64) []Models.GeoPoint {
	s.calls++
	s.radiusFactors = append(s.radiusFactors, radiusFactor)

	n := s.waypoints
	if n == 0 {
		n = 3
	}
	points := make([]Models.GeoPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, Models.GeoPoint{
			Lat: center.Lat + 0.01*float64(i+1),
			Lng: center.Lng + 0.01*float64(i+1),
		})
	}
	return points
}

func newTestSearch(engine EngineClient, planner Planner) *RouteSearch {
	s := NewRouteSearch(engine)
	s.Planner = planner
	return s
}

func TestLoopConvergesFirstAttemptAtExactDistance(t *testing.T) {
	engine := &stubEngine{distances: []float64{5.0}}
	planner := &spyPlanner{}
	search := newTestSearch(engine, planner)

	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		TargetDistanceKm: 5,
		Mode:             Models.ModeWalking,
		CloseLoop:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, StateConverged, result.State)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 5.0, result.Route.DistanceKm)
	assert.Equal(t, paris, result.Route.Points[0])
	assert.Equal(t, paris, result.Route.Points[len(result.Route.Points)-1])
}

func TestLoopKeepsBestCandidateAcrossAttempts(t *testing.T) {
	// 7.0 km misses a 10 km target by 3.0; 9.6 km misses by 0.4 and lands
	// inside the 10% bucket.
	engine := &stubEngine{distances: []float64{7.0, 9.6}}
	planner := &spyPlanner{}
	search := newTestSearch(engine, planner)

	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		TargetDistanceKm: 10,
		Mode:             Models.ModeWalking,
		CloseLoop:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, 9.6, result.Route.DistanceKm)
	assert.Equal(t, StateConverged, result.State)

	// The second attempt must have corrected its radius after the 7 km
	// undershoot.
	require.Len(t, planner.radiusFactors, 2)
	assert.Equal(t, 1.0, planner.radiusFactors[0])
	assert.NotEqual(t, 1.0, planner.radiusFactors[1])
	assert.Greater(t, planner.radiusFactors[1], 1.0)
}

func TestToleranceBucketSelection(t *testing.T) {
	tests := []struct {
		name         string
		target       float64
		mode         Models.Mode
		stubDistance float64
		wantAttempts int
		wantState    SearchState
	}{
		// 6 km sits in the 8% bucket: 0.45 km deviation passes, 0.50 does not.
		{"6km within 8 percent", 6, Models.ModeWalking, 6.45, 1, StateConverged},
		{"6km outside 8 percent", 6, Models.ModeWalking, 6.50, 3, StateExhausted},
		// 25 km sits in the 15% bucket with the extended attempt budget.
		{"25km within 15 percent", 25, Models.ModeRunning, 21.5, 1, StateConverged},
		{"25km outside 15 percent", 25, Models.ModeRunning, 21.0, 5, StateExhausted},
		// Cycling above 30 km uses the loose 25% band.
		{"cycling 40km loose band", 40, Models.ModeCycling, 31.0, 1, StateConverged},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := &stubEngine{distances: []float64{tc.stubDistance}}
			search := newTestSearch(engine, &spyPlanner{})

			result, err := search.Generate(context.Background(), Models.RouteRequest{
				Start:            paris,
				TargetDistanceKm: tc.target,
				Mode:             tc.mode,
				CloseLoop:        true,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantAttempts, result.Attempts)
			assert.Equal(t, tc.wantState, result.State)
		})
	}
}

func TestPointToPointShortCircuit(t *testing.T) {
	// Direct route of 9 km is within 20% of a 10 km target: no search.
	engine := &stubEngine{distances: []float64{9.0}}
	planner := &spyPlanner{}
	search := newTestSearch(engine, planner)

	end := Models.GeoPoint{Lat: 48.8738, Lng: 2.2950}
	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		End:              &end,
		TargetDistanceKm: 10,
		Mode:             Models.ModeWalking,
	})
	require.NoError(t, err)

	assert.Equal(t, StateConverged, result.State)
	assert.Equal(t, 9.0, result.Route.DistanceKm)
	assert.Equal(t, 1, engine.routeCalls)
	assert.Zero(t, planner.calls, "planner must not run when the direct route suffices")
}

func TestPointToPointLongerDirectReturnedUnmodified(t *testing.T) {
	engine := &stubEngine{distances: []float64{15.0}}
	search := newTestSearch(engine, &spyPlanner{})

	end := Models.GeoPoint{Lat: 48.90, Lng: 2.40}
	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		End:              &end,
		TargetDistanceKm: 10,
		Mode:             Models.ModeWalking,
	})
	require.NoError(t, err)

	assert.Equal(t, 15.0, result.Route.DistanceKm)
	assert.Equal(t, 1, engine.routeCalls)
}

func TestPointToPointPadsMissingDistance(t *testing.T) {
	// Direct 6 km, padded 9.8 km: detours are inserted, no augmentation
	// needed above 85% of the target.
	engine := &stubEngine{distances: []float64{6.0, 9.8}}
	search := newTestSearch(engine, &spyPlanner{})

	end := Models.GeoPoint{Lat: 48.88, Lng: 2.30}
	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		End:              &end,
		TargetDistanceKm: 10,
		Mode:             Models.ModeWalking,
	})
	require.NoError(t, err)

	assert.Equal(t, 9.8, result.Route.DistanceKm)
	assert.Equal(t, 2, engine.routeCalls)
	assert.Greater(t, engine.snapCalls, 0, "detour points must be snapped")
	assert.Equal(t, StateConverged, result.State)
}

func TestPointToPointAugmentsWhenStillShort(t *testing.T) {
	// Padded route at 8.0 km stays under 85% of 10 km, so one augmentation
	// pass runs and its 9.5 km result is returned.
	engine := &stubEngine{distances: []float64{6.0, 8.0, 9.5}}
	search := newTestSearch(engine, &spyPlanner{})

	end := Models.GeoPoint{Lat: 48.88, Lng: 2.30}
	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		End:              &end,
		TargetDistanceKm: 10,
		Mode:             Models.ModeWalking,
	})
	require.NoError(t, err)

	assert.Equal(t, 9.5, result.Route.DistanceKm)
	assert.Equal(t, 3, engine.routeCalls, "direct + padded + one augmentation re-route")
}

func TestPointToPointFallsBackToStraightLine(t *testing.T) {
	engine := &stubEngine{err: errors.New("connection refused")}
	search := newTestSearch(engine, &spyPlanner{})

	end := Models.GeoPoint{Lat: 48.88, Lng: 2.30}
	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		End:              &end,
		TargetDistanceKm: 10,
		Mode:             Models.ModeWalking,
	})
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Equal(t, []Models.GeoPoint{paris, end}, result.Route.Points)
	assert.Greater(t, result.Route.DistanceKm, 0.0)
}

func TestLoopFallsBackToPolygonWhenEngineDown(t *testing.T) {
	engine := &stubEngine{err: errors.New("connection refused")}
	search := newTestSearch(engine, &spyPlanner{})

	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		TargetDistanceKm: 5,
		Mode:             Models.ModeWalking,
		CloseLoop:        true,
	})
	require.NoError(t, err, "an unreachable engine must degrade, not fail")

	assert.True(t, result.Fallback)
	assert.GreaterOrEqual(t, len(result.Route.Points), 2)
	assert.Equal(t, paris, result.Route.Points[0])
	assert.Equal(t, paris, result.Route.Points[len(result.Route.Points)-1])
	assert.Greater(t, result.Route.DistanceKm, 0.0)
}

func TestLoopFailsWhenPlannerNeverProducesWaypoints(t *testing.T) {
	engine := &stubEngine{distances: []float64{5.0}}
	planner := &spyPlanner{waypoints: 1}
	search := newTestSearch(engine, planner)

	_, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		TargetDistanceKm: 5,
		Mode:             Models.ModeWalking,
		CloseLoop:        true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, Models.ErrRouteGenerationFailed)
	assert.Zero(t, engine.routeCalls)
	assert.Equal(t, 3, planner.calls, "every attempt should have been tried")
}

// Run with -race: one RouteSearch serves every request, so the planner and
// augmenter share a single random source across goroutines.
func TestGenerateConcurrentRequests(t *testing.T) {
	engine := &stubEngine{distances: []float64{6.0, 8.0, 9.5}}
	search := NewRouteSearch(engine)
	search.Planner.(*WaypointPlanner).BatchPause = 0

	end := Models.GeoPoint{Lat: 48.88, Lng: 2.30}
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				_, err := search.Generate(context.Background(), Models.RouteRequest{
					Start:            paris,
					TargetDistanceKm: 5,
					Mode:             Models.ModeWalking,
					CloseLoop:        true,
				})
				if err != nil {
					errs <- err
				}
				_, err = search.Generate(context.Background(), Models.RouteRequest{
					Start:            paris,
					End:              &end,
					TargetDistanceKm: 10,
					Mode:             Models.ModeWalking,
				})
				if err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestMissingEndImpliesLoop(t *testing.T) {
	engine := &stubEngine{distances: []float64{5.0}}
	planner := &spyPlanner{}
	search := newTestSearch(engine, planner)

	result, err := search.Generate(context.Background(), Models.RouteRequest{
		Start:            paris,
		TargetDistanceKm: 5,
		Mode:             Models.ModeWalking,
		CloseLoop:        false, // no end point forces loop mode anyway
	})
	require.NoError(t, err)
	assert.Equal(t, paris, result.Route.Points[0])
	assert.Equal(t, paris, result.Route.Points[len(result.Route.Points)-1])
	assert.Greater(t, planner.calls, 0)
}
