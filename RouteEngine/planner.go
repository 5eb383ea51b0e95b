package RouteEngine

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"MakeMyWay/Models"
)

// Planner generates detour waypoints around a center point. RouteSearch
// depends on this interface so tests can count or suppress planner calls.
type Planner interface {
	GenerateWaypoints(ctx context.Context, center Models.GeoPoint, targetKm float64, mode Models.Mode, radiusFactor float64) []Models.GeoPoint
}

// WaypointPlanner places a randomized ring of candidate points around the
// start and snaps each onto the road network.
type WaypointPlanner struct {
	Engine EngineClient
	// Rand is shared with the augmenter and hit by every request, so it
	// must sit on a concurrency-safe source.
	Rand *rand.Rand

	// BatchSize bounds concurrent snap requests per round; BatchPause is a
	// courtesy throttle between rounds toward the public engine, not a
	// correctness requirement. Tests set it to zero.
	BatchSize  int
	BatchPause time.Duration
}

// NewWaypointPlanner creates a planner with a time-seeded, lock-guarded
// random source and the default snap batching.
func NewWaypointPlanner(engine EngineClient) *WaypointPlanner {
	src := &rand.LockedSource{}
	src.Seed(uint64(time.Now().UnixNano()))
	return &WaypointPlanner{
		Engine:     engine,
		Rand:       rand.New(src),
		BatchSize:  3,
		BatchPause: 200 * time.Millisecond,
	}
}

// GenerateWaypoints builds the candidate ring for one search attempt.
// Nondeterministic by design: radius and angle both carry random jitter so
// repeated attempts explore different road geometry.
func (wp *WaypointPlanner) GenerateWaypoints(ctx context.Context, center Models.GeoPoint, targetKm float64, mode Models.Mode, radiusFactor float64) []Models.GeoPoint {
	regime := regimeFor(mode, targetKm)

	baseRadius := targetKm * regime.RadiusFrac
	if baseRadius > regime.RadiusCapKm {
		baseRadius = regime.RadiusCapKm
	}
	effectiveRadius := baseRadius * radiusFactor
	if effectiveRadius > regime.MaxRadiusKm {
		effectiveRadius = regime.MaxRadiusKm
	}

	count := regime.waypointCount(targetKm)

	// Radial variation ±20% for short targets, widening to ±50% for long
	// ones. Angular jitter widens with target distance too, capped so
	// neighboring waypoints cannot swap places.
	radialSpread := 0.2 + 0.3*math.Min(targetKm/50.0, 1.0)
	angularJitter := math.Min(0.12+targetKm/60.0*0.3, 0.35)

	candidates := make([]Models.GeoPoint, 0, count)
	startAngle := wp.Rand.Float64() * 2 * math.Pi
	for i := 0; i < count; i++ {
		angle := startAngle + 2*math.Pi*float64(i)/float64(count)
		angle += (wp.Rand.Float64()*2 - 1) * angularJitter

		radius := effectiveRadius * (1 + (wp.Rand.Float64()*2-1)*radialSpread)
		candidates = append(candidates, DestinationPoint(center, angle, radius))
	}

	snapped := wp.snapBatched(ctx, candidates, mode)

	// Drop near-duplicates (~1 m grid); the engine occasionally snaps two
	// candidates onto the same road point.
	waypoints := make([]Models.GeoPoint, 0, len(snapped))
	for _, p := range snapped {
		dup := false
		for _, kept := range waypoints {
			if p.NearlyEqual(kept) {
				dup = true
				break
			}
		}
		if !dup {
			waypoints = append(waypoints, p)
		}
	}

	return waypoints
}

// snapBatched snaps candidates a few at a time. Each goroutine writes only
// its own slice slot, so no lock is needed; the pause between batches keeps
// the request rate polite.
func (wp *WaypointPlanner) snapBatched(ctx context.Context, candidates []Models.GeoPoint, mode Models.Mode) []Models.GeoPoint {
	batchSize := wp.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}

	snapped := make([]Models.GeoPoint, len(candidates))
	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				snapped[i] = wp.Engine.SnapToRoad(ctx, candidates[i], mode)
			}(i)
		}
		wg.Wait()

		if end < len(candidates) && wp.BatchPause > 0 {
			time.Sleep(wp.BatchPause)
		}
	}
	return snapped
}
