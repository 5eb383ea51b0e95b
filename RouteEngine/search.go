package RouteEngine

import (
	"context"
	"log"
	"math"

	"MakeMyWay/Metrics"
	"MakeMyWay/Models"
)

// SearchState reports how a search ended.
type SearchState int

const (
	StateSearching SearchState = iota
	// StateConverged means a candidate met the tolerance for its bucket.
	StateConverged
	// StateExhausted means every attempt was spent; the best candidate seen
	// is still returned, the state is informational only.
	StateExhausted
)

func (s SearchState) String() string {
	switch s {
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return "searching"
	}
}

// SearchResult is what one Generate invocation yields.
type SearchResult struct {
	Route    Models.CandidateRoute
	State    SearchState
	Attempts int
	// Fallback marks a synthesized route produced without the engine.
	Fallback bool
}

// RouteSearch runs the convergence loop: repeated waypoint generation and
// routing until a candidate lands inside the distance tolerance or the
// attempt budget runs out.
type RouteSearch struct {
	Engine    EngineClient
	Planner   Planner
	Augmenter *DistanceAugmenter
}

// NewRouteSearch wires a search over the given engine with default planner
// and augmenter.
func NewRouteSearch(engine EngineClient) *RouteSearch {
	planner := NewWaypointPlanner(engine)
	return &RouteSearch{
		Engine:    engine,
		Planner:   planner,
		Augmenter: &DistanceAugmenter{Engine: engine, Rand: planner.Rand},
	}
}

// Generate is the single entry point: it accepts a normalized RouteRequest
// and returns either a candidate route or a typed failure. The design
// favors producing some usable route over failing; only total exhaustion of
// every corrective strategy surfaces an error.
func (s *RouteSearch) Generate(ctx context.Context, req Models.RouteRequest) (*SearchResult, error) {
	req.Normalize()

	var result *SearchResult
	var err error
	if req.End == nil {
		result, err = s.generateLoop(ctx, req)
	} else {
		result, err = s.generatePointToPoint(ctx, req)
	}

	if err != nil {
		Metrics.SearchesTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	Metrics.SearchesTotal.WithLabelValues(result.State.String()).Inc()
	Metrics.SearchAttempts.Observe(float64(result.Attempts))
	return result, nil
}

// generateLoop searches for a closed loop around the start point.
func (s *RouteSearch) generateLoop(ctx context.Context, req Models.RouteRequest) (*SearchResult, error) {
	target := req.TargetDistanceKm
	maxAttempts := maxAttemptsFor(target)
	tolerance := toleranceFor(req.Mode, target)

	var best *Models.CandidateRoute
	bestDeviation := math.Inf(1)
	radiusFactor := 1.0
	state := StateSearching
	attemptsUsed := 0
	routeFailures := 0

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptsUsed = attempt
		if attempt > 1 {
			radiusFactor = nextRadiusFactor(radiusFactor, target, best, attempt)
		}

		waypoints := s.Planner.GenerateWaypoints(ctx, req.Start, target, req.Mode, radiusFactor)
		if len(waypoints) < 2 {
			log.Printf("Attempt %d produced %d waypoints, skipping", attempt, len(waypoints))
			continue
		}

		points := make([]Models.GeoPoint, 0, len(waypoints)+2)
		points = append(points, req.Start)
		points = append(points, waypoints...)
		points = append(points, req.Start)

		candidate, err := s.Engine.Route(ctx, points, req.Mode)
		if err != nil {
			// A failed routing call forfeits this attempt, never the search.
			log.Printf("Attempt %d routing failed: %v", attempt, err)
			routeFailures++
			continue
		}

		deviation := math.Abs(candidate.DistanceKm - target)
		if deviation < bestDeviation {
			c := candidate
			best = &c
			bestDeviation = deviation
		}
		if deviation < target*tolerance {
			state = StateConverged
			break
		}
	}

	if best == nil {
		if routeFailures > 0 {
			// The engine never answered; degrade to a synthesized loop
			// rather than sending the caller away empty-handed.
			log.Printf("Engine unavailable for all %d attempts, synthesizing fallback loop", attemptsUsed)
			route := SyntheticLoop(req.Start, target, req.Mode)
			return &SearchResult{Route: route, State: StateExhausted, Attempts: attemptsUsed, Fallback: true}, nil
		}
		return nil, Models.ErrRouteGenerationFailed
	}

	// Loop routes must begin and end exactly at the start point even when
	// the engine's first geometry point sits on the snapped road.
	best.Points = pinEndpoints(best.Points, req.Start, req.Start)

	if state != StateConverged {
		state = StateExhausted
	}
	return &SearchResult{Route: *best, State: state, Attempts: attemptsUsed}, nil
}

// nextRadiusFactor corrects the search radius toward target/bestDistance.
// Later attempts apply the correction more aggressively; the factor is
// clamped so one bad candidate cannot fling the ring across the city.
func nextRadiusFactor(current, targetKm float64, best *Models.CandidateRoute, attempt int) float64 {
	if best == nil || best.DistanceKm <= 0 {
		// Nothing to correct against yet; widen steadily.
		return clamp(current*1.4, 0.5, 3.0)
	}

	aggressiveness := [...]float64{0, 0, 0.6, 0.85, 1.1, 1.35}
	exp := aggressiveness[len(aggressiveness)-1]
	if attempt < len(aggressiveness) {
		exp = aggressiveness[attempt]
	}

	ratio := targetKm / best.DistanceKm
	return clamp(current*math.Pow(ratio, exp), 0.5, 3.0)
}

// generatePointToPoint handles routes with a distinct end point.
func (s *RouteSearch) generatePointToPoint(ctx context.Context, req Models.RouteRequest) (*SearchResult, error) {
	target := req.TargetDistanceKm
	end := *req.End

	direct, err := s.Engine.Route(ctx, []Models.GeoPoint{req.Start, end}, req.Mode)
	if err != nil {
		// Even the direct call failed; hand back a straight line as the
		// last resort rather than erroring a point-to-point request.
		log.Printf("Direct routing failed, falling back to straight line: %v", err)
		return &SearchResult{Route: straightLineRoute(req.Start, end, req.Mode), State: StateExhausted, Attempts: 1, Fallback: true}, nil
	}

	// Close enough already: no search needed.
	if math.Abs(direct.DistanceKm-target) <= target*directAcceptFraction {
		return &SearchResult{Route: direct, State: StateConverged, Attempts: 1}, nil
	}

	// A direct path longer than the target cannot be shortened without
	// degrading correctness: return it unmodified.
	if direct.DistanceKm > target {
		return &SearchResult{Route: direct, State: StateExhausted, Attempts: 1}, nil
	}

	padded, err := s.padPointToPoint(ctx, req, direct)
	if err != nil {
		log.Printf("Point-to-point padding failed, returning direct route: %v", err)
		return &SearchResult{Route: direct, State: StateExhausted, Attempts: 1}, nil
	}
	state := StateExhausted
	if math.Abs(padded.DistanceKm-target) <= target*toleranceFor(req.Mode, target) {
		state = StateConverged
	}
	return &SearchResult{Route: padded, State: state, Attempts: 2}, nil
}

// padPointToPoint adds the missing distance between start and end by
// inserting bounded perpendicular detours along the direct line.
func (s *RouteSearch) padPointToPoint(ctx context.Context, req Models.RouteRequest, direct Models.CandidateRoute) (Models.CandidateRoute, error) {
	target := req.TargetDistanceKm
	end := *req.End
	row := segmentRowFor(target)

	missing := target - direct.DistanceKm
	segments := int(math.Ceil(missing / row.SegmentKm))
	if segments < 1 {
		segments = 1
	}
	if segments > 8 {
		segments = 8
	}

	bearing := lineBearing(req.Start, end)
	detours := make([]Models.GeoPoint, 0, segments)
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments+1)
		sub := Interpolate(req.Start, end, t)

		// Each detour contributes roughly twice its offset in extra path;
		// cap it so short targets do not overshoot.
		offset := math.Min(missing/float64(segments)/2.0, row.DetourCapKm)
		side := 1.0
		if s.Augmenter != nil && s.Augmenter.Rand != nil && s.Augmenter.Rand.Float64() < 0.5 {
			side = -1.0
		}
		detour := DestinationPoint(sub, bearing+side*math.Pi/2, offset)
		detours = append(detours, s.Engine.SnapToRoad(ctx, detour, req.Mode))
	}

	points := make([]Models.GeoPoint, 0, segments+2)
	points = append(points, req.Start)
	points = append(points, detours...)
	points = append(points, end)

	padded, err := s.Engine.Route(ctx, points, req.Mode)
	if err != nil {
		return Models.CandidateRoute{}, err
	}

	if padded.DistanceKm < target*row.AugmentFrac && s.Augmenter != nil {
		augmented, err := s.Augmenter.AddExtraDetours(ctx, points, target, padded.DistanceKm, req.Mode)
		if err == nil {
			return augmented, nil
		}
		log.Printf("Distance augmentation failed, keeping padded route: %v", err)
	}
	return padded, nil
}

// straightLineRoute is the degenerate two-point fallback for point-to-point
// requests when the engine is unreachable.
func straightLineRoute(start, end Models.GeoPoint, mode Models.Mode) Models.CandidateRoute {
	distance := HaversineKm(start, end)
	return Models.CandidateRoute{
		Points:      []Models.GeoPoint{start, end},
		DistanceKm:  distance,
		DurationMin: distance / mode.Config().AvgSpeedKmh * 60,
	}
}

// pinEndpoints forces the first and last geometry points onto the requested
// endpoints.
func pinEndpoints(points []Models.GeoPoint, first, last Models.GeoPoint) []Models.GeoPoint {
	if len(points) == 0 {
		return []Models.GeoPoint{first, last}
	}
	pinned := make([]Models.GeoPoint, len(points))
	copy(pinned, points)
	pinned[0] = first
	pinned[len(pinned)-1] = last
	return pinned
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
