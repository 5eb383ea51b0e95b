package RouteEngine

import (
	"math"

	"MakeMyWay/Models"
)

// The distance-bucket policies below drive the whole search: which radius
// and waypoint count the planner starts from, how much deviation a
// candidate may have before another attempt is spent, and how aggressively
// point-to-point routes are padded. The thresholds are empirically tuned;
// each table is ordered by MaxTargetKm and scanned first-match.

// plannerRegime describes how waypoints are laid out for one combination of
// mode and target distance range.
type plannerRegime struct {
	// Modes this row applies to; empty means any mode
	Modes []Models.Mode
	// Upper bound (inclusive) on target distance for this row
	MaxTargetKm float64
	// Base radius as a fraction of the target distance
	RadiusFrac float64
	// Hard cap on the base radius before the attempt factor is applied
	RadiusCapKm float64
	// Cap on the effective radius after the attempt factor is applied
	MaxRadiusKm float64
	// Waypoint count bounds
	MinWaypoints int
	MaxWaypoints int
}

var plannerRegimes = []plannerRegime{
	// Short walking and running loops: tight ring, few waypoints.
	{
		Modes:        []Models.Mode{Models.ModeWalking, Models.ModeRunning},
		MaxTargetKm:  8,
		RadiusFrac:   0.16,
		RadiusCapKm:  1.6,
		MaxRadiusKm:  3.0,
		MinWaypoints: 3,
		MaxWaypoints: 4,
	},
	// Longer runs and any walking target above the short band.
	{
		Modes:        []Models.Mode{Models.ModeWalking, Models.ModeRunning},
		MaxTargetKm:  math.Inf(1),
		RadiusFrac:   0.15,
		RadiusCapKm:  5.0,
		MaxRadiusKm:  8.0,
		MinWaypoints: 4,
		MaxWaypoints: 6,
	},
	// Cycling: wide ring, always the full waypoint budget past short targets.
	{
		Modes:        []Models.Mode{Models.ModeCycling},
		MaxTargetKm:  math.Inf(1),
		RadiusFrac:   0.14,
		RadiusCapKm:  12.0,
		MaxRadiusKm:  15.0,
		MinWaypoints: 4,
		MaxWaypoints: 6,
	},
}

// regimeFor picks the first regime row matching mode and target distance.
func regimeFor(mode Models.Mode, targetKm float64) plannerRegime {
	for _, r := range plannerRegimes {
		if targetKm > r.MaxTargetKm {
			continue
		}
		if len(r.Modes) == 0 {
			return r
		}
		for _, m := range r.Modes {
			if m == mode {
				return r
			}
		}
	}
	// Tables end with unbounded rows, so this is only reachable for an
	// unknown mode. Treat it as walking.
	return plannerRegimes[1]
}

// waypointCount scales the count between the regime bounds with target
// distance: one extra waypoint per ~6 km over the regime's entry point.
func (r plannerRegime) waypointCount(targetKm float64) int {
	n := r.MinWaypoints + int(targetKm/6)
	if n > r.MaxWaypoints {
		n = r.MaxWaypoints
	}
	if n < r.MinWaypoints {
		n = r.MinWaypoints
	}
	return n
}

// toleranceRow maps a target distance bucket to the accepted deviation
// fraction.
type toleranceRow struct {
	MaxTargetKm float64
	Fraction    float64
}

var toleranceTable = []toleranceRow{
	{8, 0.08},
	{12, 0.10},
	{20, 0.12},
	{math.Inf(1), 0.15},
}

// Cycling routes above this target get a looser acceptance band: road
// networks rarely offer a 15%-tight loop at that scale.
const (
	cyclingLooseToleranceKm = 30.0
	cyclingLooseTolerance   = 0.25
)

// toleranceFor returns the deviation fraction below which a candidate is
// accepted without further attempts.
func toleranceFor(mode Models.Mode, targetKm float64) float64 {
	if mode == Models.ModeCycling && targetKm > cyclingLooseToleranceKm {
		return cyclingLooseTolerance
	}
	for _, row := range toleranceTable {
		if targetKm <= row.MaxTargetKm {
			return row.Fraction
		}
	}
	return toleranceTable[len(toleranceTable)-1].Fraction
}

// segmentRow drives point-to-point padding: how the missing distance is cut
// into detour segments, how far a detour may stray from the direct line,
// and below which fraction of the target the augmenter is invoked.
type segmentRow struct {
	MaxTargetKm float64
	SegmentKm   float64
	DetourCapKm float64
	AugmentFrac float64
}

var segmentTable = []segmentRow{
	{8, 1.5, 0.4, 0.90},
	{12, 2.0, 0.6, 0.85},
	{20, 2.5, 0.9, 0.85},
	{50, 4.0, 1.5, 0.85},
	{math.Inf(1), 6.0, 2.5, 0.85},
}

func segmentRowFor(targetKm float64) segmentRow {
	for _, row := range segmentTable {
		if targetKm <= row.MaxTargetKm {
			return row
		}
	}
	return segmentTable[len(segmentTable)-1]
}

// Loop searches get three attempts, five for long targets where the first
// guesses are usually far off.
func maxAttemptsFor(targetKm float64) int {
	if targetKm > 20 {
		return 5
	}
	return 3
}

// Direct point-to-point routes within this fraction of the target need no
// search at all.
const directAcceptFraction = 0.20
