package RouteEngine

import (
	"math"

	"context"

	"golang.org/x/exp/rand"

	"MakeMyWay/Models"
)

// DistanceAugmenter stretches an undershooting route by inserting extra
// perpendicular detours between existing base points. A single augmentation
// pass is the designed ceiling: the result of the one re-route is returned
// as-is, with no recursion.
type DistanceAugmenter struct {
	Engine EngineClient
	Rand   *rand.Rand
}

// AddExtraDetours inserts up to a bucket-capped number of detours at the
// midpoints of consecutive base points and re-routes once.
func (a *DistanceAugmenter) AddExtraDetours(ctx context.Context, basePoints []Models.GeoPoint, targetKm, currentKm float64, mode Models.Mode) (Models.CandidateRoute, error) {
	if len(basePoints) < 2 {
		return Models.CandidateRoute{}, Models.ErrInsufficientPoints
	}

	missing := targetKm - currentKm
	if missing <= 0 {
		return a.Engine.Route(ctx, basePoints, mode)
	}

	extras := extraDetourCount(targetKm, missing)
	if extras > len(basePoints)-1 {
		extras = len(basePoints) - 1
	}

	row := segmentRowFor(targetKm)
	offset := math.Min(missing/float64(extras)/2.0, row.DetourCapKm)

	// Spread insertions across the existing segments, midpoint by midpoint.
	step := (len(basePoints) - 1) / extras
	if step < 1 {
		step = 1
	}

	augmented := make([]Models.GeoPoint, 0, len(basePoints)+extras)
	inserted := 0
	for i := 0; i < len(basePoints)-1; i++ {
		augmented = append(augmented, basePoints[i])
		if inserted < extras && i%step == 0 {
			mid := Interpolate(basePoints[i], basePoints[i+1], 0.5)
			side := 1.0
			if a.Rand != nil && a.Rand.Float64() < 0.5 {
				side = -1.0
			}
			bearing := lineBearing(basePoints[i], basePoints[i+1])
			detour := DestinationPoint(mid, bearing+side*math.Pi/2, offset)
			augmented = append(augmented, a.Engine.SnapToRoad(ctx, detour, mode))
			inserted++
		}
	}
	augmented = append(augmented, basePoints[len(basePoints)-1])

	return a.Engine.Route(ctx, augmented, mode)
}

// extraDetourCount caps insertions tightly for short targets: at most one
// below 8 km and two below 20 km, scaling with the missing distance beyond.
func extraDetourCount(targetKm, missingKm float64) int {
	switch {
	case targetKm <= 8:
		return 1
	case targetKm < 20:
		return 2
	default:
		n := int(missingKm/5.0) + 1
		if n < 2 {
			n = 2
		}
		if n > 4 {
			n = 4
		}
		return n
	}
}
