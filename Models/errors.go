package Models

import "errors"

var (
	// ErrInsufficientPoints means fewer than two points were handed to the
	// routing engine. This is a programming error and is never retried.
	ErrInsufficientPoints = errors.New("routing requires at least two points")

	// ErrNoRouteFound means the routing engine reported no path between the
	// requested waypoints. Retried across search attempts.
	ErrNoRouteFound = errors.New("no route found")

	// ErrRouteGenerationFailed means no attempt in a whole search produced
	// any candidate route.
	ErrRouteGenerationFailed = errors.New("route generation failed")
)
