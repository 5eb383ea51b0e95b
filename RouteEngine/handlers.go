package RouteEngine

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"MakeMyWay/Models"
)

// Handler exposes the route generation entry point over HTTP.
type Handler struct {
	Search   *RouteSearch
	validate *validator.Validate
}

// NewHandler creates the handler around a configured search.
func NewHandler(search *RouteSearch) *Handler {
	return &Handler{
		Search:   search,
		validate: validator.New(),
	}
}

// GenerateRoute handles POST /api/route/generate.
func (h *Handler) GenerateRoute(c *fiber.Ctx) error {
	// Parse request
	var req Models.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	// Validate request
	if req.Start == (Models.GeoPoint{}) {
		return fiber.NewError(fiber.StatusBadRequest, "Start point is required")
	}
	req.Normalize()
	if !req.Mode.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown travel mode: "+string(req.Mode))
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Target distance must be positive")
	}
	if max := req.Mode.Config().MaxTargetKm; req.TargetDistanceKm > max {
		return fiber.NewError(fiber.StatusBadRequest, "Target distance exceeds the recommended maximum for this mode")
	}

	result, err := h.Search.Generate(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, Models.ErrRouteGenerationFailed) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "No route could be generated for this area",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	response := GenerateResponse{
		Points:      result.Route.Points,
		DistanceKm:  math.Round(result.Route.DistanceKm*100) / 100,
		DurationMin: math.Round(result.Route.DurationMin*100) / 100,
		Converged:   result.State == StateConverged,
		Attempts:    result.Attempts,
		Fallback:    result.Fallback,
	}

	return c.JSON(response)
}

// GetModes handles GET /api/modes with the tuning table the frontend uses
// to bound its distance slider.
func (h *Handler) GetModes(c *fiber.Ctx) error {
	return c.JSON(Models.ModeConfigs)
}
