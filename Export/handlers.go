package Export

import (
	"github.com/gofiber/fiber/v2"

	"MakeMyWay/Models"
)

// GPXRequest is the structure of the export request
type GPXRequest struct {
	Name  string                `json:"name,omitempty"`
	Route Models.CandidateRoute `json:"route"`
}

// DownloadGPX handles POST /api/route/gpx, returning the posted route as a
// downloadable GPX file.
func DownloadGPX(c *fiber.Ctx) error {
	var req GPXRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if len(req.Route.Points) < 2 {
		return fiber.NewError(fiber.StatusBadRequest, "Route must contain at least two points")
	}

	data, err := ToGPX(req.Route, req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/gpx+xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="route.gpx"`)
	return c.Send(data)
}
