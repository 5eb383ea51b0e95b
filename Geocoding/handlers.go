package Geocoding

import (
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the geocoding collaborator endpoints.
type Handler struct {
	Client  *NominatimClient
	Locator *IPLocator
}

// SearchPlaces handles GET /api/geocode/search?q=...&limit=...
func (h *Handler) SearchPlaces(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Query parameter q is required")
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 20 {
			limit = n
		}
	}

	places, err := h.Client.Search(c.UserContext(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Place search unavailable"})
	}
	return c.JSON(places)
}

// LocateClient handles GET /api/locate, returning a default map position
// derived from the caller's IP when a GeoIP database is configured.
func (h *Handler) LocateClient(c *fiber.Ctx) error {
	ip := net.ParseIP(c.IP())
	point, ok := h.Locator.Locate(ip)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location unavailable"})
	}
	return c.JSON(point)
}
