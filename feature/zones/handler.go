package zones

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for zones.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the zone routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/zones")
	group.Get("/", h.HandleListZones)
	group.Get("/:zone", h.HandleGetZone)
}

// HandleListZones lists the zones held in the cache.
// @Summary List Zones
// @Description List every reconciled zone with its number of cached vehicles.
// @Tags zones
// @Produce json
// @Success 200 {array} ZoneSummary "Zones"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /zones [get]
func (h *Handler) HandleListZones(c *fiber.Ctx) error {
	return c.JSON(h.service.ListZones())
}

// HandleGetZone returns the cached snapshot of one zone.
// @Summary Get Zone
// @Description Get the last known log of every vehicle of a zone.
// @Tags zones
// @Produce json
// @Param zone path string true "Zone id (e.g. 'BERLIN')"
// @Success 200 {object} ZoneDetail "Zone snapshot"
// @Failure 404 {object} map[string]string "Zone not reconciled yet"
// @Router /zones/{zone} [get]
func (h *Handler) HandleGetZone(c *fiber.Ctx) error {
	detail, err := h.service.GetZone(c.Params("zone"))
	if errors.Is(err, ErrZoneNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(detail)
}
