package vehicles

import (
	"errors"

	"fleet-tracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for vehicles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the vehicle routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/vehicles")
	group.Get("/:uuid", h.HandleGetVehicle)
}

// HandleGetVehicle returns a stored vehicle with its latest persisted log.
// @Summary Get Vehicle
// @Description Get a vehicle's static attributes, latest persisted log and log count.
// @Tags vehicles
// @Produce json
// @Param uuid path string true "Vehicle UUID"
// @Success 200 {object} VehicleDetail "Vehicle detail"
// @Failure 400 {object} map[string]string "Invalid UUID"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /vehicles/{uuid} [get]
func (h *Handler) HandleGetVehicle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("uuid"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid vehicle uuid",
		})
	}

	detail, err := h.service.GetVehicle(c.UserContext(), id.String())
	if errors.Is(err, ErrVehicleNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Vehicle lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(detail)
}
