package resources

import (
	"errors"

	"addressable-resources/core/assets"
	"addressable-resources/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for resources.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LoadRequest is the body of POST /resources/load.
type LoadRequest struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// RegisterRoutes registers the resources routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/resources")
	group.Get("/keys", h.HandleKeys)
	group.Get("/stats", h.HandleStats)
	group.Post("/load", h.HandleLoad)
	group.Delete("/leases/:lease", h.HandleRelease)
}

// HandleKeys returns the key table.
// @Summary List Resource Keys
// @Description Returns every redirected key and the address it resolves to.
// @Tags resources
// @Produce json
// @Success 200 {object} map[string]string "Key table"
// @Router /resources/keys [get]
func (h *Handler) HandleKeys(c *fiber.Ctx) error {
	return c.JSON(h.service.Keys())
}

// HandleStats returns loader statistics.
// @Summary Resource Loader Statistics
// @Tags resources
// @Produce json
// @Success 200 {object} Stats
// @Router /resources/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleLoad loads a resource and leases it to the caller.
// @Summary Load Resource
// @Description Loads a resource by path. Redirected paths are reference counted until the lease is released.
// @Tags resources
// @Accept json
// @Produce json
// @Param request body LoadRequest true "Path and kind"
// @Success 200 {object} Lease
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /resources/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Path is required"})
	}

	lease, err := h.service.Load(c.Context(), req.Path, req.Kind)
	if err != nil {
		if errors.Is(err, assets.ErrUnsupportedKind) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Warn("Resource load failed", zap.String("path", req.Path), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Resource leased",
		zap.String("path", req.Path),
		zap.String("lease", lease.ID),
		zap.Bool("tracked", lease.Tracked))
	return c.JSON(lease)
}

// HandleRelease releases a lease.
// @Summary Release Resource Lease
// @Tags resources
// @Produce json
// @Param lease path string true "Lease ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /resources/leases/{lease} [delete]
func (h *Handler) HandleRelease(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("lease")

	if err := h.service.Release(id); err != nil {
		if errors.Is(err, ErrLeaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Resource release failed", zap.String("lease", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "released", "lease": id})
}
