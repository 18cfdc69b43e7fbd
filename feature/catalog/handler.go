package catalog

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportRequest is the body of POST /catalog/import.
type ImportRequest struct {
	// Sets restricts the import to these set codes. Empty imports every set.
	Sets  []string `json:"sets"`
	Flush bool     `json:"flush"`
}

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/import", h.HandleImport)
	group.Get("/summary", h.HandleSummary)
	group.Get("/schema", h.HandleSchema)
}

// HandleImport runs an import and returns what it created.
// @Summary Import Catalog
// @Description Reconcile the external card catalog into the database.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body ImportRequest false "Scope and options"
// @Success 200 {object} models.ImportStats "Created rows"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Import already running"
// @Failure 422 {object} map[string]string "Unknown set codes"
// @Failure 502 {object} map[string]string "Upstream catalog error"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ImportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	stats, err := h.service.Import(c.UserContext(), reconcile.ParseScope(req.Sets), ImportOptions{Flush: req.Flush})
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Catalog import failed", zap.Error(err))
		} else {
			l.Warn("Catalog import rejected", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stats)
}

// HandleSummary returns catalog row counts.
// @Summary Catalog Summary
// @Description Row counts of the catalog tables.
// @Tags catalog
// @Produce json
// @Success 200 {object} models.Totals "Totals"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	totals, err := h.service.Summary(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Catalog summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(totals)
}

// HandleSchema reports missing catalog tables and columns.
// @Summary Catalog Schema
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Schema status"
// @Router /catalog/schema [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	missing, err := h.service.Schema(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if missing == nil {
		missing = []string{}
	}
	return c.JSON(fiber.Map{
		"ready":   len(missing) == 0,
		"missing": missing,
	})
}

func statusFor(err error) int {
	var (
		scopeErr  *reconcile.ScopeError
		fetchErr  *reconcile.FetchError
		recordErr *reconcile.RecordError
	)
	switch {
	case errors.Is(err, ErrImportInProgress):
		return fiber.StatusConflict
	case errors.As(err, &scopeErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &fetchErr), errors.As(err, &recordErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
