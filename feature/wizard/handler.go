package wizard

import (
	"scaffold-wizard/core/logger"
	"scaffold-wizard/core/wizard"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the scaffolding wizard.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the wizard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/wizard")
	group.Post("/entities/:entityId/initialize", h.HandleInitialize)
	group.Get("/entities/:entityId/conflicts", h.HandleDetectConflicts)
	group.Post("/entities/:entityId/resolve", h.HandleResolveConflicts)
	group.Get("/entities/:entityId/history", h.HandleHistory)
	group.Post("/configs/validate", h.HandleValidate)
	group.Post("/configs", h.HandleSave)
	group.Get("/configs/:id", h.HandleLoad)
	group.Post("/generate", h.HandleGenerate)
}

// HandleInitialize starts a wizard session for an entity.
// @Summary Initialize Wizard
// @Description Fetch schema and manifest for an entity and synthesize the default configuration.
// @Tags wizard
// @Accept json
// @Produce json
// @Param entityId path string true "Entity Identifier (e.g. 'Orders')"
// @Success 200 {object} InitializeResult "Initialization Result"
// @Router /wizard/entities/{entityId}/initialize [post]
func (h *Handler) HandleInitialize(c *fiber.Ctx) error {
	entityID := c.Params("entityId")
	l := logger.WithRayID(h.service.logger, c)

	result := h.service.Initialize(c.Context(), entityID)
	if !result.Success {
		l.Warn("Wizard initialization unsuccessful", zap.String("entity_id", entityID))
	}
	return c.JSON(result)
}

// HandleDetectConflicts reports schema/manifest discrepancies for an entity.
// @Summary Detect Conflicts
// @Description Compare the entity's table structure against its manifest metadata.
// @Tags wizard
// @Accept json
// @Produce json
// @Param entityId path string true "Entity Identifier"
// @Success 200 {object} ConflictResult "Conflict Report"
// @Router /wizard/entities/{entityId}/conflicts [get]
func (h *Handler) HandleDetectConflicts(c *fiber.Ctx) error {
	return c.JSON(h.service.DetectConflicts(c.Context(), c.Params("entityId")))
}

// HandleResolveConflicts applies operator resolutions to detected conflicts.
// @Summary Resolve Conflicts
// @Description Apply a conflict-key to resolution mapping against a fresh detection run.
// @Tags wizard
// @Accept json
// @Produce json
// @Param entityId path string true "Entity Identifier"
// @Param resolutions body map[string]string true "Conflict Resolutions"
// @Success 200 {object} ResolveResult "Resolution Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Router /wizard/entities/{entityId}/resolve [post]
func (h *Handler) HandleResolveConflicts(c *fiber.Ctx) error {
	var resolutions map[string]string
	if err := c.BodyParser(&resolutions); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.ResolveConflicts(c.Context(), c.Params("entityId"), resolutions))
}

// HandleValidate checks a configuration without persisting it.
// @Summary Validate Configuration
// @Description Check a wizard configuration's structural invariants.
// @Tags wizard
// @Accept json
// @Produce json
// @Param config body wizard.Config true "Wizard Configuration"
// @Success 200 {object} ValidationResult "Validation Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Router /wizard/configs/validate [post]
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	var cfg wizard.Config
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.ValidateConfiguration(&cfg))
}

// HandleSave persists a configuration under a fresh identifier.
// @Summary Save Configuration
// @Description Validate and persist a wizard configuration. Every save creates a new record.
// @Tags wizard
// @Accept json
// @Produce json
// @Param config body wizard.Config true "Wizard Configuration"
// @Success 200 {object} SaveResult "Save Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Router /wizard/configs [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	var cfg wizard.Config
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(h.service.SaveConfiguration(c.Context(), &cfg))
}

// HandleLoad retrieves a saved configuration.
// @Summary Load Configuration
// @Description Retrieve a previously saved wizard configuration by identifier.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Configuration Identifier"
// @Success 200 {object} LoadResult "Load Result"
// @Failure 404 {object} LoadResult "Unknown Identifier"
// @Router /wizard/configs/{id} [get]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	result := h.service.LoadConfiguration(c.Context(), c.Params("id"))
	if result.NotFound {
		return c.Status(fiber.StatusNotFound).JSON(result)
	}
	return c.JSON(result)
}

// HandleHistory lists an entity's saved configurations.
// @Summary Generation History
// @Description List an entity's saved configurations, newest first.
// @Tags wizard
// @Accept json
// @Produce json
// @Param entityId path string true "Entity Identifier"
// @Success 200 {object} HistoryResult "History"
// @Router /wizard/entities/{entityId}/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	return c.JSON(h.service.History(c.Context(), c.Params("entityId")))
}

// HandleGenerate runs generation for a configuration and packages the output.
// @Summary Generate Code
// @Description Render all artifacts for a configuration and package them into a ZIP.
// @Tags wizard
// @Accept json
// @Produce json
// @Param config body wizard.Config true "Wizard Configuration"
// @Success 200 {object} GenerateResult "Generation Result"
// @Failure 400 {object} map[string]string "Malformed Body"
// @Router /wizard/generate [post]
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	var cfg wizard.Config
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l := logger.WithRayID(h.service.logger, c)

	result := h.service.Generate(c.Context(), &cfg)
	if !result.Success {
		l.Warn("Generation unsuccessful", zap.String("entity_id", cfg.EntityID))
	}
	return c.JSON(result)
}
