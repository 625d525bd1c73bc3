package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"consultation-history-service/internal/domain/dtos"
	"consultation-history-service/internal/domain/repositories"
	"consultation-history-service/internal/services"
)

// FollowUpHandler exposes follow-up scheduling for a consultation.
type FollowUpHandler struct {
	followUpService services.FollowUpServiceContract
	logger          *log.Logger
}

// NewFollowUpHandler creates a new FollowUpHandler.
func NewFollowUpHandler(fs services.FollowUpServiceContract, logger *log.Logger) *FollowUpHandler {
	return &FollowUpHandler{followUpService: fs, logger: logger}
}

func (h *FollowUpHandler) ScheduleFollowUp(c *fiber.Ctx) error {
	consultationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consultation id"})
	}

	var req dtos.ScheduleFollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Printf("failed to parse follow-up request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not parse request body: " + err.Error(),
		})
	}

	followUp, err := h.followUpService.Schedule(c.Context(), consultationID, req)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(followUp)
}

func (h *FollowUpHandler) ListFollowUps(c *fiber.Ctx) error {
	consultationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consultation id"})
	}

	followUps, err := h.followUpService.ListForConsultation(c.Context(), consultationID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"follow_ups": followUps})
}

func (h *FollowUpHandler) respondServiceError(c *fiber.Ctx, err error) error {
	if ve, ok := services.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	h.logger.Printf("unhandled follow-up service error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

// RegisterFollowUpRoutes mounts the follow-up endpoints under consultations.
func RegisterFollowUpRoutes(app *fiber.App, h *FollowUpHandler) {
	group := app.Group("/consultations/:id/follow-ups")
	group.Post("/", h.ScheduleFollowUp)
	group.Get("/", h.ListFollowUps)
}
