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

// ConsultationHandler exposes the versioning engine over HTTP.
type ConsultationHandler struct {
	consultationService services.ConsultationServiceContract
	historyPresenter    services.HistoryPresenterContract
	logger              *log.Logger
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(
	cs services.ConsultationServiceContract,
	hp services.HistoryPresenterContract,
	logger *log.Logger,
) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: cs,
		historyPresenter:    hp,
		logger:              logger,
	}
}

// createConsultationRequest is the wire shape of a create call: the
// appointment context alongside the draft fields.
type createConsultationRequest struct {
	Appointment dtos.AppointmentContext `json:"appointment"`
	Draft       dtos.ConsultationDraft  `json:"draft"`
}

func (h *ConsultationHandler) CreateConsultation(c *fiber.Ctx) error {
	var req createConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Printf("failed to parse create consultation request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not parse request body: " + err.Error(),
		})
	}

	consultation, err := h.consultationService.Create(c.Context(), req.Appointment, req.Draft)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(consultation)
}

func (h *ConsultationHandler) UpdateConsultation(c *fiber.Ctx) error {
	consultationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consultation id"})
	}

	var draft dtos.ConsultationDraft
	if err := c.BodyParser(&draft); err != nil {
		h.logger.Printf("failed to parse update consultation request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not parse request body: " + err.Error(),
		})
	}

	consultation, err := h.consultationService.Update(c.Context(), consultationID, draft)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(consultation)
}

func (h *ConsultationHandler) RestoreConsultation(c *fiber.Ctx) error {
	consultationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consultation id"})
	}

	var req dtos.RestoreConsultationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Printf("failed to parse restore consultation request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not parse request body: " + err.Error(),
		})
	}
	if req.TargetVersion < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "target_version must be a positive integer"})
	}

	consultation, err := h.consultationService.Restore(c.Context(), consultationID, req)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(consultation)
}

func (h *ConsultationHandler) GetConsultation(c *fiber.Ctx) error {
	consultationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consultation id"})
	}

	consultation, err := h.consultationService.GetByID(c.Context(), consultationID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(consultation)
}

func (h *ConsultationHandler) GetConsultationHistory(c *fiber.Ctx) error {
	consultationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid consultation id"})
	}

	entries, err := h.historyPresenter.Present(c.Context(), consultationID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"history": entries})
}

// respondServiceError maps the service error taxonomy to HTTP statuses.
// Validation field messages are surfaced verbatim; everything else gets a
// generic message suitable for retry-or-contact-support handling.
func (h *ConsultationHandler) respondServiceError(c *fiber.Ctx, err error) error {
	if ve, ok := services.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	}
	switch {
	case errors.Is(err, services.ErrMissingPrerequisite):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, repositories.ErrVersionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repositories.ErrVersionConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "a concurrent change advanced this consultation, re-read and retry",
		})
	default:
		h.logger.Printf("unhandled service error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// RegisterConsultationRoutes mounts the consultation endpoints.
func RegisterConsultationRoutes(app *fiber.App, h *ConsultationHandler) {
	group := app.Group("/consultations")
	group.Post("/", h.CreateConsultation)
	group.Get("/:id", h.GetConsultation)
	group.Put("/:id", h.UpdateConsultation)
	group.Post("/:id/restore", h.RestoreConsultation)
	group.Get("/:id/history", h.GetConsultationHistory)
}
