package services

import (
	"context"

	"github.com/google/uuid"

	"consultation-history-service/internal/domain/dtos"
	"consultation-history-service/internal/domain/entities"
)

// ConsultationServiceContract defines the versioning operations on clinical
// consultations. Every successful mutation appends exactly one immutable
// snapshot and advances the live version by one; failed operations leave the
// live record untouched.
//
// Error kinds:
//   - *ValidationError: field-level rejection, caller corrects input.
//   - ErrMissingPrerequisite: appointment lacks practitioner or chart link.
//   - repositories.ErrNotFound / repositories.ErrVersionNotFound: caller
//     error, terminal.
//   - repositories.ErrVersionConflict: a concurrent writer advanced the same
//     consultation; re-read current state and retry.
type ConsultationServiceContract interface {
	Create(ctx context.Context, appointment dtos.AppointmentContext, draft dtos.ConsultationDraft) (*entities.Consultation, error)
	Update(ctx context.Context, consultationID uuid.UUID, draft dtos.ConsultationDraft) (*entities.Consultation, error)
	Restore(ctx context.Context, consultationID uuid.UUID, request dtos.RestoreConsultationRequest) (*entities.Consultation, error)
	GetByID(ctx context.Context, consultationID uuid.UUID) (*entities.Consultation, error)
}
