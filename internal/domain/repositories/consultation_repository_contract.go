package repositories

import (
	"context"

	"github.com/google/uuid"

	"consultation-history-service/internal/domain/entities"
)

// ConsultationRepositoryContract defines persistence for the live
// consultation row. There is deliberately no Delete: consultations are
// permanent clinical records.
type ConsultationRepositoryContract interface {
	Create(ctx context.Context, consultation *entities.Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Consultation, error)
	Update(ctx context.Context, consultation *entities.Consultation) error
	FindByHistoryRecordID(ctx context.Context, historyRecordID uuid.UUID) ([]*entities.Consultation, error)
	FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entities.Consultation, error)
}
