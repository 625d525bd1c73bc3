package repositories

import (
	"context"

	"github.com/google/uuid"

	"consultation-history-service/internal/domain/entities"
)

// FollowUpRepositoryContract persists follow-up visits linked to a
// consultation.
type FollowUpRepositoryContract interface {
	Create(ctx context.Context, followUp *entities.FollowUp) error
	FindByConsultationID(ctx context.Context, consultationID uuid.UUID) ([]*entities.FollowUp, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FollowUpStatus) error
}
