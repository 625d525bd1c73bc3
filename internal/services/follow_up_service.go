package services

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"consultation-history-service/internal/domain/dtos"
	"consultation-history-service/internal/domain/entities"
	"consultation-history-service/internal/domain/repositories"
)

const followUpReasonMinLen = 10

// FollowUpServiceContract manages follow-up visits hanging off a
// consultation. The versioning engine does not own these records; it only
// guarantees the consultation id stays a stable, permanent reference.
type FollowUpServiceContract interface {
	Schedule(ctx context.Context, consultationID uuid.UUID, request dtos.ScheduleFollowUpRequest) (*entities.FollowUp, error)
	ListForConsultation(ctx context.Context, consultationID uuid.UUID) ([]*entities.FollowUp, error)
	Complete(ctx context.Context, followUpID uuid.UUID) error
	Cancel(ctx context.Context, followUpID uuid.UUID) error
}

// FollowUpServiceImpl implements FollowUpServiceContract.
type FollowUpServiceImpl struct {
	followUps     repositories.FollowUpRepositoryContract
	consultations repositories.ConsultationRepositoryContract
	logger        *log.Logger
	now           func() time.Time
}

var _ FollowUpServiceContract = (*FollowUpServiceImpl)(nil)

// NewFollowUpService creates a new FollowUpServiceImpl.
func NewFollowUpService(
	followUps repositories.FollowUpRepositoryContract,
	consultations repositories.ConsultationRepositoryContract,
	logger *log.Logger,
) FollowUpServiceContract {
	return &FollowUpServiceImpl{
		followUps:     followUps,
		consultations: consultations,
		logger:        logger,
		now:           time.Now,
	}
}

// Schedule links a future visit to an existing consultation. The reason must
// be at least ten characters after trimming and the visit must lie strictly
// in the future.
func (s *FollowUpServiceImpl) Schedule(ctx context.Context, consultationID uuid.UUID, request dtos.ScheduleFollowUpRequest) (*entities.FollowUp, error) {
	if _, err := s.consultations.GetByID(ctx, consultationID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	fieldErrors := make(map[string]string)

	reason := strings.TrimSpace(request.Reason)
	if utf8.RuneCountInString(reason) < followUpReasonMinLen {
		fieldErrors["reason"] = "reason must be at least 10 characters"
	}
	if !request.ScheduledAt.After(now) {
		fieldErrors["scheduled_at"] = "scheduled time must be in the future"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	followUp := &entities.FollowUp{
		ID:             uuid.New(),
		ConsultationID: consultationID,
		ScheduledAt:    request.ScheduledAt.UTC(),
		Reason:         reason,
		Status:         entities.FollowUpScheduled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.followUps.Create(ctx, followUp); err != nil {
		return nil, err
	}
	s.logger.Printf("follow-up %s scheduled for consultation %s", followUp.ID, consultationID)
	return followUp, nil
}

func (s *FollowUpServiceImpl) ListForConsultation(ctx context.Context, consultationID uuid.UUID) ([]*entities.FollowUp, error) {
	if _, err := s.consultations.GetByID(ctx, consultationID); err != nil {
		return nil, err
	}
	return s.followUps.FindByConsultationID(ctx, consultationID)
}

func (s *FollowUpServiceImpl) Complete(ctx context.Context, followUpID uuid.UUID) error {
	return s.followUps.UpdateStatus(ctx, followUpID, entities.FollowUpCompleted)
}

func (s *FollowUpServiceImpl) Cancel(ctx context.Context, followUpID uuid.UUID) error {
	return s.followUps.UpdateStatus(ctx, followUpID, entities.FollowUpCanceled)
}
