package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consultation-history-service/internal/domain/entities"
)

// GormFollowUpRepository is the Postgres-backed implementation of
// FollowUpRepositoryContract.
type GormFollowUpRepository struct {
	db *gorm.DB
}

var _ FollowUpRepositoryContract = (*GormFollowUpRepository)(nil)

// NewGormFollowUpRepository creates a follow-up repository bound to the given
// database handle.
func NewGormFollowUpRepository(db *gorm.DB) FollowUpRepositoryContract {
	return &GormFollowUpRepository{db: db}
}

func (r *GormFollowUpRepository) Create(ctx context.Context, followUp *entities.FollowUp) error {
	if err := r.db.WithContext(ctx).Create(followUp).Error; err != nil {
		return fmt.Errorf("creating follow-up: %w", err)
	}
	return nil
}

func (r *GormFollowUpRepository) FindByConsultationID(ctx context.Context, consultationID uuid.UUID) ([]*entities.FollowUp, error) {
	var followUps []*entities.FollowUp
	err := r.db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		Order("scheduled_at ASC").
		Find(&followUps).Error
	if err != nil {
		return nil, fmt.Errorf("listing follow-ups of consultation %s: %w", consultationID, err)
	}
	return followUps, nil
}

func (r *GormFollowUpRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FollowUpStatus) error {
	result := r.db.WithContext(ctx).
		Model(&entities.FollowUp{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("updating follow-up %s status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
