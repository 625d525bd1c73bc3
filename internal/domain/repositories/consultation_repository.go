package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consultation-history-service/internal/domain/entities"
)

// GormConsultationRepository is the Postgres-backed implementation of
// ConsultationRepositoryContract.
type GormConsultationRepository struct {
	db *gorm.DB
}

var _ ConsultationRepositoryContract = (*GormConsultationRepository)(nil)

// NewGormConsultationRepository creates a repository bound to the given
// database handle.
func NewGormConsultationRepository(db *gorm.DB) ConsultationRepositoryContract {
	return &GormConsultationRepository{db: db}
}

func (r *GormConsultationRepository) Create(ctx context.Context, consultation *entities.Consultation) error {
	if err := r.db.WithContext(ctx).Create(consultation).Error; err != nil {
		return fmt.Errorf("creating consultation: %w", err)
	}
	return nil
}

func (r *GormConsultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Consultation, error) {
	var consultation entities.Consultation
	err := r.db.WithContext(ctx).First(&consultation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching consultation %s: %w", id, err)
	}
	return &consultation, nil
}

func (r *GormConsultationRepository) Update(ctx context.Context, consultation *entities.Consultation) error {
	if err := r.db.WithContext(ctx).Save(consultation).Error; err != nil {
		return fmt.Errorf("updating consultation %s: %w", consultation.ID, err)
	}
	return nil
}

func (r *GormConsultationRepository) FindByHistoryRecordID(ctx context.Context, historyRecordID uuid.UUID) ([]*entities.Consultation, error) {
	var consultations []*entities.Consultation
	err := r.db.WithContext(ctx).
		Where("history_record_id = ?", historyRecordID).
		Order("created_at ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, fmt.Errorf("listing consultations for history record %s: %w", historyRecordID, err)
	}
	return consultations, nil
}

func (r *GormConsultationRepository) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entities.Consultation, error) {
	var consultation entities.Consultation
	err := r.db.WithContext(ctx).First(&consultation, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching consultation for appointment %s: %w", appointmentID, err)
	}
	return &consultation, nil
}
