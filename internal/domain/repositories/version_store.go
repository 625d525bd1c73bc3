package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"consultation-history-service/internal/domain/entities"
)

// uniqueViolation is the Postgres error code raised when an insert hits the
// (consultation_id, version) unique index.
const uniqueViolation = "23505"

// GormVersionStore is the Postgres-backed implementation of
// VersionStoreContract. Snapshot rows are insert-only; the store exposes no
// update or delete path.
type GormVersionStore struct {
	db *gorm.DB
}

var _ VersionStoreContract = (*GormVersionStore)(nil)

// NewGormVersionStore creates a version store bound to the given database
// handle.
func NewGormVersionStore(db *gorm.DB) VersionStoreContract {
	return &GormVersionStore{db: db}
}

func (s *GormVersionStore) Append(ctx context.Context, version *entities.ConsultationVersion) error {
	if err := s.db.WithContext(ctx).Create(version).Error; err != nil {
		if isDuplicateVersion(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("appending version %d of consultation %s: %w",
			version.Version, version.ConsultationID, err)
	}
	return nil
}

func (s *GormVersionStore) ListVersions(ctx context.Context, consultationID uuid.UUID) ([]*entities.ConsultationVersion, error) {
	var versions []*entities.ConsultationVersion
	err := s.db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		Order("version ASC").
		Find(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("listing versions of consultation %s: %w", consultationID, err)
	}
	return versions, nil
}

func (s *GormVersionStore) GetVersion(ctx context.Context, consultationID uuid.UUID, versionNumber int) (*entities.ConsultationVersion, error) {
	var version entities.ConsultationVersion
	err := s.db.WithContext(ctx).
		First(&version, "consultation_id = ? AND version = ?", consultationID, versionNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("fetching version %d of consultation %s: %w",
			versionNumber, consultationID, err)
	}
	return &version, nil
}

func isDuplicateVersion(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
