package repositories

import (
	"context"

	"github.com/google/uuid"

	"consultation-history-service/internal/domain/entities"
)

// VersionStoreContract is the append-only store of consultation snapshots.
//
// Implementations must guarantee:
//   - Append fails with ErrVersionConflict when the (consultation, version)
//     pair already exists; this is the optimistic-concurrency gate.
//   - ListVersions returns ascending version order from a fresh query each
//     call; no cursor state is held between calls.
//   - Archived rows are never mutated or deleted.
type VersionStoreContract interface {
	Append(ctx context.Context, version *entities.ConsultationVersion) error
	ListVersions(ctx context.Context, consultationID uuid.UUID) ([]*entities.ConsultationVersion, error)
	GetVersion(ctx context.Context, consultationID uuid.UUID, versionNumber int) (*entities.ConsultationVersion, error)
}
