package services

import (
	"context"
	"log"
	"sort"

	"github.com/google/uuid"

	"consultation-history-service/internal/domain/dtos"
	"consultation-history-service/internal/domain/repositories"
)

// AuthorLabeler resolves an author id to a display label. The staff directory
// lives outside this service, so the resolver is injected; the default falls
// back to the raw id.
type AuthorLabeler func(authorID uuid.UUID) string

// HistoryPresenterContract is the read-only projection of a consultation's
// version history for display and restore selection.
type HistoryPresenterContract interface {
	Present(ctx context.Context, consultationID uuid.UUID) ([]dtos.HistoryEntry, error)
}

// HistoryPresenterImpl implements HistoryPresenterContract. It never mutates
// the version store.
type HistoryPresenterImpl struct {
	consultations repositories.ConsultationRepositoryContract
	versions      repositories.VersionStoreContract
	labelFor      AuthorLabeler
	logger        *log.Logger
}

var _ HistoryPresenterContract = (*HistoryPresenterImpl)(nil)

// NewHistoryPresenter creates a presenter. labelFor may be nil, in which case
// author ids are rendered verbatim.
func NewHistoryPresenter(
	consultations repositories.ConsultationRepositoryContract,
	versions repositories.VersionStoreContract,
	labelFor AuthorLabeler,
	logger *log.Logger,
) HistoryPresenterContract {
	if labelFor == nil {
		labelFor = func(authorID uuid.UUID) string { return authorID.String() }
	}
	return &HistoryPresenterImpl{
		consultations: consultations,
		versions:      versions,
		labelFor:      labelFor,
		logger:        logger,
	}
}

// Present returns the version list most recent first. The entry matching the
// live version is flagged current and excluded from restore eligibility: you
// cannot restore the version you are already on.
func (p *HistoryPresenterImpl) Present(ctx context.Context, consultationID uuid.UUID) ([]dtos.HistoryEntry, error) {
	consultation, err := p.consultations.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	versions, err := p.versions.ListVersions(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	entries := make([]dtos.HistoryEntry, 0, len(versions))
	for _, v := range versions {
		isCurrent := v.Version == consultation.Version
		entries = append(entries, dtos.HistoryEntry{
			Version:           v.Version,
			ChangeDescription: v.ChangeDescription,
			AuthoredAt:        v.CreatedAt,
			AuthorLabel:       p.labelFor(v.AuthorID),
			IsCurrent:         isCurrent,
			CanRestore:        !isCurrent,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Version > entries[j].Version
	})
	return entries, nil
}
