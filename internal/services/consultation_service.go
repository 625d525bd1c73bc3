package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"consultation-history-service/internal/adapters"
	"consultation-history-service/internal/domain/dtos"
	"consultation-history-service/internal/domain/entities"
	"consultation-history-service/internal/domain/repositories"
)

// AuditEventsQueue is the queue that receives one event per archived version.
const AuditEventsQueue = "consultation_audit_events"

// VersionAppendedEvent is published after every successful snapshot append.
type VersionAppendedEvent struct {
	ConsultationID    string    `json:"consultationId"`
	Version           int       `json:"version"`
	AuthorID          string    `json:"authorId"`
	ChangeDescription string    `json:"changeDescription,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}

// ConsultationServiceImpl implements ConsultationServiceContract.
//
// The snapshot store and the live-row repository are deliberately separate:
// the service appends the snapshot of the new state first and only then
// advances the live row (snapshot-then-advance). A crash between the two
// steps leaves the live record one version behind its history, which is
// detectable and recoverable; the reverse ordering could advance the version
// without a durable snapshot and is never allowed.
type ConsultationServiceImpl struct {
	consultations repositories.ConsultationRepositoryContract
	versions      repositories.VersionStoreContract
	queue         adapters.QueueAdapter
	logger        *log.Logger
}

var _ ConsultationServiceContract = (*ConsultationServiceImpl)(nil)

// NewConsultationService creates a new ConsultationServiceImpl. The queue may
// be nil when audit fan-out is not wired (e.g. in tests).
func NewConsultationService(
	consultations repositories.ConsultationRepositoryContract,
	versions repositories.VersionStoreContract,
	queue adapters.QueueAdapter,
	logger *log.Logger,
) ConsultationServiceContract {
	return &ConsultationServiceImpl{
		consultations: consultations,
		versions:      versions,
		queue:         queue,
		logger:        logger,
	}
}

// Create validates the draft in create mode and persists a new consultation
// at version 1 together with its initial snapshot. The snapshot carries no
// change description.
func (s *ConsultationServiceImpl) Create(ctx context.Context, appointment dtos.AppointmentContext, draft dtos.ConsultationDraft) (*entities.Consultation, error) {
	if appointment.PractitionerID == uuid.Nil || appointment.HistoryRecordID == uuid.Nil {
		return nil, ErrMissingPrerequisite
	}

	normalized, validationErr := ValidateConsultationDraft(draft, ModeCreate)
	if validationErr != nil {
		return nil, validationErr
	}

	now := time.Now().UTC()
	author := normalized.AuthorID
	if author == uuid.Nil {
		author = appointment.PractitionerID
	}

	consultation := &entities.Consultation{
		ID:              uuid.New(),
		HistoryRecordID: appointment.HistoryRecordID,
		AppointmentID:   appointment.AppointmentID,
		PractitionerID:  appointment.PractitionerID,
		Version:         1,
		ClinicalFields:  normalized.ClinicalFields(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	snapshot := &entities.ConsultationVersion{
		ID:             uuid.New(),
		ConsultationID: consultation.ID,
		Version:        1,
		ClinicalFields: consultation.ClinicalFields,
		AuthorID:       author,
		CreatedAt:      now,
	}

	// Snapshot first so the live row never exists without its history.
	if err := s.versions.Append(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("appending initial snapshot: %w", err)
	}
	if err := s.consultations.Create(ctx, consultation); err != nil {
		s.logger.Printf("consultation %s has an orphaned initial snapshot after failed create: %v", consultation.ID, err)
		return nil, err
	}

	s.publishAuditEvent(ctx, snapshot)
	s.logger.Printf("consultation %s created at version 1", consultation.ID)
	return consultation, nil
}

// Update validates the draft in amend mode (a change description is
// mandatory) and applies the new field values through the shared
// archive-and-advance primitive. No partial field updates occur.
func (s *ConsultationServiceImpl) Update(ctx context.Context, consultationID uuid.UUID, draft dtos.ConsultationDraft) (*entities.Consultation, error) {
	consultation, err := s.consultations.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	normalized, validationErr := ValidateConsultationDraft(draft, ModeAmend)
	if validationErr != nil {
		return nil, validationErr
	}

	author := normalized.AuthorID
	if author == uuid.Nil {
		author = consultation.PractitionerID
	}

	if err := s.applyNewState(ctx, consultation, normalized.ClinicalFields(), normalized.ChangeDescription, author); err != nil {
		return nil, err
	}
	return consultation, nil
}

// Restore brings the clinical fields of a historical snapshot back as the new
// current state. The version counter keeps moving forward: the restored
// content is archived under a brand-new version number, never by rewinding to
// the old one.
func (s *ConsultationServiceImpl) Restore(ctx context.Context, consultationID uuid.UUID, request dtos.RestoreConsultationRequest) (*entities.Consultation, error) {
	consultation, err := s.consultations.GetByID(ctx, consultationID)
	if err != nil {
		return nil, err
	}

	if request.TargetVersion == consultation.Version {
		return nil, &ValidationError{Fields: map[string]string{
			"target_version": "consultation is already on this version",
		}}
	}

	target, err := s.versions.GetVersion(ctx, consultationID, request.TargetVersion)
	if err != nil {
		return nil, err
	}

	changeDescription := request.ChangeDescription
	if changeDescription == "" {
		changeDescription = fmt.Sprintf("restored from version %d", target.Version)
	}
	author := request.AuthorID
	if author == uuid.Nil {
		author = consultation.PractitionerID
	}

	if err := s.applyNewState(ctx, consultation, target.ClinicalFields, changeDescription, author); err != nil {
		return nil, err
	}
	return consultation, nil
}

// GetByID returns the live consultation.
func (s *ConsultationServiceImpl) GetByID(ctx context.Context, consultationID uuid.UUID) (*entities.Consultation, error) {
	return s.consultations.GetByID(ctx, consultationID)
}

// applyNewState is the archive-and-advance primitive shared by Update and
// Restore; the two differ only in where the new field values come from.
// It appends the snapshot of the new state under version current+1, then
// advances the live row. The unique (consultation, version) index inside
// Append is the whole concurrency gate: a racing writer targeting the same
// next version fails closed with ErrVersionConflict and the live row stays
// untouched.
func (s *ConsultationServiceImpl) applyNewState(ctx context.Context, consultation *entities.Consultation, newFields entities.ClinicalFields, changeDescription string, author uuid.UUID) error {
	now := time.Now().UTC()
	nextVersion := consultation.Version + 1

	snapshot := &entities.ConsultationVersion{
		ID:                uuid.New(),
		ConsultationID:    consultation.ID,
		Version:           nextVersion,
		ClinicalFields:    newFields,
		ChangeDescription: changeDescription,
		AuthorID:          author,
		CreatedAt:         now,
	}

	if err := s.versions.Append(ctx, snapshot); err != nil {
		return err
	}

	consultation.ClinicalFields = newFields
	consultation.Version = nextVersion
	consultation.PractitionerID = author
	consultation.UpdatedAt = now

	if err := s.consultations.Update(ctx, consultation); err != nil {
		// The snapshot is durable but the live row lags one version behind.
		// Recoverable: compare live version against max archived version.
		s.logger.Printf("consultation %s live row lags behind snapshot %d: %v", consultation.ID, nextVersion, err)
		return fmt.Errorf("advancing consultation %s to version %d: %w", consultation.ID, nextVersion, err)
	}

	s.publishAuditEvent(ctx, snapshot)
	s.logger.Printf("consultation %s advanced to version %d", consultation.ID, nextVersion)
	return nil
}

// publishAuditEvent fans the archived version out to the audit queue. Audit
// delivery is best-effort and never fails the clinical operation.
func (s *ConsultationServiceImpl) publishAuditEvent(ctx context.Context, snapshot *entities.ConsultationVersion) {
	if s.queue == nil {
		return
	}
	event := VersionAppendedEvent{
		ConsultationID:    snapshot.ConsultationID.String(),
		Version:           snapshot.Version,
		AuthorID:          snapshot.AuthorID.String(),
		ChangeDescription: snapshot.ChangeDescription,
		OccurredAt:        snapshot.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Printf("marshaling audit event for consultation %s: %v", snapshot.ConsultationID, err)
		return
	}
	if err := s.queue.Publish(ctx, AuditEventsQueue, payload); err != nil {
		s.logger.Printf("publishing audit event for consultation %s version %d: %v", snapshot.ConsultationID, snapshot.Version, err)
	}
}
