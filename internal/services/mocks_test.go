package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"consultation-history-service/internal/adapters"
	"consultation-history-service/internal/domain/entities"
	"consultation-history-service/internal/domain/repositories"
)

// The mocks default to a working in-memory implementation so scenario tests
// can run whole create/update/restore flows; individual Func fields override
// behavior for error-path tests.

// --- MockConsultationRepository ---

var _ repositories.ConsultationRepositoryContract = (*MockConsultationRepository)(nil)

type MockConsultationRepository struct {
	CreateFunc                func(ctx context.Context, consultation *entities.Consultation) error
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*entities.Consultation, error)
	UpdateFunc                func(ctx context.Context, consultation *entities.Consultation) error
	FindByHistoryRecordIDFunc func(ctx context.Context, historyRecordID uuid.UUID) ([]*entities.Consultation, error)
	FindByAppointmentIDFunc   func(ctx context.Context, appointmentID uuid.UUID) (*entities.Consultation, error)

	CreateCallCount int32
	UpdateCallCount int32

	mu   sync.Mutex
	rows map[uuid.UUID]entities.Consultation
}

func NewMockConsultationRepository() *MockConsultationRepository {
	return &MockConsultationRepository{rows: make(map[uuid.UUID]entities.Consultation)}
}

func (m *MockConsultationRepository) Create(ctx context.Context, consultation *entities.Consultation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, consultation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[consultation.ID] = *consultation
	return nil
}

func (m *MockConsultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Consultation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	// Return a copy so service-side mutation cannot leak into the "stored"
	// row without an explicit Update.
	copied := row
	return &copied, nil
}

func (m *MockConsultationRepository) Update(ctx context.Context, consultation *entities.Consultation) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, consultation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[consultation.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.rows[consultation.ID] = *consultation
	return nil
}

func (m *MockConsultationRepository) FindByHistoryRecordID(ctx context.Context, historyRecordID uuid.UUID) ([]*entities.Consultation, error) {
	if m.FindByHistoryRecordIDFunc != nil {
		return m.FindByHistoryRecordIDFunc(ctx, historyRecordID)
	}
	return nil, errors.New("FindByHistoryRecordIDFunc not implemented in mock")
}

func (m *MockConsultationRepository) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entities.Consultation, error) {
	if m.FindByAppointmentIDFunc != nil {
		return m.FindByAppointmentIDFunc(ctx, appointmentID)
	}
	return nil, errors.New("FindByAppointmentIDFunc not implemented in mock")
}

// Stored returns the persisted copy of a consultation, bypassing overrides.
func (m *MockConsultationRepository) Stored(id uuid.UUID) (entities.Consultation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	return row, ok
}

// --- MockVersionStore ---

var _ repositories.VersionStoreContract = (*MockVersionStore)(nil)

type MockVersionStore struct {
	AppendFunc       func(ctx context.Context, version *entities.ConsultationVersion) error
	ListVersionsFunc func(ctx context.Context, consultationID uuid.UUID) ([]*entities.ConsultationVersion, error)
	GetVersionFunc   func(ctx context.Context, consultationID uuid.UUID, versionNumber int) (*entities.ConsultationVersion, error)

	AppendCallCount int32

	mu   sync.Mutex
	rows map[uuid.UUID]map[int]entities.ConsultationVersion
}

func NewMockVersionStore() *MockVersionStore {
	return &MockVersionStore{rows: make(map[uuid.UUID]map[int]entities.ConsultationVersion)}
}

func (m *MockVersionStore) Append(ctx context.Context, version *entities.ConsultationVersion) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, version)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byVersion, ok := m.rows[version.ConsultationID]
	if !ok {
		byVersion = make(map[int]entities.ConsultationVersion)
		m.rows[version.ConsultationID] = byVersion
	}
	if _, exists := byVersion[version.Version]; exists {
		return repositories.ErrVersionConflict
	}
	byVersion[version.Version] = *version
	return nil
}

func (m *MockVersionStore) ListVersions(ctx context.Context, consultationID uuid.UUID) ([]*entities.ConsultationVersion, error) {
	if m.ListVersionsFunc != nil {
		return m.ListVersionsFunc(ctx, consultationID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byVersion := m.rows[consultationID]
	versions := make([]*entities.ConsultationVersion, 0, len(byVersion))
	for _, v := range byVersion {
		copied := v
		versions = append(versions, &copied)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Version < versions[j].Version })
	return versions, nil
}

func (m *MockVersionStore) GetVersion(ctx context.Context, consultationID uuid.UUID, versionNumber int) (*entities.ConsultationVersion, error) {
	if m.GetVersionFunc != nil {
		return m.GetVersionFunc(ctx, consultationID, versionNumber)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if byVersion, ok := m.rows[consultationID]; ok {
		if v, exists := byVersion[versionNumber]; exists {
			copied := v
			return &copied, nil
		}
	}
	return nil, repositories.ErrVersionNotFound
}

// --- MockFollowUpRepository ---

var _ repositories.FollowUpRepositoryContract = (*MockFollowUpRepository)(nil)

type MockFollowUpRepository struct {
	CreateFunc               func(ctx context.Context, followUp *entities.FollowUp) error
	FindByConsultationIDFunc func(ctx context.Context, consultationID uuid.UUID) ([]*entities.FollowUp, error)
	UpdateStatusFunc         func(ctx context.Context, id uuid.UUID, status entities.FollowUpStatus) error

	CreateCallCount int32

	mu   sync.Mutex
	rows map[uuid.UUID]entities.FollowUp
}

func NewMockFollowUpRepository() *MockFollowUpRepository {
	return &MockFollowUpRepository{rows: make(map[uuid.UUID]entities.FollowUp)}
}

func (m *MockFollowUpRepository) Create(ctx context.Context, followUp *entities.FollowUp) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, followUp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[followUp.ID] = *followUp
	return nil
}

func (m *MockFollowUpRepository) FindByConsultationID(ctx context.Context, consultationID uuid.UUID) ([]*entities.FollowUp, error) {
	if m.FindByConsultationIDFunc != nil {
		return m.FindByConsultationIDFunc(ctx, consultationID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var followUps []*entities.FollowUp
	for _, f := range m.rows {
		if f.ConsultationID == consultationID {
			copied := f
			followUps = append(followUps, &copied)
		}
	}
	sort.Slice(followUps, func(i, j int) bool { return followUps[i].ScheduledAt.Before(followUps[j].ScheduledAt) })
	return followUps, nil
}

func (m *MockFollowUpRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FollowUpStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	row.Status = status
	m.rows[id] = row
	return nil
}

// Stored returns the persisted copy of a follow-up, bypassing overrides.
func (m *MockFollowUpRepository) Stored(id uuid.UUID) (entities.FollowUp, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	return row, ok
}

// --- MockQueueAdapter ---

var _ adapters.QueueAdapter = (*MockQueueAdapter)(nil)

type MockQueueAdapter struct {
	PublishFunc func(ctx context.Context, queueName string, jobData []byte) error

	mu        sync.Mutex
	Published map[string][][]byte
	Handlers  map[string]adapters.JobHandler
}

func NewMockQueueAdapter() *MockQueueAdapter {
	return &MockQueueAdapter{
		Published: make(map[string][][]byte),
		Handlers:  make(map[string]adapters.JobHandler),
	}
}

func (m *MockQueueAdapter) Publish(ctx context.Context, queueName string, jobData []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, queueName, jobData)
	}
	m.Published[queueName] = append(m.Published[queueName], jobData)
	return nil
}

func (m *MockQueueAdapter) StartConsuming(ctx context.Context, queueName string, handler adapters.JobHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Handlers[queueName] = handler
	return nil
}

func (m *MockQueueAdapter) StopConsuming(ctx context.Context, queueName string) error {
	return nil
}

// PublishedTo returns a snapshot of the messages sent to a queue.
func (m *MockQueueAdapter) PublishedTo(queueName string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.Published[queueName]))
	copy(out, m.Published[queueName])
	return out
}
