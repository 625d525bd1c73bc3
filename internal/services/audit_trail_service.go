package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"consultation-history-service/internal/adapters"
)

// AuditTrailServiceContract consumes version-appended events and writes the
// audit log. It runs for the lifetime of the process.
type AuditTrailServiceContract interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// AuditTrailServiceImpl implements AuditTrailServiceContract on top of the
// queue adapter. Events are logged, never dropped silently: a payload that
// fails to decode is reported with its raw bytes.
type AuditTrailServiceImpl struct {
	queue         adapters.QueueAdapter
	logger        *log.Logger
	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

var _ AuditTrailServiceContract = (*AuditTrailServiceImpl)(nil)

// NewAuditTrailService creates a new AuditTrailServiceImpl.
func NewAuditTrailService(queue adapters.QueueAdapter, logger *log.Logger) AuditTrailServiceContract {
	ctx, cancel := context.WithCancel(context.Background())
	return &AuditTrailServiceImpl{
		queue:         queue,
		logger:        logger,
		serviceCtx:    ctx,
		serviceCancel: cancel,
	}
}

// Start begins consuming the audit events queue.
func (s *AuditTrailServiceImpl) Start(ctx context.Context) error {
	if err := s.queue.StartConsuming(s.serviceCtx, AuditEventsQueue, s.handleAuditEvent); err != nil {
		return fmt.Errorf("starting consumer for %s: %w", AuditEventsQueue, err)
	}
	s.logger.Printf("audit trail consumer started on queue '%s'", AuditEventsQueue)
	return nil
}

// Stop shuts the consumer down.
func (s *AuditTrailServiceImpl) Stop(ctx context.Context) error {
	s.serviceCancel()
	if err := s.queue.StopConsuming(ctx, AuditEventsQueue); err != nil {
		return fmt.Errorf("stopping consumer for %s: %w", AuditEventsQueue, err)
	}
	s.logger.Println("audit trail consumer stopped")
	return nil
}

func (s *AuditTrailServiceImpl) handleAuditEvent(ctx context.Context, data []byte) error {
	var event VersionAppendedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.Printf("undecodable audit event: %v, payload: %s", err, string(data))
		return fmt.Errorf("decoding audit event: %w", err)
	}
	if event.ChangeDescription == "" {
		s.logger.Printf("AUDIT consultation=%s version=%d author=%s (initial record)",
			event.ConsultationID, event.Version, event.AuthorID)
		return nil
	}
	s.logger.Printf("AUDIT consultation=%s version=%d author=%s change=%q",
		event.ConsultationID, event.Version, event.AuthorID, event.ChangeDescription)
	return nil
}
