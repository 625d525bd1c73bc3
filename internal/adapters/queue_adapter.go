package adapters

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// JobHandler processes one message taken from a queue.
type JobHandler func(ctx context.Context, data []byte) error

// QueueAdapter is the interface to a message queue. The service layer uses it
// to fan out audit events without coupling to a concrete broker.
type QueueAdapter interface {
	// Publish sends a message to the named queue.
	Publish(ctx context.Context, queueName string, jobData []byte) error
	// StartConsuming registers a handler for the named queue and begins
	// delivering messages to it in the background.
	StartConsuming(ctx context.Context, queueName string, handler JobHandler) error
	// StopConsuming stops delivery for the named queue.
	StopConsuming(ctx context.Context, queueName string) error
}

// publishTimeout bounds how long Publish blocks on a full queue.
const publishTimeout = 2 * time.Second

// InMemoryQueueAdapter implements QueueAdapter over buffered channels. It is
// the default wiring for single-process deployments and tests; a broker-backed
// implementation can replace it behind the same interface.
type InMemoryQueueAdapter struct {
	queues     map[string]chan []byte
	stop       map[string]chan struct{}
	mu         sync.RWMutex
	logger     *log.Logger
	wg         sync.WaitGroup
	rootCtx    context.Context
	cancelRoot context.CancelFunc
}

// NewInMemoryQueueAdapter creates an in-memory queue adapter.
func NewInMemoryQueueAdapter(logger *log.Logger) QueueAdapter {
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	return &InMemoryQueueAdapter{
		queues:     make(map[string]chan []byte),
		stop:       make(map[string]chan struct{}),
		logger:     logger,
		rootCtx:    rootCtx,
		cancelRoot: cancelRoot,
	}
}

func (q *InMemoryQueueAdapter) getOrCreateQueue(queueName string) chan []byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.queues[queueName]; !ok {
		q.queues[queueName] = make(chan []byte, 100)
		q.stop[queueName] = make(chan struct{})
		q.logger.Printf("in-memory queue '%s' created", queueName)
	}
	return q.queues[queueName]
}

func (q *InMemoryQueueAdapter) Publish(ctx context.Context, queueName string, jobData []byte) error {
	queue := q.getOrCreateQueue(queueName)
	select {
	case queue <- jobData:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		q.logger.Printf("timeout publishing to queue '%s', queue likely full", queueName)
		return errors.New("timeout publishing to queue: " + queueName)
	}
}

func (q *InMemoryQueueAdapter) StartConsuming(ctx context.Context, queueName string, handler JobHandler) error {
	queue := q.getOrCreateQueue(queueName)
	q.mu.RLock()
	stop := q.stop[queueName]
	q.mu.RUnlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.logger.Printf("consumer started for queue '%s'", queueName)
		for {
			select {
			case data, ok := <-queue:
				if !ok {
					q.logger.Printf("queue '%s' closed, consumer exiting", queueName)
					return
				}
				if err := handler(q.rootCtx, data); err != nil {
					q.logger.Printf("error handling message from queue '%s': %v", queueName, err)
				}
			case <-stop:
				q.logger.Printf("stop signal received, consumer for queue '%s' exiting", queueName)
				return
			case <-q.rootCtx.Done():
				q.logger.Printf("adapter shutting down, consumer for queue '%s' exiting", queueName)
				return
			}
		}
	}()
	return nil
}

func (q *InMemoryQueueAdapter) StopConsuming(ctx context.Context, queueName string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if stop, ok := q.stop[queueName]; ok {
		close(stop)
		delete(q.stop, queueName)
	}
	return nil
}

// Shutdown cancels every consumer and waits for them to exit.
func (q *InMemoryQueueAdapter) Shutdown() {
	q.cancelRoot()
	q.wg.Wait()
}
