package entitlement

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
	"github.com/lumoworks/licensing-backend/pkg/logger"
	"github.com/lumoworks/licensing-backend/pkg/metrics"
)

type eventInserter interface {
	Insert(ctx context.Context, event *models.AuditEvent) error
}

// Recorder is the fire-and-forget audit sink. Calls never block the request
// pipeline and never surface errors to the caller: a full queue drops the
// event (counted in metrics), a failed insert only logs.
type Recorder interface {
	LogValidation(userID uuid.UUID, validation LicenseValidation, path string)
	LogViolation(userID uuid.UUID, operation enums.ProjectOperation, kind enums.ViolationKind, licenseType enums.LicenseType, path string)
	Close()
}

type asyncRecorder struct {
	queue        chan models.AuditEvent
	inserter     eventInserter
	logg         *logger.Logger
	metrics      *metrics.EntitlementMetrics
	writeTimeout time.Duration

	wg        sync.WaitGroup
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewRecorder starts a single background writer draining a bounded queue
// into the audit store.
func NewRecorder(cfg config.AuditConfig, inserter eventInserter, logg *logger.Logger, m *metrics.EntitlementMetrics) (Recorder, error) {
	if inserter == nil {
		return nil, fmt.Errorf("event inserter required")
	}
	if cfg.QueueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return nil, fmt.Errorf("write timeout must be positive")
	}

	r := &asyncRecorder{
		queue:        make(chan models.AuditEvent, cfg.QueueSize),
		inserter:     inserter,
		logg:         logg,
		metrics:      m,
		writeTimeout: cfg.WriteTimeout,
	}
	r.wg.Add(1)
	go r.drain()
	return r, nil
}

func (r *asyncRecorder) LogValidation(userID uuid.UUID, validation LicenseValidation, path string) {
	r.enqueue(models.AuditEvent{
		UserID:      userID,
		Kind:        models.AuditKindValidation,
		LicenseType: validation.LicenseType,
		Valid:       validation.IsValid,
		Path:        path,
	})
}

func (r *asyncRecorder) LogViolation(userID uuid.UUID, operation enums.ProjectOperation, kind enums.ViolationKind, licenseType enums.LicenseType, path string) {
	var op *string
	if operation != "" {
		value := operation.String()
		op = &value
	}
	r.enqueue(models.AuditEvent{
		UserID:      userID,
		Kind:        models.AuditKindViolation,
		LicenseType: licenseType,
		Operation:   op,
		Violation:   &kind,
		Path:        path,
	})
}

func (r *asyncRecorder) enqueue(event models.AuditEvent) {
	if r.closed.Load() {
		r.metrics.IncAuditDropped()
		return
	}
	select {
	case r.queue <- event:
	default:
		// Queue is full. Dropping is preferable to stalling requests.
		r.metrics.IncAuditDropped()
	}
}

func (r *asyncRecorder) drain() {
	defer r.wg.Done()
	for event := range r.queue {
		r.write(event)
	}
}

func (r *asyncRecorder) write(event models.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()
	if err := r.inserter.Insert(ctx, &event); err != nil && r.logg != nil {
		r.logg.Warn(ctx, fmt.Sprintf("audit event insert failed: %v", err))
	}
}

// Close stops accepting events and waits for the queue to flush.
func (r *asyncRecorder) Close() {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		close(r.queue)
	})
	r.wg.Wait()
}
