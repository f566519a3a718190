package entitlement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
)

type captureInserter struct {
	mu     sync.Mutex
	events []models.AuditEvent
	block  chan struct{}
}

func (c *captureInserter) Insert(ctx context.Context, event *models.AuditEvent) error {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, *event)
	return nil
}

func (c *captureInserter) snapshot() []models.AuditEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.AuditEvent, len(c.events))
	copy(out, c.events)
	return out
}

func testAuditConfig(queueSize int) config.AuditConfig {
	return config.AuditConfig{
		QueueSize:    queueSize,
		WriteTimeout: time.Second,
	}
}

func TestRecorderWritesValidationAndViolation(t *testing.T) {
	sink := &captureInserter{}
	recorder, err := NewRecorder(testAuditConfig(16), sink, nil, nil)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	userID := uuid.New()
	recorder.LogValidation(userID, LicenseValidation{
		IsValid:     true,
		LicenseType: enums.LicenseTypePro,
	}, "/api/v1/projects")
	recorder.LogViolation(userID, enums.ProjectOperationExport, enums.ViolationInsufficientPermissions, enums.LicenseTypeDemo, "/api/v1/projects/export")

	recorder.Close()

	events := sink.snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events after close, got %d", len(events))
	}

	validation := events[0]
	if validation.Kind != models.AuditKindValidation || !validation.Valid || validation.LicenseType != enums.LicenseTypePro {
		t.Fatalf("unexpected validation event %+v", validation)
	}
	if validation.Path != "/api/v1/projects" {
		t.Fatalf("unexpected path %s", validation.Path)
	}

	violation := events[1]
	if violation.Kind != models.AuditKindViolation {
		t.Fatalf("expected violation kind, got %s", violation.Kind)
	}
	if violation.Violation == nil || *violation.Violation != enums.ViolationInsufficientPermissions {
		t.Fatalf("unexpected violation %+v", violation.Violation)
	}
	if violation.Operation == nil || *violation.Operation != "export" {
		t.Fatalf("unexpected operation %+v", violation.Operation)
	}
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	sink := &captureInserter{block: make(chan struct{})}
	recorder, err := NewRecorder(testAuditConfig(1), sink, nil, nil)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	userID := uuid.New()
	// First event is picked up by the writer and blocks; the second fills
	// the queue; the rest must drop without blocking this goroutine.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			recorder.LogValidation(userID, LicenseValidation{LicenseType: enums.LicenseTypeNone}, "/x")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}

	close(sink.block)
	recorder.Close()

	if got := len(sink.snapshot()); got > 2 {
		t.Fatalf("expected at most 2 persisted events, got %d", got)
	}
}

func TestRecorderLogAfterCloseDoesNotPanic(t *testing.T) {
	sink := &captureInserter{}
	recorder, err := NewRecorder(testAuditConfig(4), sink, nil, nil)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	recorder.Close()
	recorder.LogValidation(uuid.New(), LicenseValidation{LicenseType: enums.LicenseTypeNone}, "/x")
	recorder.Close()
}
