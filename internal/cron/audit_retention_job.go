package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/lumoworks/licensing-backend/pkg/logger"
)

const auditRetentionDays = 90

type auditPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditRetentionJobParams configures the audit log cleanup.
type AuditRetentionJobParams struct {
	Logger        *logger.Logger
	Purger        auditPurger
	RetentionDays int
}

// NewAuditRetentionJob constructs the job that trims old audit events.
func NewAuditRetentionJob(params AuditRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Purger == nil {
		return nil, fmt.Errorf("audit purger required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = auditRetentionDays
	}
	return &auditRetentionJob{
		logg:      params.Logger,
		purger:    params.Purger,
		retention: retention,
		now:       time.Now,
	}, nil
}

type auditRetentionJob struct {
	logg      *logger.Logger
	purger    auditPurger
	retention int
	now       func() time.Time
}

func (j *auditRetentionJob) Name() string { return "audit-retention" }

func (j *auditRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("audit retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "audit retention cleanup complete")
	return nil
}
