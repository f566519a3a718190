package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/logger"
)

const demoExpiryBatchSize = 500

type demoUserRepository interface {
	ListExpiredDemoUsers(ctx context.Context, cutoff time.Time, limit int) ([]models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// DemoExpiryJobParams configures the demo trial sweep.
type DemoExpiryJobParams struct {
	Logger    *logger.Logger
	UserRepo  demoUserRepository
	BatchSize int
}

// NewDemoExpiryJob constructs the job that deactivates demo accounts whose
// trial window has lapsed. The per-request resolver already denies expired
// demo users; this sweep keeps the identity store tidy so reporting and
// ops queries do not have to re-derive expiry.
func NewDemoExpiryJob(params DemoExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = demoExpiryBatchSize
	}
	return &demoExpiryJob{
		logg:      params.Logger,
		userRepo:  params.UserRepo,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

type demoExpiryJob struct {
	logg      *logger.Logger
	userRepo  demoUserRepository
	batchSize int
	now       func() time.Time
}

func (j *demoExpiryJob) Name() string { return "demo-expiry" }

func (j *demoExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC()
	expired, err := j.userRepo.ListExpiredDemoUsers(ctx, cutoff, j.batchSize)
	if err != nil {
		return fmt.Errorf("list expired demo users: %w", err)
	}

	var errs []error
	deactivated := 0
	for _, user := range expired {
		if err := j.userRepo.Deactivate(ctx, user.ID); err != nil {
			errs = append(errs, fmt.Errorf("deactivate user %s: %w", user.ID, err))
			continue
		}
		deactivated++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":      cutoff,
		"expired":     len(expired),
		"deactivated": deactivated,
	})
	j.logg.Info(logCtx, "demo expiry sweep complete")
	return multierr.Combine(errs...)
}
