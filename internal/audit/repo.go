package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/internal/repo"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/pagination"
)

type listQuery struct {
	userID uuid.UUID
	kind   string
	limit  int
	cursor *pagination.Cursor
}

// Repository persists audit events. Inserts come from the async sink; reads
// serve the admin review API.
type Repository struct {
	repo.Base
}

// NewRepository constructs an audit repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Insert writes a single audit event row.
func (r *Repository) Insert(ctx context.Context, event *models.AuditEvent) error {
	return r.DB(ctx).Create(event).Error
}

// List returns audit events using cursor pagination, optionally filtered by
// user and kind.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.AuditEvent, error) {
	query := r.DB(ctx).Model(&models.AuditEvent{})

	if opts.userID != uuid.Nil {
		query = query.Where("user_id = ?", opts.userID)
	}
	if opts.kind != "" {
		query = query.Where("kind = ?", opts.kind)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.AuditEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteOlderThan removes events created before the cutoff and reports how
// many rows went away. Used by the retention job.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.DB(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.AuditEvent{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
