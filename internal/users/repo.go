package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/internal/repo"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
)

// Repository exposes read-only user lookups. Identity writes happen in the
// registration service, not here.
type Repository struct {
	repo.Base
}

// NewRepository constructs a user repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID returns the user row or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListExpiredDemoUsers returns demo users whose trial ended before the cutoff
// and that are still flagged active. Used by the expiry sweep job.
func (r *Repository) ListExpiredDemoUsers(ctx context.Context, cutoff time.Time, limit int) ([]models.User, error) {
	query := r.DB(ctx).
		Where("is_demo_user = ?", true).
		Where("is_active = ?", true).
		Where("demo_expires_at IS NOT NULL AND demo_expires_at < ?", cutoff).
		Order("demo_expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.User
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Deactivate flips is_active off for the given user.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
