package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/internal/repo"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
)

// Repository exposes read-only subscription lookups for entitlement checks.
// Subscription writes arrive via billing webhooks outside this service.
type Repository struct {
	repo.Base
}

// NewRepository constructs a subscription repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindFirstEntitling returns the first subscription for the user whose status
// counts toward entitlement (active or trialing), oldest first so the match is
// deterministic. Returns gorm.ErrRecordNotFound when none qualifies. Multiple
// qualifying rows are never merged; first match wins.
func (r *Repository) FindFirstEntitling(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", []enums.SubscriptionStatus{
			enums.SubscriptionStatusActive,
			enums.SubscriptionStatusTrialing,
		}).
		Order("created_at ASC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
