package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/enums"
)

// Subscription persists billing subscription state per user. Written by the
// billing webhook service; the entitlement engine only reads it.
type Subscription struct {
	ID                     uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                 uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	ProviderSubscriptionID string                   `gorm:"column:provider_subscription_id;not null;unique"`
	Tier                   enums.SubscriptionTier   `gorm:"column:tier;type:subscription_tier;not null"`
	Status                 enums.SubscriptionStatus `gorm:"column:status;type:subscription_status;not null;default:'active'"`
	CurrentPeriodStart     *time.Time               `gorm:"column:current_period_start"`
	CurrentPeriodEnd       *time.Time               `gorm:"column:current_period_end"`
	CancelAtPeriodEnd      bool                     `gorm:"column:cancel_at_period_end;not null;default:false"`
	CanceledAt             *time.Time               `gorm:"column:canceled_at"`
	CreatedAt              time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
