package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/enums"
)

// User mirrors the identity store record. The entitlement engine reads it but
// never mutates it; registration and billing own the writes.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string         `gorm:"type:text;not null;uniqueIndex"`
	FirstName     string         `gorm:"column:first_name;not null"`
	LastName      string         `gorm:"column:last_name;not null"`
	Role          enums.UserRole `gorm:"column:role;type:user_role;not null;default:'member'"`
	IsDemoUser    bool           `gorm:"column:is_demo_user;not null;default:false"`
	DemoExpiresAt *time.Time     `gorm:"column:demo_expires_at"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
