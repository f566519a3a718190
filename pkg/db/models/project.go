package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the resource the entitlement gates guard.
type Project struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID  `gorm:"column:owner_id;type:uuid;not null;index"`
	Name        string     `gorm:"type:text;not null"`
	Description *string    `gorm:"type:text"`
	SizeBytes   int64      `gorm:"column:size_bytes;not null;default:0"`
	SharedAt    *time.Time `gorm:"column:shared_at"`
	ExportedAt  *time.Time `gorm:"column:exported_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
