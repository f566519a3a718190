package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/enums"
)

// AuditEvent records a license validation or a denied entitlement check.
// Write-only from the engine's perspective; reviewed via the admin API.
type AuditEvent struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Kind        string               `gorm:"column:kind;not null"`
	LicenseType enums.LicenseType    `gorm:"column:license_type;type:text;not null"`
	Valid       bool                 `gorm:"column:valid;not null"`
	Operation   *string              `gorm:"column:operation"`
	Violation   *enums.ViolationKind `gorm:"column:violation;type:text"`
	Path        string               `gorm:"column:path;not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime;index"`
}

// Audit event kinds.
const (
	AuditKindValidation = "validation"
	AuditKindViolation  = "violation"
)
