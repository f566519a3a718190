package entitlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/enums"
)

// LicenseValidation is the normalized result of resolving a user's license.
// Derived per request, never persisted.
//
// Invariants: IsValid == !IsExpired whenever LicenseType is not "none";
// LicenseType "none" always means IsValid == false.
type LicenseValidation struct {
	IsValid         bool              `json:"isValid"`
	IsDemoUser      bool              `json:"isDemoUser"`
	IsExpired       bool              `json:"isExpired"`
	LicenseType     enums.LicenseType `json:"licenseType"`
	ExpiresAt       *time.Time        `json:"expiresAt,omitempty"`
	Restrictions    []string          `json:"restrictions"`
	AllowedFeatures []string          `json:"allowedFeatures"`
}

// ProjectAccessLevel is the capability/quota table entry derived from a
// validation. Quotas use -1 for unlimited and 0 for none.
type ProjectAccessLevel struct {
	CanCreate     bool `json:"canCreate"`
	CanEdit       bool `json:"canEdit"`
	CanDelete     bool `json:"canDelete"`
	CanExport     bool `json:"canExport"`
	CanShare      bool `json:"canShare"`
	MaxProjects   int  `json:"maxProjects"`
	MaxFileSizeMB int  `json:"maxFileSizeMB"`
	MaxStorageMB  int  `json:"maxStorageMB"`
}

// RequestLicenseContext bundles everything downstream handlers need. Built
// once per request by the binder middleware, discarded with the request.
type RequestLicenseContext struct {
	UserID        uuid.UUID          `json:"userId"`
	Validation    LicenseValidation  `json:"validation"`
	ProjectAccess ProjectAccessLevel `json:"projectAccess"`
	UpgradeURL    string             `json:"upgradeUrl,omitempty"`
}

// RestrictedContext builds the most restrictive request context. Used when a
// request carries no resolvable identity; every capability check against it
// denies.
func RestrictedContext(userID uuid.UUID) RequestLicenseContext {
	validation := failClosedValidation()
	return RequestLicenseContext{
		UserID:        userID,
		Validation:    validation,
		ProjectAccess: AccessLevelFor(validation.LicenseType, validation.IsExpired),
	}
}

// Decision is the outcome of a gate or quota check. Policy only; the HTTP
// translation lives in the response layer.
type Decision struct {
	Allowed      bool
	Violation    enums.ViolationKind
	Operation    enums.ProjectOperation
	CurrentCount *int
	FileSizeMB   *int
	MaxAllowed   int
}

// Allow is the affirmative decision.
func Allow() Decision {
	return Decision{Allowed: true}
}
