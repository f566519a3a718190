package types

import "time"

// LicenseRequiredBody is the 402 response for requests made without a usable license.
type LicenseRequiredBody struct {
	Success         bool                   `json:"success"`
	Error           string                 `json:"error"`
	LicenseRequired LicenseRequiredDetails `json:"licenseRequired"`
}

type LicenseRequiredDetails struct {
	Type         string     `json:"type"`
	Message      string     `json:"message"`
	LicenseType  string     `json:"licenseType"`
	IsExpired    bool       `json:"isExpired"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	UpgradeURL   string     `json:"upgradeUrl,omitempty"`
	Restrictions []string   `json:"restrictions"`
}

// LicenseRestrictionBody is the 403 response for a valid license lacking the operation.
type LicenseRestrictionBody struct {
	Success            bool                      `json:"success"`
	Error              string                    `json:"error"`
	LicenseRestriction LicenseRestrictionDetails `json:"licenseRestriction"`
}

type LicenseRestrictionDetails struct {
	Type              string   `json:"type"`
	Message           string   `json:"message"`
	Operation         string   `json:"operation"`
	LicenseType       string   `json:"licenseType"`
	UpgradeURL        string   `json:"upgradeUrl,omitempty"`
	AllowedOperations []string `json:"allowedOperations"`
}

// DemoLimitationBody covers quota denials (403 project limit, 413 file size).
type DemoLimitationBody struct {
	Success        bool                  `json:"success"`
	Error          string                `json:"error"`
	DemoLimitation DemoLimitationDetails `json:"demoLimitation"`
}

type DemoLimitationDetails struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	CurrentCount *int   `json:"currentCount,omitempty"`
	FileSize     *int   `json:"fileSize,omitempty"`
	MaxAllowed   int    `json:"maxAllowed"`
	UpgradeURL   string `json:"upgradeUrl,omitempty"`
}

const (
	DenialTypeLicenseRequired     = "LICENSE_REQUIRED"
	DenialTypeOperationRestricted = "OPERATION_RESTRICTED"
	DenialTypeProjectLimit        = "PROJECT_LIMIT"
	DenialTypeFileSizeLimit       = "FILE_SIZE_LIMIT"
)
