package enums

import "fmt"

// LicenseType identifies the entitlement level a user resolves to.
type LicenseType string

const (
	LicenseTypeDemo       LicenseType = "demo"
	LicenseTypeBasic      LicenseType = "basic"
	LicenseTypePro        LicenseType = "pro"
	LicenseTypeEnterprise LicenseType = "enterprise"
	LicenseTypeNone       LicenseType = "none"
)

var validLicenseTypes = []LicenseType{
	LicenseTypeDemo,
	LicenseTypeBasic,
	LicenseTypePro,
	LicenseTypeEnterprise,
	LicenseTypeNone,
}

// String implements fmt.Stringer.
func (l LicenseType) String() string {
	return string(l)
}

// IsValid reports whether the value matches a known license type.
func (l LicenseType) IsValid() bool {
	for _, candidate := range validLicenseTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// IsPaid reports whether the license type corresponds to a billed subscription tier.
func (l LicenseType) IsPaid() bool {
	return l == LicenseTypeBasic || l == LicenseTypePro || l == LicenseTypeEnterprise
}

// ParseLicenseType converts raw input into LicenseType.
func ParseLicenseType(value string) (LicenseType, error) {
	for _, candidate := range validLicenseTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid license type %q", value)
}
