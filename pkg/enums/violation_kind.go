package enums

import "fmt"

// ViolationKind classifies a denied entitlement check in the audit log.
type ViolationKind string

const (
	ViolationInvalidLicense          ViolationKind = "invalid_license"
	ViolationInsufficientPermissions ViolationKind = "insufficient_permissions"
	ViolationProjectLimitExceeded    ViolationKind = "project_limit_exceeded"
	ViolationFileSizeExceeded        ViolationKind = "file_size_exceeded"
)

var validViolationKinds = []ViolationKind{
	ViolationInvalidLicense,
	ViolationInsufficientPermissions,
	ViolationProjectLimitExceeded,
	ViolationFileSizeExceeded,
}

// String implements fmt.Stringer.
func (v ViolationKind) String() string {
	return string(v)
}

// IsValid reports whether the value matches a known violation kind.
func (v ViolationKind) IsValid() bool {
	for _, candidate := range validViolationKinds {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViolationKind converts raw input into ViolationKind.
func ParseViolationKind(value string) (ViolationKind, error) {
	for _, candidate := range validViolationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid violation kind %q", value)
}
