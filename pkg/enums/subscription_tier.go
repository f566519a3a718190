package enums

import "fmt"

// SubscriptionTier maps to the subscription_tier enum in Postgres.
type SubscriptionTier string

const (
	SubscriptionTierBasic      SubscriptionTier = "basic"
	SubscriptionTierPro        SubscriptionTier = "pro"
	SubscriptionTierEnterprise SubscriptionTier = "enterprise"
)

var validSubscriptionTiers = []SubscriptionTier{
	SubscriptionTierBasic,
	SubscriptionTierPro,
	SubscriptionTierEnterprise,
}

// String implements fmt.Stringer.
func (s SubscriptionTier) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical subscription_tier enum.
func (s SubscriptionTier) IsValid() bool {
	for _, candidate := range validSubscriptionTiers {
		if candidate == s {
			return true
		}
	}
	return false
}

// LicenseType converts the billing tier into its entitlement license type.
// Unknown tiers map to LicenseTypeNone so callers stay fail-closed.
func (s SubscriptionTier) LicenseType() LicenseType {
	switch s {
	case SubscriptionTierBasic:
		return LicenseTypeBasic
	case SubscriptionTierPro:
		return LicenseTypePro
	case SubscriptionTierEnterprise:
		return LicenseTypeEnterprise
	default:
		return LicenseTypeNone
	}
}

// ParseSubscriptionTier converts raw input into SubscriptionTier.
func ParseSubscriptionTier(value string) (SubscriptionTier, error) {
	for _, candidate := range validSubscriptionTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription tier %q", value)
}
