package entitlement

import "github.com/lumoworks/licensing-backend/pkg/enums"

// Restriction messages surfaced in LicenseValidation.Restrictions.
const (
	RestrictionUserNotFound         = "User not found"
	RestrictionDemoExpired          = "Demo trial expired"
	RestrictionDemoLimitations      = "Demo limitations apply"
	RestrictionNoActiveSubscription = "No active subscription"
	RestrictionSubscriptionExpired  = "Subscription expired"
	RestrictionValidationFailed     = "License validation failed"
)

var demoFeatures = []string{
	"project_create",
	"project_edit",
	"project_delete",
}

var basicFeatures = []string{
	"project_create",
	"project_edit",
	"project_delete",
	"project_export",
	"project_share",
}

var proFeatures = append(append([]string{}, basicFeatures...),
	"advanced_workflows",
	"analytics_dashboard",
)

var enterpriseFeatures = append(append([]string{}, proFeatures...),
	"compliance_reports",
	"priority_support",
)

// FeaturesFor returns the feature list granted by a license type. Tiers are
// strictly monotone: basic ⊆ pro ⊆ enterprise.
func FeaturesFor(licenseType enums.LicenseType) []string {
	switch licenseType {
	case enums.LicenseTypeDemo:
		return copyFeatures(demoFeatures)
	case enums.LicenseTypeBasic:
		return copyFeatures(basicFeatures)
	case enums.LicenseTypePro:
		return copyFeatures(proFeatures)
	case enums.LicenseTypeEnterprise:
		return copyFeatures(enterpriseFeatures)
	default:
		return []string{}
	}
}

func copyFeatures(features []string) []string {
	out := make([]string, len(features))
	copy(out, features)
	return out
}
