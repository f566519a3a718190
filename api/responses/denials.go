package responses

import (
	"fmt"
	"net/http"

	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/pkg/types"
)

// WriteLicenseRequired renders the 402 body for requests denied because the
// caller has no usable license. Distinct from WriteLicenseRestriction: that
// one is for valid licenses missing a capability.
func WriteLicenseRequired(w http.ResponseWriter, lc entitlement.RequestLicenseContext) {
	message := "A valid license is required for this operation"
	if len(lc.Validation.Restrictions) > 0 {
		message = lc.Validation.Restrictions[0]
	}

	restrictions := lc.Validation.Restrictions
	if restrictions == nil {
		restrictions = []string{}
	}

	writeJSON(w, http.StatusPaymentRequired, types.LicenseRequiredBody{
		Success: false,
		Error:   "Invalid or expired license",
		LicenseRequired: types.LicenseRequiredDetails{
			Type:         types.DenialTypeLicenseRequired,
			Message:      message,
			LicenseType:  lc.Validation.LicenseType.String(),
			IsExpired:    lc.Validation.IsExpired,
			ExpiresAt:    lc.Validation.ExpiresAt,
			UpgradeURL:   lc.UpgradeURL,
			Restrictions: restrictions,
		},
	})
}

// WriteLicenseRestriction renders the 403 body for a valid license that does
// not grant the attempted operation.
func WriteLicenseRestriction(w http.ResponseWriter, lc entitlement.RequestLicenseContext, decision entitlement.Decision) {
	writeJSON(w, http.StatusForbidden, types.LicenseRestrictionBody{
		Success: false,
		Error:   "Insufficient license permissions",
		LicenseRestriction: types.LicenseRestrictionDetails{
			Type:              types.DenialTypeOperationRestricted,
			Message:           fmt.Sprintf("Your %s license does not allow the %s operation", lc.Validation.LicenseType, decision.Operation),
			Operation:         decision.Operation.String(),
			LicenseType:       lc.Validation.LicenseType.String(),
			UpgradeURL:        lc.UpgradeURL,
			AllowedOperations: entitlement.AllowedOperations(lc.ProjectAccess),
		},
	})
}

// WriteProjectLimit renders the 403 body for a project count quota denial.
func WriteProjectLimit(w http.ResponseWriter, lc entitlement.RequestLicenseContext, decision entitlement.Decision) {
	writeJSON(w, http.StatusForbidden, types.DemoLimitationBody{
		Success: false,
		Error:   "Project limit exceeded",
		DemoLimitation: types.DemoLimitationDetails{
			Type:         types.DenialTypeProjectLimit,
			Message:      fmt.Sprintf("Your plan is limited to %d projects", decision.MaxAllowed),
			CurrentCount: decision.CurrentCount,
			MaxAllowed:   decision.MaxAllowed,
			UpgradeURL:   lc.UpgradeURL,
		},
	})
}

// WriteFileSizeLimit renders the 413 body for a file size quota denial.
func WriteFileSizeLimit(w http.ResponseWriter, lc entitlement.RequestLicenseContext, decision entitlement.Decision) {
	writeJSON(w, http.StatusRequestEntityTooLarge, types.DemoLimitationBody{
		Success: false,
		Error:   "File size limit exceeded",
		DemoLimitation: types.DemoLimitationDetails{
			Type:       types.DenialTypeFileSizeLimit,
			Message:    fmt.Sprintf("Files larger than %dMB are not allowed on the %s plan", decision.MaxAllowed, lc.Validation.LicenseType),
			FileSize:   decision.FileSizeMB,
			MaxAllowed: decision.MaxAllowed,
			UpgradeURL: lc.UpgradeURL,
		},
	})
}
