package controllers

import (
	"net/http"

	"github.com/lumoworks/licensing-backend/api/middleware"
	"github.com/lumoworks/licensing-backend/api/responses"
	"github.com/lumoworks/licensing-backend/internal/entitlement"
	pkgerrors "github.com/lumoworks/licensing-backend/pkg/errors"
	"github.com/lumoworks/licensing-backend/pkg/logger"
)

// LicenseValidate returns the caller's bound license context so clients can
// render capability-aware UI without probing individual endpoints.
func LicenseValidate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lc, ok := middleware.LicenseFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "license context missing"))
			return
		}
		responses.WriteSuccess(w, licenseValidateResponse{
			Validation:    lc.Validation,
			ProjectAccess: lc.ProjectAccess,
			UpgradeURL:    lc.UpgradeURL,
		})
	}
}

type licenseValidateResponse struct {
	Validation    entitlement.LicenseValidation  `json:"validation"`
	ProjectAccess entitlement.ProjectAccessLevel `json:"projectAccess"`
	UpgradeURL    string                         `json:"upgradeUrl,omitempty"`
}
