package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/logger"
)

// LicenseContext resolves the caller's license and binds the result to the
// request. It never rejects: a missing or unparseable identity binds the most
// restrictive context and lets the gates downstream produce the denial. Every
// resolution is recorded to the audit trail, fire-and-forget.
func LicenseContext(resolver entitlement.Resolver, cfg config.EntitlementConfig, recorder entitlement.Recorder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			lc := entitlement.RestrictedContext(uuid.Nil)
			if userID, err := uuid.Parse(UserIDFromContext(ctx)); err == nil && resolver != nil {
				validation := resolver.Resolve(ctx, userID)
				lc = entitlement.RequestLicenseContext{
					UserID:        userID,
					Validation:    validation,
					ProjectAccess: entitlement.AccessLevelFor(validation.LicenseType, validation.IsExpired),
					UpgradeURL:    cfg.UpgradeURLFor(userID.String()),
				}
			}

			if recorder != nil {
				recorder.LogValidation(lc.UserID, lc.Validation, r.URL.Path)
			}

			if logg != nil {
				ctx = logg.WithLicenseType(ctx, lc.Validation.LicenseType.String())
			}
			ctx = WithLicense(ctx, lc)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
