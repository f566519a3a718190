package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lumoworks/licensing-backend/api/responses"
	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/pkg/enums"
	"github.com/lumoworks/licensing-backend/pkg/logger"
	"github.com/lumoworks/licensing-backend/pkg/metrics"
)

// violationWindow bounds the per-user violation counters kept in Redis.
const violationWindow = 24 * time.Hour

type violationCounter interface {
	RecordViolation(ctx context.Context, userID, kind string, window time.Duration) (int64, error)
}

// Guard carries the collaborators shared by every denial path: the audit
// recorder, the denial metrics and the Redis violation counters. All of them
// are best-effort; a failure in any never blocks or alters the response.
type Guard struct {
	Recorder   entitlement.Recorder
	Metrics    *metrics.EntitlementMetrics
	Violations violationCounter
	Logger     *logger.Logger
}

// Deny records the denial and writes the response body matching its
// violation kind. Callers must not write to w afterwards.
func (g Guard) Deny(w http.ResponseWriter, r *http.Request, lc entitlement.RequestLicenseContext, decision entitlement.Decision) {
	g.record(r, lc, decision)

	switch decision.Violation {
	case enums.ViolationInvalidLicense:
		responses.WriteLicenseRequired(w, lc)
	case enums.ViolationProjectLimitExceeded:
		responses.WriteProjectLimit(w, lc, decision)
	case enums.ViolationFileSizeExceeded:
		responses.WriteFileSizeLimit(w, lc, decision)
	default:
		responses.WriteLicenseRestriction(w, lc, decision)
	}
}

func (g Guard) record(r *http.Request, lc entitlement.RequestLicenseContext, decision entitlement.Decision) {
	g.Metrics.IncDenial(decision.Violation.String())

	if g.Recorder != nil {
		g.Recorder.LogViolation(lc.UserID, decision.Operation, decision.Violation, lc.Validation.LicenseType, r.URL.Path)
	}

	if g.Violations != nil {
		if _, err := g.Violations.RecordViolation(r.Context(), lc.UserID.String(), decision.Violation.String(), violationWindow); err != nil && g.Logger != nil {
			g.Logger.Warn(r.Context(), fmt.Sprintf("violation counter update failed: %v", err))
		}
	}
}

// RequireOperation gates a route on the bound license context. An invalid
// license denies with 402, a valid license missing the capability with 403.
func RequireOperation(operation enums.ProjectOperation, guard Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lc, ok := LicenseFromContext(r.Context())
			if !ok {
				lc = entitlement.RestrictedContext(lc.UserID)
			}

			if decision := entitlement.DecideOperation(lc, operation); !decision.Allowed {
				guard.Deny(w, r, lc, decision)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnforceProjectQuota checks the project count ceiling before a create
// request reaches its handler.
func EnforceProjectQuota(quotas *entitlement.QuotaEnforcer, guard Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lc, ok := LicenseFromContext(r.Context())
			if !ok {
				lc = entitlement.RestrictedContext(lc.UserID)
			}

			if quotas != nil {
				if decision := quotas.CheckProjectCount(r.Context(), lc); !decision.Allowed {
					guard.Deny(w, r, lc, decision)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
