package middleware

import (
	"context"

	"github.com/lumoworks/licensing-backend/internal/entitlement"
)

type contextKey string

const (
	ctxUserID  contextKey = "user_id"
	ctxRole    contextKey = "actor_role"
	ctxLicense contextKey = "license_context"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// LicenseFromContext returns the bound license context. The second return is
// false when the binder did not run for this request.
func LicenseFromContext(ctx context.Context) (entitlement.RequestLicenseContext, bool) {
	if ctx == nil {
		return entitlement.RequestLicenseContext{}, false
	}
	if v, ok := ctx.Value(ctxLicense).(entitlement.RequestLicenseContext); ok {
		return v, true
	}
	return entitlement.RequestLicenseContext{}, false
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithLicense injects the bound license context for downstream handlers.
func WithLicense(ctx context.Context, lc entitlement.RequestLicenseContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLicense, lc)
}
