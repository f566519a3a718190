package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
	"github.com/lumoworks/licensing-backend/pkg/logger"
	"github.com/lumoworks/licensing-backend/pkg/metrics"
)

type userReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type subscriptionReader interface {
	FindFirstEntitling(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
}

// Resolver turns a user id into a LicenseValidation. It never returns an
// error: any lookup failure degrades to the most restrictive validation so
// the request pipeline always has a usable, fail-closed result.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) LicenseValidation
}

type resolver struct {
	users         userReader
	subscriptions subscriptionReader
	lookupTimeout time.Duration
	logg          *logger.Logger
	metrics       *metrics.EntitlementMetrics
	now           func() time.Time
}

// NewResolver builds a license resolver over the external user/subscription
// stores. Both reads share a single bounded timeout; hitting it degrades to
// fail-closed rather than hanging the request.
func NewResolver(users userReader, subscriptions subscriptionReader, cfg config.EntitlementConfig, logg *logger.Logger, m *metrics.EntitlementMetrics) (Resolver, error) {
	if users == nil {
		return nil, fmt.Errorf("user reader required")
	}
	if subscriptions == nil {
		return nil, fmt.Errorf("subscription reader required")
	}
	if cfg.LookupTimeout <= 0 {
		return nil, fmt.Errorf("lookup timeout must be positive")
	}
	return &resolver{
		users:         users,
		subscriptions: subscriptions,
		lookupTimeout: cfg.LookupTimeout,
		logg:          logg,
		metrics:       m,
		now:           time.Now,
	}, nil
}

func (r *resolver) Resolve(ctx context.Context, userID uuid.UUID) LicenseValidation {
	started := r.now()
	lookupCtx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	validation, outcome := r.resolve(lookupCtx, userID)

	r.metrics.ObserveResolveDuration(outcome, r.now().Sub(started))
	r.metrics.ObserveValidation(validation.LicenseType.String(), validation.IsValid)
	return validation
}

func (r *resolver) resolve(ctx context.Context, userID uuid.UUID) (LicenseValidation, string) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userNotFoundValidation(), "user_not_found"
		}
		r.warnLookupFailure(ctx, userID, "user lookup failed", err)
		return failClosedValidation(), "error"
	}

	if user.IsDemoUser {
		return r.resolveDemo(user), "ok"
	}

	sub, err := r.subscriptions.FindFirstEntitling(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noSubscriptionValidation(), "ok"
		}
		r.warnLookupFailure(ctx, userID, "subscription lookup failed", err)
		return failClosedValidation(), "error"
	}

	return r.resolveSubscription(ctx, sub), "ok"
}

func (r *resolver) resolveDemo(user *models.User) LicenseValidation {
	// A demo user without an expiry timestamp counts as already expired.
	isExpired := true
	if user.DemoExpiresAt != nil {
		isExpired = r.now().After(*user.DemoExpiresAt)
	}

	validation := LicenseValidation{
		IsValid:         !isExpired,
		IsDemoUser:      true,
		IsExpired:       isExpired,
		LicenseType:     enums.LicenseTypeDemo,
		ExpiresAt:       user.DemoExpiresAt,
		Restrictions:    []string{RestrictionDemoLimitations},
		AllowedFeatures: FeaturesFor(enums.LicenseTypeDemo),
	}
	if isExpired {
		validation.Restrictions = []string{RestrictionDemoExpired}
		validation.AllowedFeatures = []string{}
	}
	return validation
}

func (r *resolver) resolveSubscription(ctx context.Context, sub *models.Subscription) LicenseValidation {
	// A tier outside the known enum (data drift, or sqlite dev mode where no
	// enum constraint exists) must not produce a valid NONE license.
	licenseType := sub.Tier.LicenseType()
	if licenseType == enums.LicenseTypeNone {
		if r.logg != nil {
			r.logg.Warn(ctx, fmt.Sprintf("unrecognized subscription tier %q, treating as unlicensed", sub.Tier))
		}
		return noSubscriptionValidation()
	}

	isExpired := false
	if sub.CurrentPeriodEnd != nil {
		isExpired = r.now().After(*sub.CurrentPeriodEnd)
	}

	validation := LicenseValidation{
		IsValid:         !isExpired,
		IsExpired:       isExpired,
		LicenseType:     licenseType,
		ExpiresAt:       sub.CurrentPeriodEnd,
		Restrictions:    []string{},
		AllowedFeatures: FeaturesFor(licenseType),
	}
	if isExpired {
		validation.Restrictions = []string{RestrictionSubscriptionExpired}
		validation.AllowedFeatures = []string{}
	}
	return validation
}

func (r *resolver) warnLookupFailure(ctx context.Context, userID uuid.UUID, msg string, err error) {
	if r.logg == nil {
		return
	}
	ctx = r.logg.WithUserID(ctx, userID.String())
	r.logg.Warn(ctx, fmt.Sprintf("%s, degrading to most restrictive validation: %v", msg, err))
}

func userNotFoundValidation() LicenseValidation {
	return LicenseValidation{
		LicenseType:     enums.LicenseTypeNone,
		Restrictions:    []string{RestrictionUserNotFound},
		AllowedFeatures: []string{},
	}
}

func noSubscriptionValidation() LicenseValidation {
	return LicenseValidation{
		LicenseType:     enums.LicenseTypeNone,
		Restrictions:    []string{RestrictionNoActiveSubscription},
		AllowedFeatures: []string{},
	}
}

// failClosedValidation is the most restrictive result, used whenever a lookup
// fails for any reason other than a clean not-found.
func failClosedValidation() LicenseValidation {
	return LicenseValidation{
		IsExpired:       true,
		LicenseType:     enums.LicenseTypeNone,
		Restrictions:    []string{RestrictionValidationFailed},
		AllowedFeatures: []string{},
	}
}
