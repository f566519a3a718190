package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
)

type stubUserReader struct {
	user *models.User
	err  error
}

func (s *stubUserReader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type stubSubscriptionReader struct {
	sub *models.Subscription
	err error
}

func (s *stubSubscriptionReader) FindFirstEntitling(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sub, nil
}

func newTestResolver(t *testing.T, users userReader, subs subscriptionReader) Resolver {
	t.Helper()
	r, err := NewResolver(users, subs, config.EntitlementConfig{LookupTimeout: 3 * time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

func TestResolveUserNotFound(t *testing.T) {
	r := newTestResolver(t,
		&stubUserReader{err: gorm.ErrRecordNotFound},
		&stubSubscriptionReader{},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid {
		t.Fatalf("missing user must be invalid")
	}
	if got.LicenseType != enums.LicenseTypeNone {
		t.Fatalf("expected none, got %s", got.LicenseType)
	}
	if len(got.Restrictions) != 1 || got.Restrictions[0] != RestrictionUserNotFound {
		t.Fatalf("expected %q restriction, got %v", RestrictionUserNotFound, got.Restrictions)
	}
	if len(got.AllowedFeatures) != 0 {
		t.Fatalf("expected no features, got %v", got.AllowedFeatures)
	}
}

func TestResolveExpiredDemoUser(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New(), IsDemoUser: true, DemoExpiresAt: &yesterday}},
		&stubSubscriptionReader{},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid || !got.IsExpired {
		t.Fatalf("expected expired demo, got valid=%v expired=%v", got.IsValid, got.IsExpired)
	}
	if got.LicenseType != enums.LicenseTypeDemo {
		t.Fatalf("expected demo type, got %s", got.LicenseType)
	}
	if len(got.Restrictions) != 1 || got.Restrictions[0] != RestrictionDemoExpired {
		t.Fatalf("expected expired restriction, got %v", got.Restrictions)
	}
	if len(got.AllowedFeatures) != 0 {
		t.Fatalf("expired demo keeps no features, got %v", got.AllowedFeatures)
	}

	if access := AccessLevelFor(got.LicenseType, got.IsExpired); access != (ProjectAccessLevel{}) {
		t.Fatalf("expired demo should have no access, got %+v", access)
	}
}

func TestResolveActiveDemoUser(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour)
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New(), IsDemoUser: true, DemoExpiresAt: &tomorrow}},
		&stubSubscriptionReader{},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if !got.IsValid || got.IsExpired {
		t.Fatalf("expected valid demo, got valid=%v expired=%v", got.IsValid, got.IsExpired)
	}
	if !got.IsDemoUser {
		t.Fatalf("expected demo flag set")
	}
	if len(got.Restrictions) != 1 || got.Restrictions[0] != RestrictionDemoLimitations {
		t.Fatalf("expected limitations restriction, got %v", got.Restrictions)
	}
	if len(got.AllowedFeatures) == 0 {
		t.Fatalf("active demo should carry features")
	}
}

func TestResolveDemoUserWithoutExpiryFailsSecure(t *testing.T) {
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New(), IsDemoUser: true}},
		&stubSubscriptionReader{},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid || !got.IsExpired {
		t.Fatalf("demo without expiry must count as expired")
	}
}

func TestResolveActiveProSubscription(t *testing.T) {
	periodEnd := time.Now().Add(30 * 24 * time.Hour)
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New()}},
		&stubSubscriptionReader{sub: &models.Subscription{
			Tier:             enums.SubscriptionTierPro,
			Status:           enums.SubscriptionStatusActive,
			CurrentPeriodEnd: &periodEnd,
		}},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if !got.IsValid {
		t.Fatalf("expected valid pro license")
	}
	if got.LicenseType != enums.LicenseTypePro {
		t.Fatalf("expected pro, got %s", got.LicenseType)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(periodEnd) {
		t.Fatalf("expected expiry %v, got %v", periodEnd, got.ExpiresAt)
	}

	access := AccessLevelFor(got.LicenseType, got.IsExpired)
	if access.MaxProjects != 100 || !access.CanExport {
		t.Fatalf("expected pro access level, got %+v", access)
	}
}

func TestResolveNoSubscription(t *testing.T) {
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New()}},
		&stubSubscriptionReader{err: gorm.ErrRecordNotFound},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid {
		t.Fatalf("no subscription must be invalid")
	}
	if got.LicenseType != enums.LicenseTypeNone {
		t.Fatalf("expected none, got %s", got.LicenseType)
	}
	if len(got.Restrictions) != 1 || got.Restrictions[0] != RestrictionNoActiveSubscription {
		t.Fatalf("expected %q restriction, got %v", RestrictionNoActiveSubscription, got.Restrictions)
	}
}

func TestResolveUnknownTierFailsClosed(t *testing.T) {
	periodEnd := time.Now().Add(30 * 24 * time.Hour)
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New()}},
		&stubSubscriptionReader{sub: &models.Subscription{
			Tier:             enums.SubscriptionTier("legacy_gold"),
			Status:           enums.SubscriptionStatusActive,
			CurrentPeriodEnd: &periodEnd,
		}},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid {
		t.Fatalf("unrecognized tier must not yield a valid license")
	}
	if got.LicenseType != enums.LicenseTypeNone {
		t.Fatalf("expected none, got %s", got.LicenseType)
	}
	if len(got.Restrictions) != 1 || got.Restrictions[0] != RestrictionNoActiveSubscription {
		t.Fatalf("expected %q restriction, got %v", RestrictionNoActiveSubscription, got.Restrictions)
	}

	// Downstream this must deny as a license problem, not a tier restriction.
	lc := RequestLicenseContext{
		Validation:    got,
		ProjectAccess: AccessLevelFor(got.LicenseType, got.IsExpired),
	}
	decision := DecideOperation(lc, enums.ProjectOperationCreate)
	if decision.Allowed || decision.Violation != enums.ViolationInvalidLicense {
		t.Fatalf("expected invalid_license denial, got %+v", decision)
	}
}

func TestResolveLapsedSubscriptionIsExpired(t *testing.T) {
	lastWeek := time.Now().Add(-7 * 24 * time.Hour)
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New()}},
		&stubSubscriptionReader{sub: &models.Subscription{
			Tier:             enums.SubscriptionTierBasic,
			Status:           enums.SubscriptionStatusActive,
			CurrentPeriodEnd: &lastWeek,
		}},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid || !got.IsExpired {
		t.Fatalf("lapsed subscription must be expired")
	}
	if got.LicenseType != enums.LicenseTypeBasic {
		t.Fatalf("expected basic, got %s", got.LicenseType)
	}
}

func TestResolveUserLookupErrorFailsClosed(t *testing.T) {
	r := newTestResolver(t,
		&stubUserReader{err: errors.New("store unreachable")},
		&stubSubscriptionReader{},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid {
		t.Fatalf("lookup failure must not produce a valid license")
	}
	if got.LicenseType != enums.LicenseTypeNone || !got.IsExpired {
		t.Fatalf("expected fail-closed none/expired, got %+v", got)
	}

	if access := AccessLevelFor(got.LicenseType, got.IsExpired); access != (ProjectAccessLevel{}) {
		t.Fatalf("fail-closed access must be empty, got %+v", access)
	}
}

func TestResolveSubscriptionLookupErrorFailsClosed(t *testing.T) {
	r := newTestResolver(t,
		&stubUserReader{user: &models.User{ID: uuid.New()}},
		&stubSubscriptionReader{err: errors.New("timeout")},
	)

	got := r.Resolve(context.Background(), uuid.New())
	if got.IsValid || got.LicenseType != enums.LicenseTypeNone || !got.IsExpired {
		t.Fatalf("expected fail-closed validation, got %+v", got)
	}
	if len(got.Restrictions) != 1 || got.Restrictions[0] != RestrictionValidationFailed {
		t.Fatalf("expected validation-failed restriction, got %v", got.Restrictions)
	}
}
