package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/enums"
)

type stubCounter struct {
	count int64
	err   error
}

func (s *stubCounter) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.count, s.err
}

func demoContext(count int) RequestLicenseContext {
	_ = count
	return RequestLicenseContext{
		UserID: uuid.New(),
		Validation: LicenseValidation{
			IsValid:     true,
			IsDemoUser:  true,
			LicenseType: enums.LicenseTypeDemo,
		},
		ProjectAccess: AccessLevelFor(enums.LicenseTypeDemo, false),
	}
}

func paidContext(licenseType enums.LicenseType) RequestLicenseContext {
	return RequestLicenseContext{
		UserID: uuid.New(),
		Validation: LicenseValidation{
			IsValid:     true,
			LicenseType: licenseType,
		},
		ProjectAccess: AccessLevelFor(licenseType, false),
	}
}

func TestCheckProjectCountDemoAtLimit(t *testing.T) {
	enforcer, err := NewQuotaEnforcer(&stubCounter{count: 3}, nil)
	if err != nil {
		t.Fatalf("new enforcer: %v", err)
	}

	decision := enforcer.CheckProjectCount(context.Background(), demoContext(3))
	if decision.Allowed {
		t.Fatalf("demo at limit should deny")
	}
	if decision.Violation != enums.ViolationProjectLimitExceeded {
		t.Fatalf("expected project_limit_exceeded, got %s", decision.Violation)
	}
	if decision.CurrentCount == nil || *decision.CurrentCount != 3 {
		t.Fatalf("expected currentCount=3, got %v", decision.CurrentCount)
	}
	if decision.MaxAllowed != 3 {
		t.Fatalf("expected maxAllowed=3, got %d", decision.MaxAllowed)
	}
}

func TestCheckProjectCountDemoUnderLimit(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{count: 2}, nil)

	if decision := enforcer.CheckProjectCount(context.Background(), demoContext(2)); !decision.Allowed {
		t.Fatalf("demo under limit should allow")
	}
}

func TestCheckProjectCountSkipsPaidTiers(t *testing.T) {
	// The counter would deny if consulted; paid tiers must not reach it.
	enforcer, _ := NewQuotaEnforcer(&stubCounter{err: errors.New("must not be called")}, nil)

	for _, licenseType := range []enums.LicenseType{
		enums.LicenseTypeBasic,
		enums.LicenseTypePro,
		enums.LicenseTypeEnterprise,
	} {
		if decision := enforcer.CheckProjectCount(context.Background(), paidContext(licenseType)); !decision.Allowed {
			t.Fatalf("%s should not be project-count checked here", licenseType)
		}
	}
}

func TestCheckProjectCountLookupErrorDenies(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{err: errors.New("store unreachable")}, nil)

	decision := enforcer.CheckProjectCount(context.Background(), demoContext(0))
	if decision.Allowed {
		t.Fatalf("count lookup failure must deny, not allow")
	}
	if decision.Violation != enums.ViolationProjectLimitExceeded {
		t.Fatalf("expected project_limit_exceeded, got %s", decision.Violation)
	}
	if decision.CurrentCount == nil || *decision.CurrentCount != decision.MaxAllowed {
		t.Fatalf("unknown count should report the ceiling, got %v", decision.CurrentCount)
	}
}

func TestCheckFileSizeUnlimitedSentinelAlwaysAllows(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{}, nil)

	lc := paidContext(enums.LicenseTypePro)
	lc.ProjectAccess.MaxFileSizeMB = UnlimitedQuota

	huge := int64(1) << 40 // 1TB
	if decision := enforcer.CheckFileSize(huge, lc); !decision.Allowed {
		t.Fatalf("unlimited sentinel must never deny")
	}
}

func TestCheckFileSizeEnterpriseCapIsNotUnlimited(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{}, nil)

	fiveGB := int64(5) * 1024 * 1024 * 1024
	decision := enforcer.CheckFileSize(fiveGB, paidContext(enums.LicenseTypeEnterprise))
	if decision.Allowed {
		t.Fatalf("5GB exceeds the 2000MB enterprise cap and must deny")
	}
	if decision.Violation != enums.ViolationFileSizeExceeded {
		t.Fatalf("expected file_size_exceeded, got %s", decision.Violation)
	}
	if decision.FileSizeMB == nil || *decision.FileSizeMB != 5120 {
		t.Fatalf("expected fileSize=5120MB, got %v", decision.FileSizeMB)
	}
	if decision.MaxAllowed != 2000 {
		t.Fatalf("expected maxAllowed=2000, got %d", decision.MaxAllowed)
	}
}

func TestCheckFileSizeWithinLimitAllows(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{}, nil)

	tenMB := int64(10) * 1024 * 1024
	if decision := enforcer.CheckFileSize(tenMB, demoContext(0)); !decision.Allowed {
		t.Fatalf("10MB should pass the 25MB demo cap")
	}
}

func TestCheckFileSizeDemoOverLimitDenies(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{}, nil)

	thirtyMB := int64(30) * 1024 * 1024
	decision := enforcer.CheckFileSize(thirtyMB, demoContext(0))
	if decision.Allowed {
		t.Fatalf("30MB should exceed the 25MB demo cap")
	}
	if decision.FileSizeMB == nil || *decision.FileSizeMB != 30 {
		t.Fatalf("expected fileSize=30, got %v", decision.FileSizeMB)
	}
}

func TestCheckFileSizeZeroBytesAllows(t *testing.T) {
	enforcer, _ := NewQuotaEnforcer(&stubCounter{}, nil)

	if decision := enforcer.CheckFileSize(0, demoContext(0)); !decision.Allowed {
		t.Fatalf("requests without a declared size must pass")
	}
}
