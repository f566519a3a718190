package entitlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/enums"
	"github.com/lumoworks/licensing-backend/pkg/logger"
)

type projectCounter interface {
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// QuotaEnforcer checks resource limits against a bound license context.
type QuotaEnforcer struct {
	counts projectCounter
	logg   *logger.Logger
}

// NewQuotaEnforcer builds a quota enforcer over the project count store.
func NewQuotaEnforcer(counts projectCounter, logg *logger.Logger) (*QuotaEnforcer, error) {
	if counts == nil {
		return nil, fmt.Errorf("project counter required")
	}
	return &QuotaEnforcer{counts: counts, logg: logg}, nil
}

// CheckProjectCount enforces the project ceiling for creation requests.
// Only demo users are counted at this layer; paid tiers are not quota-checked
// here, a documented scope limitation rather than an oversight. A counting
// failure denies rather than allows.
func (q *QuotaEnforcer) CheckProjectCount(ctx context.Context, lc RequestLicenseContext) Decision {
	if !lc.Validation.IsDemoUser {
		return Allow()
	}
	if lc.ProjectAccess.MaxProjects == UnlimitedQuota {
		return Allow()
	}

	count, err := q.counts.CountByOwner(ctx, lc.UserID)
	if err != nil {
		if q.logg != nil {
			q.logg.Warn(ctx, fmt.Sprintf("project count lookup failed, denying creation: %v", err))
		}
		// Count unknown; report the ceiling as the current count so the
		// denial body keeps its full shape.
		atLimit := lc.ProjectAccess.MaxProjects
		return Decision{
			Violation:    enums.ViolationProjectLimitExceeded,
			Operation:    enums.ProjectOperationCreate,
			CurrentCount: &atLimit,
			MaxAllowed:   lc.ProjectAccess.MaxProjects,
		}
	}

	if count >= int64(lc.ProjectAccess.MaxProjects) {
		current := int(count)
		return Decision{
			Violation:    enums.ViolationProjectLimitExceeded,
			Operation:    enums.ProjectOperationCreate,
			CurrentCount: &current,
			MaxAllowed:   lc.ProjectAccess.MaxProjects,
		}
	}
	return Allow()
}

// CheckFileSize enforces the per-upload size ceiling. Unlike the project
// count, this applies to every tier: enterprise caps at 2000MB rather than
// the unlimited sentinel, so oversized uploads deny there too.
func (q *QuotaEnforcer) CheckFileSize(sizeBytes int64, lc RequestLicenseContext) Decision {
	if sizeBytes <= 0 {
		return Allow()
	}
	if lc.ProjectAccess.MaxFileSizeMB == UnlimitedQuota {
		return Allow()
	}

	const bytesPerMB = 1024 * 1024
	sizeMB := float64(sizeBytes) / bytesPerMB
	if sizeMB > float64(lc.ProjectAccess.MaxFileSizeMB) {
		reported := int(sizeMB)
		if float64(reported) < sizeMB {
			reported++
		}
		return Decision{
			Violation:  enums.ViolationFileSizeExceeded,
			FileSizeMB: &reported,
			MaxAllowed: lc.ProjectAccess.MaxFileSizeMB,
		}
	}
	return Allow()
}
