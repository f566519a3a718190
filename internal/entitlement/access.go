package entitlement

import "github.com/lumoworks/licensing-backend/pkg/enums"

// AccessLevelFor maps a license type and expiry flag to the capability/quota
// table. Total and pure: every input yields a defined level, and an expired
// license loses everything regardless of tier.
func AccessLevelFor(licenseType enums.LicenseType, isExpired bool) ProjectAccessLevel {
	if isExpired {
		return ProjectAccessLevel{}
	}

	switch licenseType {
	case enums.LicenseTypeDemo:
		// Export and share are withheld on demo to limit trial abuse while
		// keeping in-app evaluation fully usable.
		return ProjectAccessLevel{
			CanCreate:     true,
			CanEdit:       true,
			CanDelete:     true,
			MaxProjects:   3,
			MaxFileSizeMB: 25,
			MaxStorageMB:  100,
		}
	case enums.LicenseTypeBasic:
		return ProjectAccessLevel{
			CanCreate:     true,
			CanEdit:       true,
			CanDelete:     true,
			CanExport:     true,
			CanShare:      true,
			MaxProjects:   10,
			MaxFileSizeMB: 100,
			MaxStorageMB:  1000,
		}
	case enums.LicenseTypePro:
		return ProjectAccessLevel{
			CanCreate:     true,
			CanEdit:       true,
			CanDelete:     true,
			CanExport:     true,
			CanShare:      true,
			MaxProjects:   100,
			MaxFileSizeMB: 500,
			MaxStorageMB:  10000,
		}
	case enums.LicenseTypeEnterprise:
		return ProjectAccessLevel{
			CanCreate:     true,
			CanEdit:       true,
			CanDelete:     true,
			CanExport:     true,
			CanShare:      true,
			MaxProjects:   UnlimitedQuota,
			MaxFileSizeMB: 2000,
			MaxStorageMB:  UnlimitedQuota,
		}
	default:
		return ProjectAccessLevel{}
	}
}

// UnlimitedQuota is the sentinel meaning "no limit" for a numeric quota.
const UnlimitedQuota = -1
