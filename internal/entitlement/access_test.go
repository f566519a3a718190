package entitlement

import (
	"testing"

	"github.com/lumoworks/licensing-backend/pkg/enums"
)

func TestAccessLevelTable(t *testing.T) {
	tests := []struct {
		name        string
		licenseType enums.LicenseType
		want        ProjectAccessLevel
	}{
		{
			name:        "demo withholds export and share",
			licenseType: enums.LicenseTypeDemo,
			want: ProjectAccessLevel{
				CanCreate: true, CanEdit: true, CanDelete: true,
				MaxProjects: 3, MaxFileSizeMB: 25, MaxStorageMB: 100,
			},
		},
		{
			name:        "basic grants everything with small quotas",
			licenseType: enums.LicenseTypeBasic,
			want: ProjectAccessLevel{
				CanCreate: true, CanEdit: true, CanDelete: true, CanExport: true, CanShare: true,
				MaxProjects: 10, MaxFileSizeMB: 100, MaxStorageMB: 1000,
			},
		},
		{
			name:        "pro raises quotas",
			licenseType: enums.LicenseTypePro,
			want: ProjectAccessLevel{
				CanCreate: true, CanEdit: true, CanDelete: true, CanExport: true, CanShare: true,
				MaxProjects: 100, MaxFileSizeMB: 500, MaxStorageMB: 10000,
			},
		},
		{
			name:        "enterprise is unlimited except file size",
			licenseType: enums.LicenseTypeEnterprise,
			want: ProjectAccessLevel{
				CanCreate: true, CanEdit: true, CanDelete: true, CanExport: true, CanShare: true,
				MaxProjects: -1, MaxFileSizeMB: 2000, MaxStorageMB: -1,
			},
		},
		{
			name:        "none grants nothing",
			licenseType: enums.LicenseTypeNone,
			want:        ProjectAccessLevel{},
		},
		{
			name:        "unknown type grants nothing",
			licenseType: enums.LicenseType("platinum"),
			want:        ProjectAccessLevel{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AccessLevelFor(tc.licenseType, false)
			if got != tc.want {
				t.Fatalf("unexpected access level: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestExpiryDominatesEveryTier(t *testing.T) {
	for _, licenseType := range []enums.LicenseType{
		enums.LicenseTypeDemo,
		enums.LicenseTypeBasic,
		enums.LicenseTypePro,
		enums.LicenseTypeEnterprise,
		enums.LicenseTypeNone,
	} {
		got := AccessLevelFor(licenseType, true)
		if got != (ProjectAccessLevel{}) {
			t.Fatalf("expired %s should grant nothing, got %+v", licenseType, got)
		}
	}
}

func TestFeaturesAreMonotone(t *testing.T) {
	basic := FeaturesFor(enums.LicenseTypeBasic)
	pro := FeaturesFor(enums.LicenseTypePro)
	enterprise := FeaturesFor(enums.LicenseTypeEnterprise)

	assertSubset(t, basic, pro)
	assertSubset(t, pro, enterprise)
}

func TestDemoFeaturesExcludeExportAndShare(t *testing.T) {
	demo := FeaturesFor(enums.LicenseTypeDemo)
	for _, feature := range demo {
		if feature == "project_export" || feature == "project_share" {
			t.Fatalf("demo feature set must not include %s", feature)
		}
	}
	if len(demo) == 0 {
		t.Fatalf("demo feature set must not be empty")
	}
}

func TestNoneHasNoFeatures(t *testing.T) {
	if got := FeaturesFor(enums.LicenseTypeNone); len(got) != 0 {
		t.Fatalf("none should have no features, got %v", got)
	}
}

func assertSubset(t *testing.T, smaller, larger []string) {
	t.Helper()
	set := make(map[string]bool, len(larger))
	for _, feature := range larger {
		set[feature] = true
	}
	for _, feature := range smaller {
		if !set[feature] {
			t.Fatalf("feature %s missing from larger tier", feature)
		}
	}
}
