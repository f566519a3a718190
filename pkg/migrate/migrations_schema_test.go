package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumoworks/licensing-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestUsersMigrationContainsDemoColumns(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"is_demo_user BOOLEAN NOT NULL DEFAULT FALSE",
		"demo_expires_at TIMESTAMPTZ",
		"CHECK (is_demo_user = FALSE OR demo_expires_at IS NOT NULL)",
		"DROP TABLE IF EXISTS users",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSubscriptionsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_subscriptions.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS subscriptions",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"idx_subscriptions_user_status",
		"DROP TABLE IF EXISTS subscriptions",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAuditEventsMigrationContainsRetentionIndex(t *testing.T) {
	content := readMigration(t, "*_create_audit_events.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS audit_events",
		"CHECK (kind IN ('validation', 'violation'))",
		"idx_audit_events_created_at",
		"DROP TABLE IF EXISTS audit_events",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
