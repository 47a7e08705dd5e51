package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwsummers/Canopy-Chronicles/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestActivityMigrationHasNoGrowForeignKey(t *testing.T) {
	content := readMigration(t, "*_create_activities.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS activities",
		"'delete_grow'",
		"DROP TABLE IF EXISTS activities",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	// Activity rows must survive grow deletion, so no cascade on grow_id.
	if strings.Contains(content, "REFERENCES grows") {
		t.Error("activities must not reference grows")
	}
}

func TestProfileMigrationDefaults(t *testing.T) {
	content := readMigration(t, "*_create_profiles.sql")

	checks := []string{
		"notifications_enabled BOOLEAN NOT NULL DEFAULT FALSE",
		"watering_interval_days INTEGER NOT NULL DEFAULT 2",
		"fertilizing_interval_days INTEGER NOT NULL DEFAULT 7",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReminderMigrationConstraints(t *testing.T) {
	content := readMigration(t, "*_create_notifications.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS reminder_schedules",
		"CHECK (kind IN ('watering', 'fertilizing'))",
		"CHECK (period_seconds > 0)",
		"idx_reminder_schedules_next_fire_at",
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
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
