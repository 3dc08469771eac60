package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/sallieha/HabitTrackerApp/migrations"
)

// setupPostgresTestDB opens POSTGRES_TEST_URL, skipping when it is unset.
// Example: POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func setupPostgresTestDB(t *testing.T, tables ...string) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		for _, table := range append(tables, "schema_version") {
			db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
		}
		db.Close()
	})
	return db
}

func TestPostgresSetVersion(t *testing.T) {
	db := setupPostgresTestDB(t)

	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_init.sql": "CREATE TABLE test_goals (id SERIAL PRIMARY KEY);",
	}), DriverPostgres)
	if err != nil {
		t.Fatalf("failed to create migration runner: %v", err)
	}

	for _, want := range []int{1, 2} {
		if err := runner.SetVersion(want); err != nil {
			t.Fatalf("SetVersion(%d) failed: %v", want, err)
		}
		got, err := runner.GetCurrentVersion()
		if err != nil {
			t.Fatalf("GetCurrentVersion failed: %v", err)
		}
		if got != want {
			t.Errorf("expected version %d, got %d", want, got)
		}
	}
}

func TestPostgresMigrationRollbackOnError(t *testing.T) {
	db := setupPostgresTestDB(t, "test_goals")

	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_bad.sql": `
			CREATE TABLE test_goals (id SERIAL PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}), DriverPostgres)
	if err != nil {
		t.Fatalf("failed to create migration runner: %v", err)
	}

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}

	var exists bool
	err = db.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'test_goals')").Scan(&exists)
	if err != nil {
		t.Fatalf("failed to check test_goals table: %v", err)
	}
	if exists {
		t.Error("test_goals table should not exist after rollback")
	}
}

func TestPostgresEmbeddedSchema(t *testing.T) {
	db := setupPostgresTestDB(t,
		"user_profiles", "avatars", "daily_tasks", "hourly_energy_levels", "moods",
		"goal_misses", "goal_completions", "goals", "sessions", "users")

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	runner, err := NewRunner(db, sub, DriverPostgres)
	if err != nil {
		t.Fatalf("failed to create migration runner: %v", err)
	}

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count == 0 {
		t.Error("expected at least one migration applied")
	}
	if count, err = runner.ApplyMigrations(nil); err != nil || count != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v; want 0, nil", count, err)
	}
}
