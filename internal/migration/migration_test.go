package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/sallieha/HabitTrackerApp/migrations"
)

// setupTestMigrations builds an in-memory migrations directory from name -> SQL.
func setupTestMigrations(t *testing.T, files map[string]string) fs.FS {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func setupSQLiteTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewRunnerRejectsUnknownDriver(t *testing.T) {
	db := setupSQLiteTestDB(t)
	if _, err := NewRunner(db, fstest.MapFS{}, Driver("mysql")); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := NewRunner(nil, fstest.MapFS{}, DriverSQLite); err == nil {
		t.Error("expected error for nil db")
	}
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantErr  string
		versions []int
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_moods.sql": "SELECT 1;",
				"001_init.sql":  "SELECT 1;",
				"README.md":     "ignored",
			},
			versions: []int{1, 2},
		},
		{
			name:    "missing underscore",
			files:   map[string]string{"001.sql": "SELECT 1;"},
			wantErr: "invalid migration filename",
		},
		{
			name:    "non-numeric version",
			files:   map[string]string{"abc_init.sql": "SELECT 1;"},
			wantErr: "invalid version number",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "at least 1",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_init.sql": "SELECT 1;",
				"01_other.sql": "SELECT 1;",
			},
			wantErr: "duplicate migration version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := NewRunner(setupSQLiteTestDB(t), setupTestMigrations(t, tt.files), DriverSQLite)
			if err != nil {
				t.Fatalf("NewRunner: %v", err)
			}
			got, err := runner.ReadMigrationFiles()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadMigrationFiles() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMigrationFiles() unexpected error: %v", err)
			}
			if len(got) != len(tt.versions) {
				t.Fatalf("got %d migrations, want %d", len(got), len(tt.versions))
			}
			for i, v := range tt.versions {
				if got[i].Version != v {
					t.Errorf("migration[%d].Version = %d, want %d", i, got[i].Version, v)
				}
			}
		})
	}
}

func TestApplyMigrationsSQLite(t *testing.T) {
	db := setupSQLiteTestDB(t)
	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_init.sql":  "CREATE TABLE test_goals (id TEXT PRIMARY KEY);",
		"002_moods.sql": "CREATE TABLE test_moods (id TEXT PRIMARY KEY);",
	}), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	var logged []string
	count, err := runner.ApplyMigrations(func(s string) { logged = append(logged, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("applied %d migrations, want 2", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil || version != 2 {
		t.Errorf("GetCurrentVersion() = %d, %v; want 2", version, err)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v; want 0, nil", count, err)
	}
}

func TestApplyMigrationsRollsBackOnError(t *testing.T) {
	db := setupSQLiteTestDB(t)
	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_bad.sql": "CREATE TABLE test_goals (id TEXT PRIMARY KEY); THIS IS INVALID SQL;",
	}), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}
	if version, _ := runner.GetCurrentVersion(); version != 0 {
		t.Errorf("version = %d after failed migration, want 0", version)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := setupSQLiteTestDB(t)
	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_init.sql": "CREATE TABLE test_goals (id TEXT PRIMARY KEY);",
	}), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() = %v, want newer-schema error", err)
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations should refuse a newer database")
	}
}

func TestStatus(t *testing.T) {
	db := setupSQLiteTestDB(t)
	runner, err := NewRunner(db, setupTestMigrations(t, map[string]string{
		"001_init.sql":   "CREATE TABLE a (id TEXT);",
		"002_energy.sql": "CREATE TABLE b (id TEXT);",
	}), DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := runner.SetVersion(1); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 || len(st.Pending) != 1 || st.Pending[0].Name != "energy" {
		t.Errorf("Status() = %+v", st)
	}
}

func TestEmbeddedSQLiteSchemaApplies(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	db := setupSQLiteTestDB(t)
	runner, err := NewRunner(db, sub, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}

	var avatars int
	if err := db.QueryRow("SELECT COUNT(*) FROM avatars").Scan(&avatars); err != nil {
		t.Fatalf("count avatars: %v", err)
	}
	if avatars == 0 {
		t.Error("avatar catalog was not seeded")
	}
}
