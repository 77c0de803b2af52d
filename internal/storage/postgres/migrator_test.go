package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys["sql/migrations/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoadMigrationsFromFS_Success(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationFS(map[string]string{
		"0002_more.up.sql":   "CREATE TABLE test_b (id INT);",
		"0002_more.down.sql": "DROP TABLE IF EXISTS test_b;",
		"0001_init.up.sql":   "CREATE TABLE test_a (id INT);",
		"0001_init.down.sql": "DROP TABLE IF EXISTS test_a;",
	}))
	if err != nil {
		t.Fatalf("loadMigrationsFromFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].label() != "1_init" || migrations[1].label() != "2_more" {
		t.Fatalf("unexpected order: %s, %s", migrations[0].label(), migrations[1].label())
	}
	if migrations[1].body(migrationDown) != "DROP TABLE IF EXISTS test_b;" {
		t.Fatalf("unexpected down body: %q", migrations[1].DownSQL)
	}
}

func TestLoadMigrationsFromFS_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing down",
			files:   map[string]string{"0001_init.up.sql": "SELECT 1;"},
			wantErr: "both up and down",
		},
		{
			name:    "invalid filename",
			files:   map[string]string{"not_a_migration.sql": "SELECT 1;"},
			wantErr: "invalid migration file name",
		},
		{
			name: "empty body",
			files: map[string]string{
				"0001_init.up.sql":   "   \n",
				"0001_init.down.sql": "SELECT 1;",
			},
			wantErr: "empty",
		},
		{
			name: "name mismatch",
			files: map[string]string{
				"0001_init.up.sql":    "SELECT 1;",
				"0001_other.down.sql": "SELECT 1;",
			},
			wantErr: "name mismatch",
		},
		{
			name:    "no files",
			files:   map[string]string{},
			wantErr: "no migration files",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadMigrationsFromFS(migrationFS(tc.files))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 embedded migrations, got %d", len(migrations))
	}
	if !strings.Contains(migrations[0].UpSQL, "customers_email_uniq") {
		t.Fatal("expected unique email index in first migration")
	}
}

func TestPlanMigrations(t *testing.T) {
	t.Parallel()

	available := []migration{
		{Version: 1, Name: "a", UpSQL: "1", DownSQL: "1"},
		{Version: 2, Name: "b", UpSQL: "2", DownSQL: "2"},
		{Version: 3, Name: "c", UpSQL: "3", DownSQL: "3"},
	}

	up, err := planMigrations(available, []int64{1}, migrationUp, 0)
	if err != nil {
		t.Fatalf("plan up: %v", err)
	}
	if len(up) != 2 || up[0].Version != 2 || up[1].Version != 3 {
		t.Fatalf("unexpected up plan: %+v", up)
	}

	upOne, _ := planMigrations(available, nil, migrationUp, 1)
	if len(upOne) != 1 || upOne[0].Version != 1 {
		t.Fatalf("unexpected limited up plan: %+v", upOne)
	}

	down, err := planMigrations(available, []int64{1, 2, 3}, migrationDown, 2)
	if err != nil {
		t.Fatalf("plan down: %v", err)
	}
	if len(down) != 2 || down[0].Version != 3 || down[1].Version != 2 {
		t.Fatalf("unexpected down plan: %+v", down)
	}

	if _, err := planMigrations(available, []int64{9}, migrationDown, 1); err == nil {
		t.Fatal("expected error for unknown applied version")
	}
	if _, err := planMigrations(available, nil, migrationDirection("sideways"), 0); err == nil {
		t.Fatal("expected error for unsupported direction")
	}
}
