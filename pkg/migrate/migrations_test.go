package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodegadosparcas/bodega-backend/pkg/migrate"
)

const migrationsDir = "../../db/migrations"

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir(migrationsDir); err != nil {
		t.Fatalf("invalid migrations dir: %v", err)
	}
}

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join(migrationsDir, "*_create_catalog.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE categories",
		"CREATE TABLE products",
		"CREATE UNIQUE INDEX idx_categories_name",
		"promo_price numeric(12,2)",
		"CREATE INDEX idx_products_category_id",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUsersMigrationHasUniqueEmail(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join(migrationsDir, "*_create_users.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	if !strings.Contains(string(data), "CREATE UNIQUE INDEX idx_users_email") {
		t.Fatalf("users migration must index email uniquely")
	}
}
