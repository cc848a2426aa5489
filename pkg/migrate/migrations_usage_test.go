package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/malanad-agro/agrostore-backend/pkg/migrate"
)

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestUsageMigrationContainsGuardTrigger(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_used_inventory_quantity.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no usage migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS used_inventory_quantity",
		"FOREIGN KEY (inventory_id) REFERENCES inventory_management(id) ON DELETE CASCADE",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"CREATE OR REPLACE FUNCTION check_inventory_quantity()",
		"BEFORE INSERT ON used_inventory_quantity",
		"RAISE EXCEPTION 'requested quantity exceeds available quantity",
		"DROP TABLE IF EXISTS used_inventory_quantity",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationRestrictsInventoryDeletes(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}

	if !strings.Contains(string(data), "REFERENCES inventory_management(id) ON DELETE RESTRICT") {
		t.Error("orders must not cascade when inventory rows are removed")
	}
}
