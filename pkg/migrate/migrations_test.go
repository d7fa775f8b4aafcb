package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/gestion-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_products_inventory.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"FOREIGN KEY (zone_id) REFERENCES zones(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"idx_inventory_product_zone ON inventory (product_id, zone_id)",
		"sale_price NUMERIC(12,2)",
		"DROP TABLE IF EXISTS inventory",
	}
	for _, sub := range checks {
		require.Contains(t, content, sub)
	}
}

func TestSupplierOrderMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_suppliers_orders.sql")

	checks := []string{
		"idx_product_suppliers_pair ON product_suppliers (product_id, supplier_id)",
		"idx_supplier_order_items_pair ON supplier_order_items (order_id, product_id)",
		"CHECK (status IN ('PENDING', 'SENT', 'RECEIVED', 'CANCELLED'))",
		"DROP TABLE IF EXISTS supplier_order_items",
	}
	for _, sub := range checks {
		require.Contains(t, content, sub)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CST", -6*3600))

	path, err := migrate.CreateSQLMigration(dir, "Add Client Email!", now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260304110607_add_client_email.sql"), path)
	require.NoError(t, migrate.ValidateDir(dir))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), "-- revert add_client_email")
}

func TestCreateSQLMigrationRejectsReusedName(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := migrate.CreateSQLMigration(dir, "client email", now)
	require.NoError(t, err)
	_, err = migrate.CreateSQLMigration(dir, "add client email", now.Add(time.Minute))
	require.NoError(t, err, "a longer slug sharing a suffix is a different migration")

	_, err = migrate.CreateSQLMigration(dir, "Client-Email", now.Add(time.Hour))
	require.ErrorContains(t, err, "already exists")

	_, err = migrate.CreateSQLMigration(dir, "!!!", now)
	require.Error(t, err)
}

func TestSlug(t *testing.T) {
	require.Equal(t, "warehouse_zones", migrate.Slug("  Warehouse -- Zones "))
	require.Equal(t, "", migrate.Slug("***"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	require.Error(t, migrate.ValidateDir(dir))
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no migration matching %s", pattern)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestRunGuardsInputs(t *testing.T) {
	ctx := context.Background()
	require.ErrorContains(t, migrate.Run(ctx, nil, migrate.DefaultDir, "up", nil), "db is required")
	require.ErrorContains(t, migrate.MigrateToVersion(ctx, nil, "migrations", "2026", nil), "expected YYYYMMDDHHMMSS")
	require.ErrorContains(t, migrate.MigrateToVersion(ctx, nil, "migrations", "20260101000000", nil), "db is required")
}
