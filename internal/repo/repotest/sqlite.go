// Package repotest bootstraps in-memory SQLite databases and seed rows for
// repository and service tests.
package repotest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/angelmondragon/gestion-backend/pkg/db"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
	"github.com/angelmondragon/gestion-backend/pkg/enums"
)

// NewDB opens an isolated in-memory database with the full schema migrated.
// The pool is pinned to one connection so transactions never contend for locks.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return conn
}

// NewClient wraps NewDB in a db.Client so services can open transactions.
func NewClient(t *testing.T) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := NewDB(t)
	return db.NewFromGorm(conn), conn
}

// Money parses a decimal literal and returns a pointer to it.
func Money(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func mustCreate(t *testing.T, conn *gorm.DB, value any) {
	t.Helper()
	if err := conn.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

// Warehouse inserts an active warehouse.
func Warehouse(t *testing.T, conn *gorm.DB, name string) *models.Warehouse {
	t.Helper()
	w := &models.Warehouse{Name: name, IsActive: true}
	mustCreate(t, conn, w)
	return w
}

// Zone inserts a zone under the warehouse.
func Zone(t *testing.T, conn *gorm.DB, warehouseID int64, name string, active bool) *models.Zone {
	t.Helper()
	z := &models.Zone{WarehouseID: warehouseID, Name: name, IsActive: active}
	mustCreate(t, conn, z)
	return z
}

// Product inserts a product. A nil price leaves sale_price unset.
func Product(t *testing.T, conn *gorm.DB, name, sku string, price *decimal.Decimal, active bool) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, SKU: sku, SalePrice: price, IsActive: active}
	mustCreate(t, conn, p)
	return p
}

// Stock inserts an inventory row for (product, zone).
func Stock(t *testing.T, conn *gorm.DB, productID, zoneID int64, quantity int) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{ProductID: productID, ZoneID: zoneID, Quantity: quantity}
	mustCreate(t, conn, item)
	return item
}

// Supplier inserts an active supplier.
func Supplier(t *testing.T, conn *gorm.DB, name string) *models.Supplier {
	t.Helper()
	s := &models.Supplier{Name: name, IsActive: true}
	mustCreate(t, conn, s)
	return s
}

// ProductSupplier links a product to a supplier with an optional cost.
func ProductSupplier(t *testing.T, conn *gorm.DB, productID, supplierID int64, cost *decimal.Decimal) *models.ProductSupplier {
	t.Helper()
	ps := &models.ProductSupplier{ProductID: productID, SupplierID: supplierID, Cost: cost}
	mustCreate(t, conn, ps)
	return ps
}

// SupplierOrder inserts a purchase order in the given status.
func SupplierOrder(t *testing.T, conn *gorm.DB, supplierID int64, status enums.SupplierOrderStatus) *models.SupplierOrder {
	t.Helper()
	o := &models.SupplierOrder{SupplierID: supplierID, Status: status}
	mustCreate(t, conn, o)
	return o
}

// Client inserts an active client.
func Client(t *testing.T, conn *gorm.DB, name string) *models.Client {
	t.Helper()
	c := &models.Client{Name: name, IsActive: true}
	mustCreate(t, conn, c)
	return c
}

// Quantity reloads the current quantity of an inventory row.
func Quantity(t *testing.T, conn *gorm.DB, inventoryID int64) int {
	t.Helper()
	var item models.InventoryItem
	if err := conn.First(&item, inventoryID).Error; err != nil {
		t.Fatalf("reload inventory %d: %v", inventoryID, err)
	}
	return item.Quantity
}

// Count returns the number of rows in the model's table.
func Count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
