package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/gestion-backend/pkg/enums"
)

// Supplier provides products through purchase orders.
type Supplier struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Supplier) TableName() string { return "suppliers" }

// ProductSupplier declares that a supplier carries a product, optionally at a cost.
type ProductSupplier struct {
	ID         int64            `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  int64            `gorm:"column:product_id;not null;uniqueIndex:idx_product_suppliers_pair"`
	SupplierID int64            `gorm:"column:supplier_id;not null;uniqueIndex:idx_product_suppliers_pair"`
	Cost       *decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
}

func (ProductSupplier) TableName() string { return "product_suppliers" }

// SupplierOrder is a purchase order placed with a single supplier.
type SupplierOrder struct {
	ID         int64                     `gorm:"column:id;primaryKey;autoIncrement"`
	SupplierID int64                     `gorm:"column:supplier_id;not null;index"`
	Status     enums.SupplierOrderStatus `gorm:"column:status;not null"`
	Supplier   *Supplier                 `gorm:"foreignKey:SupplierID"`
	Items      []SupplierOrderItem       `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (SupplierOrder) TableName() string { return "supplier_orders" }

// SupplierOrderItem is unique per (order, product).
type SupplierOrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null;uniqueIndex:idx_supplier_order_items_pair"`
	ProductID int64           `gorm:"column:product_id;not null;uniqueIndex:idx_supplier_order_items_pair"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
}

func (SupplierOrderItem) TableName() string { return "supplier_order_items" }

// Subtotal returns quantity × unit_price.
func (i SupplierOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
