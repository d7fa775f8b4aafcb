package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry.
type Product struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string           `gorm:"column:name;not null"`
	SKU       string           `gorm:"column:sku;not null;uniqueIndex:idx_products_sku"`
	SalePrice *decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	IsActive  bool             `gorm:"column:is_active;not null"`
	Stock     []InventoryItem  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

// Price returns the sale price, treating an unset price as zero.
func (p Product) Price() decimal.Decimal {
	if p.SalePrice == nil {
		return decimal.Zero
	}
	return *p.SalePrice
}

// TotalStock sums every loaded zone row, zero-quantity rows included.
func (p Product) TotalStock() int {
	total := 0
	for _, item := range p.Stock {
		total += item.Quantity
	}
	return total
}
