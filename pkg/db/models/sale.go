package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is an optional buyer attached to a sale.
type Client struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Client) TableName() string { return "clients" }

// Sale is one completed checkout.
type Sale struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID    *int64          `gorm:"column:client_id;index"`
	UserID      int64           `gorm:"column:user_id;not null;index"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Items       []SaleItem      `gorm:"foreignKey:SaleID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Sale) TableName() string { return "sales" }

// SaleItem is a sale line. PriceAtSale is a snapshot and is never recomputed.
type SaleItem struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	SaleID      int64           `gorm:"column:sale_id;not null;index"`
	ProductID   int64           `gorm:"column:product_id;not null;index"`
	Quantity    int             `gorm:"column:quantity;not null"`
	PriceAtSale decimal.Decimal `gorm:"column:price_at_sale;type:numeric(12,2);not null"`
	Product     *Product        `gorm:"foreignKey:ProductID"`
}

func (SaleItem) TableName() string { return "sale_items" }

// LineTotal returns price_at_sale × quantity.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
