package models

import "time"

// InventoryItem is the stock ledger entry for one product in one zone.
type InventoryItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:idx_inventory_product_zone"`
	ZoneID    int64     `gorm:"column:zone_id;not null;uniqueIndex:idx_inventory_product_zone"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Zone      *Zone     `gorm:"foreignKey:ZoneID"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryItem) TableName() string { return "inventory" }
