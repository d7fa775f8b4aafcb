package models

import (
	"fmt"
	"time"
)

// Warehouse is a physical site holding one or more zones.
type Warehouse struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	Zones     []Zone    `gorm:"foreignKey:WarehouseID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Warehouse) TableName() string { return "warehouses" }

// Zone is a sub-location of a warehouse where inventory is tracked.
type Zone struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	WarehouseID int64      `gorm:"column:warehouse_id;not null;index"`
	Name        string     `gorm:"column:name;not null"`
	IsActive    bool       `gorm:"column:is_active;not null"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Zone) TableName() string { return "zones" }

// DisplayName renders the zone with its warehouse, e.g. "Shelf A (Central)".
func (z Zone) DisplayName() string {
	if z.Warehouse == nil || z.Warehouse.Name == "" {
		return z.Name
	}
	return fmt.Sprintf("%s (%s)", z.Name, z.Warehouse.Name)
}
