package inventory

import "github.com/angelmondragon/gestion-backend/pkg/db/models"

// ZoneStock is one in-stock zone for a product.
type ZoneStock struct {
	ZoneID   int64  `json:"zone_id"`
	ZoneName string `json:"zone_name"`
	Stock    int    `json:"stock"`
}

// WarehouseStock groups in-stock zones under their warehouse.
type WarehouseStock struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Zones []ZoneQuantity `json:"zones"`
}

// ZoneQuantity is a zone entry nested under a warehouse.
type ZoneQuantity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// ZoneOption is a selectable zone.
type ZoneOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func zoneStockFromModel(item models.InventoryItem) ZoneStock {
	out := ZoneStock{ZoneID: item.ZoneID, Stock: item.Quantity}
	if item.Zone != nil {
		out.ZoneName = item.Zone.DisplayName()
	}
	return out
}

// groupByWarehouse keeps warehouses in the order their first zone appears.
func groupByWarehouse(items []models.InventoryItem) []WarehouseStock {
	out := make([]WarehouseStock, 0)
	index := map[int64]int{}
	for _, item := range items {
		if item.Zone == nil {
			continue
		}
		wid := item.Zone.WarehouseID
		pos, ok := index[wid]
		if !ok {
			name := ""
			if item.Zone.Warehouse != nil {
				name = item.Zone.Warehouse.Name
			}
			out = append(out, WarehouseStock{ID: wid, Name: name, Zones: []ZoneQuantity{}})
			pos = len(out) - 1
			index[wid] = pos
		}
		out[pos].Zones = append(out[pos].Zones, ZoneQuantity{
			ID:    item.Zone.ID,
			Name:  item.Zone.Name,
			Stock: item.Quantity,
		})
	}
	return out
}
