package supplierorders

import (
	"github.com/angelmondragon/gestion-backend/pkg/auth"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// AddItemInput asks to add quantity of a product to a pending order.
type AddItemInput struct {
	Actor     auth.Actor
	OrderID   int64
	ProductID int64
	Quantity  int
}

// OrderItem is the wire projection of a purchase order line.
type OrderItem struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// ItemList is every line of an order with aggregate counts.
type ItemList struct {
	Items         []OrderItem `json:"items"`
	TotalItems    int         `json:"total_items"`
	TotalQuantity int         `json:"total_quantity"`
}

// AddItemResult is the upserted line plus the refreshed order contents.
type AddItemResult struct {
	Action        string      `json:"action"`
	Message       string      `json:"message"`
	Item          OrderItem   `json:"item"`
	AllItems      []OrderItem `json:"all_items"`
	TotalItems    int         `json:"total_items"`
	TotalQuantity int         `json:"total_quantity"`
}

func itemFromModel(item models.SupplierOrderItem) OrderItem {
	out := OrderItem{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice.StringFixed(2),
		Subtotal:  item.Subtotal().StringFixed(2),
	}
	if item.Product != nil {
		out.ProductName = item.Product.Name
	}
	return out
}

func listFromModels(items []models.SupplierOrderItem) ItemList {
	out := ItemList{Items: make([]OrderItem, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, itemFromModel(item))
		out.TotalQuantity += item.Quantity
	}
	out.TotalItems = len(out.Items)
	return out
}
