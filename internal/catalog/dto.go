package catalog

import "github.com/angelmondragon/gestion-backend/pkg/db/models"

// ProductSummary is a sellable product with its total stock across all zones.
type ProductSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductPage is one page of the active product listing.
type ProductPage struct {
	Products   []ProductSummary `json:"products"`
	Count      int64            `json:"count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ProductPrice is the current sale price rendered as a decimal string.
type ProductPrice struct {
	Price string `json:"price"`
	Name  string `json:"name"`
}

func summaryFromModel(p models.Product) ProductSummary {
	return ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		SKU:   p.SKU,
		Price: p.Price().InexactFloat64(),
		Stock: p.TotalStock(),
	}
}

func summariesFromModels(products []models.Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, summaryFromModel(p))
	}
	return out
}
