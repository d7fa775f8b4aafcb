package supplierorders

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/gestion-backend/internal/repo"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
)

// Repository persists purchase orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, id int64) (*models.SupplierOrder, error)
	FindOrderForUpdate(ctx context.Context, id int64) (*models.SupplierOrder, error)
	FindProductSupplier(ctx context.Context, productID, supplierID int64) (*models.ProductSupplier, error)
	FindItem(ctx context.Context, orderID, productID int64) (*models.SupplierOrderItem, error)
	CreateItem(ctx context.Context, item *models.SupplierOrderItem) error
	UpdateItem(ctx context.Context, item *models.SupplierOrderItem) error
	ListItems(ctx context.Context, orderID int64) ([]models.SupplierOrderItem, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) FindOrder(ctx context.Context, id int64) (*models.SupplierOrder, error) {
	var order models.SupplierOrder
	if err := r.DB(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderForUpdate row-locks the order so concurrent upserts on it serialize.
// SQLite has no row locks; its single writer already serializes.
func (r *repository) FindOrderForUpdate(ctx context.Context, id int64) (*models.SupplierOrder, error) {
	var order models.SupplierOrder
	q := r.DB(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindProductSupplier(ctx context.Context, productID, supplierID int64) (*models.ProductSupplier, error) {
	var link models.ProductSupplier
	err := r.DB(ctx).
		Where("product_id = ? AND supplier_id = ?", productID, supplierID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) FindItem(ctx context.Context, orderID, productID int64) (*models.SupplierOrderItem, error) {
	var item models.SupplierOrderItem
	err := r.DB(ctx).
		Preload("Product").
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.SupplierOrderItem) error {
	return r.DB(ctx).Omit(clause.Associations).Create(item).Error
}

// UpdateItem writes quantity and unit price of an existing line.
func (r *repository) UpdateItem(ctx context.Context, item *models.SupplierOrderItem) error {
	return r.DB(ctx).
		Model(&models.SupplierOrderItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		}).Error
}

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]models.SupplierOrderItem, error) {
	var items []models.SupplierOrderItem
	err := r.DB(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
