package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/gestion-backend/internal/repo"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
)

// Repository is the stock ledger: quantities per (product, zone) plus zone lookups.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListInStockByProduct(ctx context.Context, productID int64) ([]models.InventoryItem, error)
	FindByProductAndZone(ctx context.Context, productID, zoneID int64) (*models.InventoryItem, error)
	DecrementIfAvailable(ctx context.Context, id int64, quantity int) (bool, error)
	ListActiveZones(ctx context.Context) ([]models.Zone, error)
	ListActiveZonesByWarehouse(ctx context.Context, warehouseID int64) ([]models.Zone, error)
	FindActiveZone(ctx context.Context, id int64) (*models.Zone, error)
	FirstActiveZoneMatching(ctx context.Context, keywords ...string) (*models.Zone, error)
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

// ListInStockByProduct returns rows with quantity > 0, zones and warehouses preloaded.
func (r *repository) ListInStockByProduct(ctx context.Context, productID int64) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.DB(ctx).
		Preload("Zone.Warehouse").
		Where("product_id = ? AND quantity > 0", productID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByProductAndZone(ctx context.Context, productID, zoneID int64) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).Where("product_id = ? AND zone_id = ?", productID, zoneID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementIfAvailable subtracts quantity only while enough stock remains.
// It reports false when the row is missing or would go negative.
func (r *repository) DecrementIfAvailable(ctx context.Context, id int64, quantity int) (bool, error) {
	res := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ListActiveZones(ctx context.Context) ([]models.Zone, error) {
	var zones []models.Zone
	err := r.DB(ctx).
		Preload("Warehouse").
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repository) ListActiveZonesByWarehouse(ctx context.Context, warehouseID int64) ([]models.Zone, error) {
	var zones []models.Zone
	err := r.DB(ctx).
		Preload("Warehouse").
		Where("warehouse_id = ? AND is_active = ?", warehouseID, true).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repository) FindActiveZone(ctx context.Context, id int64) (*models.Zone, error) {
	var zone models.Zone
	if err := r.DB(ctx).Preload("Warehouse").Where("id = ? AND is_active = ?", id, true).First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

// FirstActiveZoneMatching returns the lowest-id active zone whose name contains
// any keyword, case-insensitively. With no keywords it returns the first active zone.
func (r *repository) FirstActiveZoneMatching(ctx context.Context, keywords ...string) (*models.Zone, error) {
	q := r.DB(ctx).Preload("Warehouse").Where("is_active = ?", true)
	if len(keywords) > 0 {
		cond := r.DB(ctx).Where(repo.ContainsClause("name"), repo.ContainsPattern(keywords[0]))
		for _, kw := range keywords[1:] {
			cond = cond.Or(repo.ContainsClause("name"), repo.ContainsPattern(kw))
		}
		q = q.Where(cond)
	}

	var zone models.Zone
	if err := q.Order("id ASC").First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}
