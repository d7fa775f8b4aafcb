package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/gestion-backend/internal/repo"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
)

// Repository persists sales and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) error
	CreateItem(ctx context.Context, item *models.SaleItem) error
	UpdateTotal(ctx context.Context, saleID int64, total decimal.Decimal) error
	FindByID(ctx context.Context, id int64) (*models.Sale, error)
	ClientExists(ctx context.Context, clientID int64) (bool, error)
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

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.DB(ctx).Create(sale).Error
}

func (r *repository) CreateItem(ctx context.Context, item *models.SaleItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *repository) UpdateTotal(ctx context.Context, saleID int64, total decimal.Decimal) error {
	res := r.DB(ctx).
		Model(&models.Sale{}).
		Where("id = ?", saleID).
		UpdateColumn("total_amount", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads the sale with its items in insertion order.
func (r *repository) FindByID(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var n int64
	err := r.DB(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
