package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/gestion-backend/internal/repo"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
)

// Repository reads products for the point of sale.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindActiveByID(ctx context.Context, id int64) (*models.Product, error)
	SearchActive(ctx context.Context, term string, limit int) ([]models.Product, error)
	ListActive(ctx context.Context, offset, limit int) ([]models.Product, error)
	CountActive(ctx context.Context) (int64, error)
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

// FindByID loads the product regardless of its active flag.
func (r *repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindActiveByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchActive matches term against name or SKU, preloading every stock row.
func (r *repository) SearchActive(ctx context.Context, term string, limit int) ([]models.Product, error) {
	pattern := repo.ContainsPattern(term)
	var products []models.Product
	err := r.DB(ctx).
		Preload("Stock").
		Where("is_active = ?", true).
		Where(r.DB(ctx).Where(repo.ContainsClause("name"), pattern).Or(repo.ContainsClause("sku"), pattern)).
		Order("name ASC").
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListActive(ctx context.Context, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Preload("Stock").
		Where("is_active = ?", true).
		Order("name ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB(ctx).Model(&models.Product{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
