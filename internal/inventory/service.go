package inventory

import (
	"context"
	"fmt"

	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
)

// Service answers read-only stock and zone queries.
type Service interface {
	ProductStock(ctx context.Context, productID int64) ([]ZoneStock, error)
	ProductWarehouses(ctx context.Context, productID int64) ([]WarehouseStock, error)
	ListZones(ctx context.Context) ([]ZoneOption, error)
	ZonesByWarehouse(ctx context.Context, warehouseID int64) ([]ZoneOption, error)
}

type service struct {
	repo Repository
}

// NewService builds the inventory query service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

// ProductStock lists zones holding a positive quantity of the product. An
// unknown product simply has no rows.
func (s *service) ProductStock(ctx context.Context, productID int64) ([]ZoneStock, error) {
	items, err := s.repo.ListInStockByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product stock")
	}
	out := make([]ZoneStock, 0, len(items))
	for _, item := range items {
		out = append(out, zoneStockFromModel(item))
	}
	return out, nil
}

func (s *service) ProductWarehouses(ctx context.Context, productID int64) ([]WarehouseStock, error) {
	items, err := s.repo.ListInStockByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product warehouses")
	}
	return groupByWarehouse(items), nil
}

// ListZones returns every active zone labelled with its warehouse.
func (s *service) ListZones(ctx context.Context) ([]ZoneOption, error) {
	zones, err := s.repo.ListActiveZones(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list zones")
	}
	out := make([]ZoneOption, 0, len(zones))
	for _, z := range zones {
		out = append(out, ZoneOption{ID: z.ID, Name: z.DisplayName()})
	}
	return out, nil
}

// ZonesByWarehouse returns the active zones of one warehouse by plain name.
func (s *service) ZonesByWarehouse(ctx context.Context, warehouseID int64) ([]ZoneOption, error) {
	zones, err := s.repo.ListActiveZonesByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouse zones")
	}
	out := make([]ZoneOption, 0, len(zones))
	for _, z := range zones {
		out = append(out, ZoneOption{ID: z.ID, Name: z.Name})
	}
	return out, nil
}
