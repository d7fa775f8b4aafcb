package sales

import (
	"context"
	"fmt"

	"github.com/angelmondragon/gestion-backend/internal/inventory"
	"github.com/angelmondragon/gestion-backend/pkg/db"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
)

// salesZoneKeywords drive the fallback lookup when no zone id is configured.
var salesZoneKeywords = []string{"venta", "sale"}

const errSalesZoneNotConfigured = "sales zone not configured"

// ZoneResolver picks the zone checkout draws stock from.
type ZoneResolver interface {
	Resolve(ctx context.Context) (*models.Zone, error)
}

type zoneResolver struct {
	zones  inventory.Repository
	zoneID int64
}

// NewZoneResolver returns a resolver pinned to zoneID, or one using the name
// heuristic when zoneID is zero.
func NewZoneResolver(zones inventory.Repository, zoneID int64) (ZoneResolver, error) {
	if zones == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if zoneID < 0 {
		return nil, fmt.Errorf("sales zone id must not be negative")
	}
	return &zoneResolver{zones: zones, zoneID: zoneID}, nil
}

func (r *zoneResolver) Resolve(ctx context.Context) (*models.Zone, error) {
	if r.zoneID > 0 {
		zone, err := r.zones.FindActiveZone(ctx, r.zoneID)
		if err != nil {
			return nil, salesZoneError(err)
		}
		return zone, nil
	}

	zone, err := r.zones.FirstActiveZoneMatching(ctx, salesZoneKeywords...)
	if err == nil {
		return zone, nil
	}
	if !db.IsNotFound(err) {
		return nil, salesZoneError(err)
	}

	zone, err = r.zones.FirstActiveZoneMatching(ctx)
	if err != nil {
		return nil, salesZoneError(err)
	}
	return zone, nil
}

func salesZoneError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeInternal, errSalesZoneNotConfigured)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve sales zone")
}
