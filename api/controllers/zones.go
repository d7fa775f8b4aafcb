package controllers

import (
	"net/http"

	"github.com/angelmondragon/gestion-backend/api/responses"
	"github.com/angelmondragon/gestion-backend/api/validators"
	"github.com/angelmondragon/gestion-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

type zonesResponse struct {
	types.Envelope
	Zones []inventory.ZoneOption `json:"zones"`
}

func ListZones(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		zones, err := svc.ListZones(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, zonesResponse{Envelope: types.Success(), Zones: zones})
	}
}

func WarehouseZones(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		warehouseID, err := validators.ParsePathID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zones, err := svc.ZonesByWarehouse(r.Context(), warehouseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, zonesResponse{Envelope: types.Success(), Zones: zones})
	}
}
