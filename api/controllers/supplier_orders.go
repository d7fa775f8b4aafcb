package controllers

import (
	"net/http"

	"github.com/angelmondragon/gestion-backend/api/middleware"
	"github.com/angelmondragon/gestion-backend/api/responses"
	"github.com/angelmondragon/gestion-backend/api/validators"
	"github.com/angelmondragon/gestion-backend/internal/supplierorders"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

type addSupplierItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity"`
}

// defaultItemQuantity applies when the body omits quantity.
const defaultItemQuantity = 1

type addSupplierItemResponse struct {
	types.Envelope
	supplierorders.AddItemResult
}

type supplierItemsResponse struct {
	types.Envelope
	supplierorders.ItemList
}

// AddSupplierOrderItem adds a product to a pending supplier order, merging with an existing line.
func AddSupplierOrderItem(svc supplierorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier order service unavailable"))
			return
		}

		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		orderID, err := validators.ParsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addSupplierItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := defaultItemQuantity
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		result, err := svc.AddItem(r.Context(), supplierorders.AddItemInput{
			Actor:     actor,
			OrderID:   orderID,
			ProductID: payload.ProductID,
			Quantity:  quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, addSupplierItemResponse{Envelope: types.Success(), AddItemResult: *result})
	}
}

func ListSupplierOrderItems(svc supplierorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier order service unavailable"))
			return
		}

		orderID, err := validators.ParsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListItems(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, supplierItemsResponse{Envelope: types.Success(), ItemList: *items})
	}
}
