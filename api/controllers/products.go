package controllers

import (
	"net/http"

	"github.com/angelmondragon/gestion-backend/api/responses"
	"github.com/angelmondragon/gestion-backend/api/validators"
	"github.com/angelmondragon/gestion-backend/internal/catalog"
	"github.com/angelmondragon/gestion-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/pagination"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

const maxSearchQueryLength = 100

type stockResponse struct {
	types.Envelope
	StockInfo []inventory.ZoneStock `json:"stock_info"`
}

type warehousesResponse struct {
	types.Envelope
	Warehouses []inventory.WarehouseStock `json:"warehouses"`
}

type productsResponse struct {
	types.Envelope
	Products []catalog.ProductSummary `json:"products"`
}

type productPageResponse struct {
	types.Envelope
	catalog.ProductPage
}

type priceResponse struct {
	types.Envelope
	catalog.ProductPrice
}

// ProductStock lists the zones holding stock of a product.
func ProductStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stock, err := svc.ProductStock(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stockResponse{Envelope: types.Success(), StockInfo: stock})
	}
}

// ProductWarehouses groups a product's stocked zones by warehouse.
func ProductWarehouses(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouses, err := svc.ProductWarehouses(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, warehousesResponse{Envelope: types.Success(), Warehouses: warehouses})
	}
}

// SearchProducts matches active products by name or SKU. Accepts q or query.
func SearchProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := validators.CapRunes(validators.FirstQuery(r, "q", "query"), maxSearchQueryLength)

		products, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productsResponse{Envelope: types.Success(), Products: products})
	}
}

func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// oversized pages are clamped by pagination.Params rather than rejected
		pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{Page: page, PageSize: pageSize})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productPageResponse{Envelope: types.Success(), ProductPage: *result})
	}
}

func ProductPrice(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := svc.Price(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, priceResponse{Envelope: types.Success(), ProductPrice: *price})
	}
}
