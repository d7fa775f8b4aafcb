package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/gestion-backend/api/middleware"
	"github.com/angelmondragon/gestion-backend/internal/catalog"
	"github.com/angelmondragon/gestion-backend/internal/inventory"
	"github.com/angelmondragon/gestion-backend/internal/sales"
	"github.com/angelmondragon/gestion-backend/internal/supplierorders"
	"github.com/angelmondragon/gestion-backend/pkg/auth"
	"github.com/angelmondragon/gestion-backend/pkg/config"
	"github.com/angelmondragon/gestion-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/pagination"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withRouteParams(req *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for k, v := range params {
		routeCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func withActor(req *http.Request, actor auth.Actor) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type stubInventoryService struct {
	stock       []inventory.ZoneStock
	warehouses  []inventory.WarehouseStock
	zones       []inventory.ZoneOption
	warehouseID int64
	productID   int64
	err         error
}

func (s *stubInventoryService) ProductStock(_ context.Context, productID int64) ([]inventory.ZoneStock, error) {
	s.productID = productID
	return s.stock, s.err
}

func (s *stubInventoryService) ProductWarehouses(_ context.Context, productID int64) ([]inventory.WarehouseStock, error) {
	s.productID = productID
	return s.warehouses, s.err
}

func (s *stubInventoryService) ListZones(context.Context) ([]inventory.ZoneOption, error) {
	return s.zones, s.err
}

func (s *stubInventoryService) ZonesByWarehouse(_ context.Context, warehouseID int64) ([]inventory.ZoneOption, error) {
	s.warehouseID = warehouseID
	return s.zones, s.err
}

type stubCatalogService struct {
	query   string
	params  pagination.Params
	results []catalog.ProductSummary
	page    *catalog.ProductPage
	price   *catalog.ProductPrice
	err     error
}

func (s *stubCatalogService) Search(_ context.Context, query string) ([]catalog.ProductSummary, error) {
	s.query = query
	return s.results, s.err
}

func (s *stubCatalogService) List(_ context.Context, params pagination.Params) (*catalog.ProductPage, error) {
	s.params = params
	return s.page, s.err
}

func (s *stubCatalogService) Price(context.Context, int64) (*catalog.ProductPrice, error) {
	return s.price, s.err
}

type stubSalesService struct {
	input  sales.CheckoutInput
	result *sales.CheckoutResult
	err    error
}

func (s *stubSalesService) Checkout(_ context.Context, input sales.CheckoutInput) (*sales.CheckoutResult, error) {
	s.input = input
	return s.result, s.err
}

type stubSupplierOrderService struct {
	input  supplierorders.AddItemInput
	result *supplierorders.AddItemResult
	list   *supplierorders.ItemList
	err    error
}

func (s *stubSupplierOrderService) AddItem(_ context.Context, input supplierorders.AddItemInput) (*supplierorders.AddItemResult, error) {
	s.input = input
	return s.result, s.err
}

func (s *stubSupplierOrderService) ListItems(context.Context, int64) (*supplierorders.ItemList, error) {
	return s.list, s.err
}

func TestProductStock(t *testing.T) {
	svc := &stubInventoryService{stock: []inventory.ZoneStock{{ZoneID: 4, ZoneName: "Front (Main)", Stock: 9}}}

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/12/stock", nil), map[string]string{"productId": "12"})
	rec := httptest.NewRecorder()
	ProductStock(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.productID)
	assert.JSONEq(t, `{"status":"success","stock_info":[{"zone_id":4,"zone_name":"Front (Main)","stock":9}]}`, rec.Body.String())
}

func TestProductStockRejectsBadID(t *testing.T) {
	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc/stock", nil), map[string]string{"productId": "abc"})
	rec := httptest.NewRecorder()
	ProductStock(&stubInventoryService{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeBody(t, rec)["status"])
}

func TestProductWarehouses(t *testing.T) {
	svc := &stubInventoryService{warehouses: []inventory.WarehouseStock{{
		ID: 1, Name: "Main",
		Zones: []inventory.ZoneQuantity{{ID: 2, Name: "Front", Stock: 3}},
	}}}

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"productId": "5"})
	rec := httptest.NewRecorder()
	ProductWarehouses(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","warehouses":[{"id":1,"name":"Main","zones":[{"id":2,"name":"Front","stock":3}]}]}`, rec.Body.String())
}

func TestZones(t *testing.T) {
	svc := &stubInventoryService{zones: []inventory.ZoneOption{{ID: 2, Name: "Front"}}}

	rec := httptest.NewRecorder()
	ListZones(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","zones":[{"id":2,"name":"Front"}]}`, rec.Body.String())

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"warehouseId": "8"})
	rec = httptest.NewRecorder()
	WarehouseZones(svc, testLogger()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(8), svc.warehouseID)
}

func TestSearchProductsAcceptsQueryAlias(t *testing.T) {
	svc := &stubCatalogService{results: []catalog.ProductSummary{{ID: 1, Name: "Laptop", SKU: "LP-1", Price: 1000, Stock: 2}}}

	rec := httptest.NewRecorder()
	SearchProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/search?query=%20lap%20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, " lap ", svc.query)
	assert.JSONEq(t, `{"status":"success","products":[{"id":1,"name":"Laptop","sku":"LP-1","price":1000,"stock":2}]}`, rec.Body.String())
}

func TestSearchProductsKeepsRawQuery(t *testing.T) {
	svc := &stubCatalogService{results: []catalog.ProductSummary{}}

	rec := httptest.NewRecorder()
	SearchProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/search?q=%20a", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, " a", svc.query)
}

func TestListProductsPassesPagination(t *testing.T) {
	svc := &stubCatalogService{page: &catalog.ProductPage{Products: []catalog.ProductSummary{}, Count: 0, Page: 2, PageSize: 10}}

	rec := httptest.NewRecorder()
	ListProducts(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&page_size=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pagination.Params{Page: 2, PageSize: 10}, svc.params)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(10), body["page_size"])
	assert.Contains(t, body, "total_pages")
}

func TestListProductsRejectsNonNumericPage(t *testing.T) {
	rec := httptest.NewRecorder()
	ListProducts(&stubCatalogService{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?page=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductPrice(t *testing.T) {
	svc := &stubCatalogService{price: &catalog.ProductPrice{Price: "12.50", Name: "Mouse"}}

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"productId": "3"})
	rec := httptest.NewRecorder()
	ProductPrice(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","price":"12.50","name":"Mouse"}`, rec.Body.String())
}

func TestProductPriceNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"productId": "3"})
	rec := httptest.NewRecorder()
	ProductPrice(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "product not found", body["message"])
}

func TestCheckoutSuccess(t *testing.T) {
	svc := &stubSalesService{result: &sales.CheckoutResult{
		SaleID:  17,
		Total:   decimal.NewFromInt(2000),
		Units:   2,
		Message: "Sale #17 processed successfully. Total: $2,000",
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/checkout", strings.NewReader(`{"client_id":3,"cart":[{"id":1,"quantity":2}]}`))
	req = withActor(req, auth.Actor{UserID: 9, Role: enums.UserRoleSales})
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","message":"Sale #17 processed successfully. Total: $2,000","sale_id":17,"total":"2000.00"}`, rec.Body.String())

	assert.Equal(t, int64(9), svc.input.UserID)
	require.NotNil(t, svc.input.ClientID)
	assert.Equal(t, int64(3), *svc.input.ClientID)
	assert.Equal(t, []sales.CartLine{{ProductID: 1, Quantity: 2}}, svc.input.Cart)
}

func TestCheckoutAggregatedErrors(t *testing.T) {
	msgs := []string{"product with id 5 not found", "no stock of Mouse in the sales zone"}
	svc := &stubSalesService{err: pkgerrors.New(pkgerrors.CodeValidation, strings.Join(msgs, "; ")).WithMessages(msgs)}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/checkout", strings.NewReader(`{"cart":[{"id":5,"quantity":1},{"id":6,"quantity":1}]}`))
	req = withActor(req, auth.Actor{UserID: 9, Role: enums.UserRoleSales})
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, types.StatusError, body.Status)
	assert.Equal(t, msgs, body.Errors)
	assert.Nil(t, svc.input.ClientID)
}

func TestCheckoutMalformedJSON(t *testing.T) {
	svc := &stubSalesService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/checkout", strings.NewReader(`{"cart":[`))
	req = withActor(req, auth.Actor{UserID: 9, Role: enums.UserRoleSales})
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeMalformed), decodeBody(t, rec)["code"])
}

func TestCheckoutRequiresActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/checkout", strings.NewReader(`{"cart":[]}`))
	rec := httptest.NewRecorder()
	Checkout(&stubSalesService{}, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutUntypedErrorReportsServerError(t *testing.T) {
	svc := &stubSalesService{err: io.ErrUnexpectedEOF}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/checkout", strings.NewReader(`{"cart":[{"id":1,"quantity":1}]}`))
	req = withActor(req, auth.Actor{UserID: 9, Role: enums.UserRoleSales})
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server error: unexpected EOF", decodeBody(t, rec)["message"])
}

func TestAddSupplierOrderItem(t *testing.T) {
	item := supplierorders.OrderItem{ID: 1, ProductID: 3, ProductName: "Mouse", Quantity: 5, UnitPrice: "10.00", Subtotal: "50.00"}
	svc := &stubSupplierOrderService{result: &supplierorders.AddItemResult{
		Action:        supplierorders.ActionCreated,
		Message:       "Product Mouse added successfully",
		Item:          item,
		AllItems:      []supplierorders.OrderItem{item},
		TotalItems:    1,
		TotalQuantity: 5,
	}}

	actor := auth.Actor{UserID: 2, Role: enums.UserRoleWarehouse}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/supplier-orders/11/items", strings.NewReader(`{"product_id":3,"quantity":5}`))
	req = withRouteParams(req, map[string]string{"orderId": "11"})
	req = withActor(req, actor)
	rec := httptest.NewRecorder()
	AddSupplierOrderItem(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, supplierorders.AddItemInput{Actor: actor, OrderID: 11, ProductID: 3, Quantity: 5}, svc.input)

	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "created", body["action"])
	assert.Equal(t, float64(5), body["total_quantity"])
	assert.Len(t, body["all_items"], 1)
}

func TestAddSupplierOrderItemForbidden(t *testing.T) {
	svc := &stubSupplierOrderService{err: pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":3,"quantity":5}`))
	req = withRouteParams(req, map[string]string{"orderId": "11"})
	req = withActor(req, auth.Actor{UserID: 2, Role: enums.UserRoleViewer})
	rec := httptest.NewRecorder()
	AddSupplierOrderItem(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddSupplierOrderItemRequiresProduct(t *testing.T) {
	svc := &stubSupplierOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":5}`))
	req = withRouteParams(req, map[string]string{"orderId": "11"})
	req = withActor(req, auth.Actor{UserID: 2, Role: enums.UserRoleAdmin})
	rec := httptest.NewRecorder()
	AddSupplierOrderItem(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), decodeBody(t, rec)["code"])
	assert.Zero(t, svc.input.OrderID)
}

func TestAddSupplierOrderItemDefaultsQuantity(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"omitted", `{"product_id":3}`, 1},
		{"explicit zero", `{"product_id":3,"quantity":0}`, 0},
		{"explicit", `{"product_id":3,"quantity":4}`, 4},
	}
	for _, tt := range tests {
		svc := &stubSupplierOrderService{result: &supplierorders.AddItemResult{Action: supplierorders.ActionCreated}}

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		req = withRouteParams(req, map[string]string{"orderId": "11"})
		req = withActor(req, auth.Actor{UserID: 2, Role: enums.UserRoleAdmin})
		rec := httptest.NewRecorder()
		AddSupplierOrderItem(svc, testLogger()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, tt.name)
		assert.Equal(t, tt.want, svc.input.Quantity, tt.name)
	}
}

func TestListSupplierOrderItems(t *testing.T) {
	svc := &stubSupplierOrderService{list: &supplierorders.ItemList{Items: []supplierorders.OrderItem{}, TotalItems: 0, TotalQuantity: 0}}

	req := withRouteParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"orderId": "11"})
	rec := httptest.NewRecorder()
	ListSupplierOrderItems(svc, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","items":[],"total_items":0,"total_quantity":0}`, rec.Body.String())
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, testLogger(), map[string]Pinger{"db": stubPinger{}, "redis": stubPinger{}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decodeBody(t, rec)["state"])

	rec = httptest.NewRecorder()
	HealthReady(cfg, testLogger(), map[string]Pinger{"redis": stubPinger{err: io.EOF}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthLive(&config.Config{App: config.AppConfig{Env: "dev"}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.JSONEq(t, `{"status":"success","state":"live","env":"dev"}`, rec.Body.String())
}
