package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/gestion-backend/api/controllers"
	"github.com/angelmondragon/gestion-backend/api/middleware"
	"github.com/angelmondragon/gestion-backend/internal/catalog"
	"github.com/angelmondragon/gestion-backend/internal/inventory"
	"github.com/angelmondragon/gestion-backend/internal/sales"
	"github.com/angelmondragon/gestion-backend/internal/supplierorders"
	"github.com/angelmondragon/gestion-backend/pkg/config"
	"github.com/angelmondragon/gestion-backend/pkg/db"
	"github.com/angelmondragon/gestion-backend/pkg/enums"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/metrics"
	"github.com/angelmondragon/gestion-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	idempotencyStore redis.IdempotencyStore,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	inventoryService inventory.Service,
	catalogService catalog.Service,
	salesService sales.Service,
	supplierOrderService supplierorders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Tracing(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	pingers := map[string]controllers.Pinger{}
	if dbP != nil {
		pingers["db"] = dbP
	}
	if redisP != nil {
		pingers["redis"] = redisP
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/search", controllers.SearchProducts(catalogService, logg))
			r.Get("/{productId}/stock", controllers.ProductStock(inventoryService, logg))
			r.Get("/{productId}/warehouses", controllers.ProductWarehouses(inventoryService, logg))
			r.Get("/{productId}/price", controllers.ProductPrice(catalogService, logg))
		})

		r.Get("/zones", controllers.ListZones(inventoryService, logg))
		r.Get("/warehouses/{warehouseId}/zones", controllers.WarehouseZones(inventoryService, logg))

		r.Post("/sales/checkout", controllers.Checkout(salesService, logg))

		r.Route("/supplier-orders/{orderId}/items", func(r chi.Router) {
			r.Get("/", controllers.ListSupplierOrderItems(supplierOrderService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleAdmin, enums.UserRoleWarehouse)).
				Post("/", controllers.AddSupplierOrderItem(supplierOrderService, logg))
		})
	})

	return r
}
