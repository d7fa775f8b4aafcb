package supplierorders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/angelmondragon/gestion-backend/internal/catalog"
	"github.com/angelmondragon/gestion-backend/pkg/db"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/metrics"
)

const tracerName = "gestion/supplierorders"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the lines of supplier purchase orders.
type Service interface {
	AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error)
	ListItems(ctx context.Context, orderID int64) (*ItemList, error)
}

type service struct {
	tx       txRunner
	orders   Repository
	products catalog.Repository
	metrics  *metrics.SalesMetrics
	logg     *logger.Logger
	tracer   trace.Tracer
}

// NewService builds the supplier order service. metrics and logg may be nil.
func NewService(tx txRunner, orders Repository, products catalog.Repository, salesMetrics *metrics.SalesMetrics, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if orders == nil {
		return nil, fmt.Errorf("supplier order repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		tx:       tx,
		orders:   orders,
		products: products,
		metrics:  salesMetrics,
		logg:     logg,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// AddItem merges quantity into the order's line for the product, creating the
// line when absent. The unit price is refreshed on every call.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (result *AddItemResult, err error) {
	ctx, span := s.tracer.Start(ctx, "supplierorders.AddItem", trace.WithAttributes(
		attribute.Int64("order.id", input.OrderID),
		attribute.Int64("product.id", input.ProductID),
		attribute.Int("quantity", input.Quantity),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !input.Actor.CanManageSupplierOrders() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions to modify supplier orders")
	}

	var (
		action  string
		product *models.Product
		item    *models.SupplierOrderItem
		items   []models.SupplierOrderItem
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		products := s.products.WithTx(tx)

		order, err := orders.FindOrderForUpdate(ctx, input.OrderID)
		if err != nil {
			return notFoundOr(err, "order not found", "load supplier order")
		}
		if !order.Status.IsEditable() {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "cannot modify an order in status %s; only PENDING orders can be changed", order.Status)
		}
		if input.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than 0")
		}

		product, err = products.FindActiveByID(ctx, input.ProductID)
		if err != nil {
			return notFoundOr(err, "product not found", "load product")
		}

		link, err := orders.FindProductSupplier(ctx, product.ID, order.SupplierID)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "product is not supplied by the order's supplier")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product supplier")
		}
		price := unitPrice(link, product)

		item, err = orders.FindItem(ctx, order.ID, product.ID)
		switch {
		case err == nil:
			item.Quantity += input.Quantity
			item.UnitPrice = price
			if err := orders.UpdateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
			}
			action = ActionUpdated
		case db.IsNotFound(err):
			item = &models.SupplierOrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				UnitPrice: price,
			}
			if err := orders.CreateItem(ctx, item); err != nil {
				if db.IsUniqueViolation(err, "") {
					return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order line was added concurrently; retry")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
			}
			action = ActionCreated
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}
		item.Product = product

		items, err = orders.ListItems(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncSupplierItem(action)
	span.SetAttributes(attribute.String("order.item_action", action))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":   input.OrderID,
		"product_id": input.ProductID,
		"action":     action,
		"user_id":    input.Actor.UserID,
	}), "supplier_order.item_upserted")

	list := listFromModels(items)
	return &AddItemResult{
		Action:        action,
		Message:       fmt.Sprintf("Product %s added successfully", product.Name),
		Item:          itemFromModel(*item),
		AllItems:      list.Items,
		TotalItems:    list.TotalItems,
		TotalQuantity: list.TotalQuantity,
	}, nil
}

func (s *service) ListItems(ctx context.Context, orderID int64) (*ItemList, error) {
	if _, err := s.orders.FindOrder(ctx, orderID); err != nil {
		return nil, notFoundOr(err, "order not found", "load supplier order")
	}
	items, err := s.orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}
	list := listFromModels(items)
	return &list, nil
}

// unitPrice prefers the supplier cost, then the product sale price, then zero.
func unitPrice(link *models.ProductSupplier, product *models.Product) decimal.Decimal {
	if link != nil && link.Cost != nil && !link.Cost.IsZero() {
		return *link.Cost
	}
	return product.Price()
}

func notFoundOr(err error, notFound, op string) error {
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
