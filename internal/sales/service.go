package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/gestion-backend/internal/catalog"
	"github.com/angelmondragon/gestion-backend/internal/inventory"
	"github.com/angelmondragon/gestion-backend/pkg/db"
	"github.com/angelmondragon/gestion-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/metrics"
)

const tracerName = "gestion/sales"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service processes point-of-sale checkouts.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
}

type service struct {
	tx       txRunner
	products catalog.Repository
	stock    inventory.Repository
	sales    Repository
	zones    ZoneResolver
	metrics  *metrics.SalesMetrics
	logg     *logger.Logger
	tracer   trace.Tracer
}

// NewService builds the checkout service. metrics and logg may be nil.
func NewService(
	tx txRunner,
	products catalog.Repository,
	stock inventory.Repository,
	sales Repository,
	zones ZoneResolver,
	salesMetrics *metrics.SalesMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if sales == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if zones == nil {
		return nil, fmt.Errorf("zone resolver required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		tx:       tx,
		products: products,
		stock:    stock,
		sales:    sales,
		zones:    zones,
		metrics:  salesMetrics,
		logg:     logg,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

// Checkout validates every cart line against the sales zone, reporting all
// failures together, then commits the sale, its items and the stock
// decrements in one transaction.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (result *CheckoutResult, err error) {
	ctx, span := s.tracer.Start(ctx, "sales.Checkout", trace.WithAttributes(
		attribute.Int64("user.id", input.UserID),
		attribute.Int("cart.lines", len(input.Cart)),
	))
	started := time.Now()
	defer func() {
		s.metrics.ObserveCheckout(resultLabel(err), time.Since(started))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if len(input.Cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	clientID := normalizeClientID(input.ClientID)

	zone, err := s.zones.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("sales.zone_id", zone.ID))

	if err := s.validateCart(ctx, zone.ID, clientID, input.Cart); err != nil {
		return nil, err
	}

	sale := &models.Sale{ClientID: clientID, UserID: input.UserID, TotalAmount: decimal.Zero}
	units := 0
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		salesRepo := s.sales.WithTx(tx)
		products := s.products.WithTx(tx)
		stock := s.stock.WithTx(tx)

		if err := salesRepo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}

		total := decimal.Zero
		for _, line := range input.Cart {
			product, err := products.FindByID(ctx, line.ProductID)
			if err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.Newf(pkgerrors.CodeConflict, "product with id %d was removed during checkout", line.ProductID)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			row, err := stock.FindByProductAndZone(ctx, product.ID, zone.ID)
			if err != nil {
				if db.IsNotFound(err) {
					return pkgerrors.Newf(pkgerrors.CodeConflict, "no stock of %s in the sales zone", product.Name)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
			}

			item := &models.SaleItem{
				SaleID:      sale.ID,
				ProductID:   product.ID,
				Quantity:    line.Quantity,
				PriceAtSale: product.Price(),
			}
			if err := salesRepo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale item")
			}

			ok, err := stock.DecrementIfAvailable(ctx, row.ID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement inventory")
			}
			if !ok {
				return pkgerrors.Newf(pkgerrors.CodeConflict,
					"insufficient stock for %s (id %d) while committing the sale, requested: %d",
					product.Name, product.ID, line.Quantity)
			}

			total = total.Add(item.LineTotal())
			units += line.Quantity
		}

		if err := salesRepo.UpdateTotal(ctx, sale.ID, total); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale total")
		}
		sale.TotalAmount = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AddSale(sale.TotalAmount, units)
	span.SetAttributes(attribute.Int64("sale.id", sale.ID))
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"sale_id": sale.ID,
		"zone_id": zone.ID,
		"total":   sale.TotalAmount.StringFixed(2),
		"units":   units,
	})
	s.logg.Info(logCtx, "sale.processed")

	return &CheckoutResult{
		SaleID:  sale.ID,
		Total:   sale.TotalAmount,
		Units:   units,
		Message: fmt.Sprintf("Sale #%d processed successfully. Total: $%s", sale.ID, formatAmount(sale.TotalAmount)),
	}, nil
}

// validateCart is read-only. It collects one message per failing line.
func (s *service) validateCart(ctx context.Context, zoneID int64, clientID *int64, cart []CartLine) error {
	var problems error

	if clientID != nil {
		ok, err := s.sales.ClientExists(ctx, *clientID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load client")
		}
		if !ok {
			problems = multierr.Append(problems, fmt.Errorf("client with id %d not found", *clientID))
		}
	}

	for _, line := range cart {
		if line.Quantity <= 0 {
			problems = multierr.Append(problems, fmt.Errorf("invalid quantity %d for product with id %d", line.Quantity, line.ProductID))
			continue
		}
		product, err := s.products.FindActiveByID(ctx, line.ProductID)
		if err != nil {
			if !db.IsNotFound(err) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			problems = multierr.Append(problems, fmt.Errorf("product with id %d not found", line.ProductID))
			continue
		}
		row, err := s.stock.FindByProductAndZone(ctx, product.ID, zoneID)
		if err != nil {
			if !db.IsNotFound(err) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
			}
			problems = multierr.Append(problems, fmt.Errorf("no stock of %s in the sales zone", product.Name))
			continue
		}
		if row.Quantity < line.Quantity {
			problems = multierr.Append(problems, fmt.Errorf(
				"insufficient stock for %s (id %d): available: %d, requested: %d",
				product.Name, product.ID, row.Quantity, line.Quantity))
		}
	}

	if agg := pkgerrors.Aggregate(pkgerrors.CodeValidation, problems); agg != nil {
		return agg
	}
	return nil
}

func normalizeClientID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case pkgerrors.IsCode(err, pkgerrors.CodeValidation):
		return metrics.ResultRejected
	case pkgerrors.IsCode(err, pkgerrors.CodeConflict):
		return metrics.ResultConflict
	default:
		return metrics.ResultError
	}
}
