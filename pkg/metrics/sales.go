package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// SalesMetrics records point-of-sale and purchasing activity.
type SalesMetrics struct {
	checkouts     *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	amount        prometheus.Counter
	unitsSold     prometheus.Counter
	supplierItems *prometheus.CounterVec
}

// NewSalesMetrics registers the sales metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_checkouts_total",
		Help: "Checkout attempts by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_checkout_duration_seconds",
		Help:    "Duration of checkout processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	amount := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_amount_total",
		Help: "Sum of committed sale totals.",
	})
	unitsSold := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_units_sold_total",
		Help: "Units removed from the sales zone by committed sales.",
	})
	supplierItems := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supplier_order_items_total",
		Help: "Supplier order line upserts by action.",
	}, []string{"action"})
	reg.MustRegister(checkouts, duration, amount, unitsSold, supplierItems)
	return &SalesMetrics{
		checkouts:     checkouts,
		duration:      duration,
		amount:        amount,
		unitsSold:     unitsSold,
		supplierItems: supplierItems,
	}
}

// ObserveCheckout records one checkout attempt.
func (m *SalesMetrics) ObserveCheckout(result string, duration time.Duration) {
	if m == nil || m.checkouts == nil {
		return
	}
	result = normalizeLabel(result)
	m.checkouts.WithLabelValues(result).Inc()
	m.duration.WithLabelValues(result).Observe(duration.Seconds())
}

// AddSale accumulates the committed total and unit count of a sale.
func (m *SalesMetrics) AddSale(total decimal.Decimal, units int) {
	if m == nil || m.amount == nil {
		return
	}
	if total.IsPositive() {
		m.amount.Add(total.InexactFloat64())
	}
	if units > 0 {
		m.unitsSold.Add(float64(units))
	}
}

// IncSupplierItem counts a supplier order line upsert.
func (m *SalesMetrics) IncSupplierItem(action string) {
	if m == nil || m.supplierItems == nil {
		return
	}
	m.supplierItems.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
