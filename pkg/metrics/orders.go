package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics counts placement outcomes and admin review decisions.
type OrderMetrics struct {
	placed        *prometheus.CounterVec
	failures      *prometheus.CounterVec
	coupons       prometheus.Counter
	statusChanges *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on reg. A nil reg yields a no-op recorder.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gocart_orders_placed_total",
		Help: "Orders created, one per store group.",
	}, []string{"payment_method"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gocart_order_placement_failures_total",
		Help: "Placement requests rejected or failed.",
	}, []string{"reason"})
	coupons := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gocart_coupon_applications_total",
		Help: "Orders that received a coupon discount.",
	})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gocart_store_status_changes_total",
		Help: "Admin store status transitions.",
	}, []string{"status"})
	reg.MustRegister(placed, failures, coupons, statusChanges)
	return &OrderMetrics{
		placed:        placed,
		failures:      failures,
		coupons:       coupons,
		statusChanges: statusChanges,
	}
}

func (m *OrderMetrics) IncPlaced(paymentMethod string) {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

func (m *OrderMetrics) IncFailure(reason string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *OrderMetrics) IncCouponApplied() {
	if m == nil || m.coupons == nil {
		return
	}
	m.coupons.Inc()
}

func (m *OrderMetrics) IncStoreStatus(status string) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
