package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for the storefront core.
type StorefrontMetrics struct {
	cartMutations    *prometheus.CounterVec
	checkoutOutcomes *prometheus.CounterVec
	catalogLoads     *prometheus.CounterVec
	notifications    *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided
// registerer. A nil registerer yields a no-op instance.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	checkoutOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Checkout outcomes by trigger path.",
	}, []string{"outcome"})
	catalogLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Catalog load attempts by result.",
	}, []string{"result"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Emitted notifications by severity.",
	}, []string{"severity"})
	reg.MustRegister(cartMutations, checkoutOutcomes, catalogLoads, notifications)
	return &StorefrontMetrics{
		cartMutations:    cartMutations,
		checkoutOutcomes: checkoutOutcomes,
		catalogLoads:     catalogLoads,
		notifications:    notifications,
	}
}

// IncCartMutation counts one cart mutation for the named operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckoutOutcome counts one checkout outcome for the named trigger path.
func (m *StorefrontMetrics) IncCheckoutOutcome(outcome string) {
	if m == nil || m.checkoutOutcomes == nil {
		return
	}
	m.checkoutOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCatalogLoad counts one catalog load attempt by result.
func (m *StorefrontMetrics) IncCatalogLoad(result string) {
	if m == nil || m.catalogLoads == nil {
		return
	}
	m.catalogLoads.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncNotification counts one emitted notification by severity.
func (m *StorefrontMetrics) IncNotification(severity string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(severity)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
