package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout attempts by result (ok, empty_cart, not_found, invalid, error).
	CheckoutTotal *prometheus.CounterVec
	// CheckoutOrdersCreated counts orders persisted by successful checkouts.
	CheckoutOrdersCreated prometheus.Counter
	// CheckoutDuration records checkout latency in milliseconds.
	CheckoutDuration prometheus.Histogram
	// RoutingRequestsTotal counts routing provider lookups by result (route, fallback, skipped).
	RoutingRequestsTotal *prometheus.CounterVec
	// PromotionSkippedTotal counts promotions dropped at checkout by reason.
	PromotionSkippedTotal *prometheus.CounterVec
	// LedgerRecomputeTotal counts order total recomputations.
	LedgerRecomputeTotal prometheus.Counter
	// OrderTransitionsTotal counts status changes by machine and target state.
	OrderTransitionsTotal *prometheus.CounterVec
	// EventDeliveriesTotal tracks domain event delivery outcomes.
	EventDeliveriesTotal *prometheus.CounterVec
)

func init() {
	newDomainMetrics("food")
}

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		newDomainMetrics(namespace)
		CheckoutTotal = register(reg, CheckoutTotal)
		CheckoutOrdersCreated = register(reg, CheckoutOrdersCreated)
		CheckoutDuration = register(reg, CheckoutDuration)
		RoutingRequestsTotal = register(reg, RoutingRequestsTotal)
		PromotionSkippedTotal = register(reg, PromotionSkippedTotal)
		LedgerRecomputeTotal = register(reg, LedgerRecomputeTotal)
		OrderTransitionsTotal = register(reg, OrderTransitionsTotal)
		EventDeliveriesTotal = register(reg, EventDeliveriesTotal)
	})
}

// newDomainMetrics builds unregistered collectors. init calls it so packages
// can record metrics in unit tests without a registry.
func newDomainMetrics(namespace string) {
	CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_total",
		Help:      "Count of checkout attempts by outcome.",
	}, []string{"result"})
	CheckoutOrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_orders_created_total",
		Help:      "Number of per-store orders created by checkout.",
	})
	CheckoutDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_ms",
		Help:      "Checkout latency in milliseconds.",
		Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	RoutingRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "routing_requests_total",
		Help:      "Count of shipping distance lookups by source.",
	}, []string{"result"})
	PromotionSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promotion_skipped_total",
		Help:      "Promotions ignored during checkout by reason.",
	}, []string{"reason"})
	LedgerRecomputeTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_recompute_total",
		Help:      "Number of order total recomputations.",
	})
	OrderTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Order and delivery status transitions.",
	}, []string{"machine", "to"})
	EventDeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_deliveries_total",
		Help:      "Count of domain event delivery outcomes.",
	}, []string{"result"})
}
