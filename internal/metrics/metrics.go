// Package metrics exposes Prometheus metrics for the tripsplit server.
//
// Every recording method is safe to call on a nil *Metrics, so services and
// tests can run without a registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripsplit"

// Metrics holds the server's collectors.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	settlements     prometheus.Counter
	partialArchives prometheus.Counter
	bridgeExpenses  prometheus.Counter
	outstanding     prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlements archived.",
		}),
		partialArchives: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_archive_failures_total",
			Help:      "Settlements archived with expenses left undeleted.",
		}),
		bridgeExpenses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_expenses_total",
			Help:      "Expenses created from bought inventory items.",
		}),
		outstanding: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_expense_rupiah",
			Help:      "Sum of live (unsettled) expenses at the last digest.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// SettlementArchived counts a settlement. partial marks one whose deletes
// did not all succeed.
func (m *Metrics) SettlementArchived(partial bool) {
	if m == nil {
		return
	}
	m.settlements.Inc()
	if partial {
		m.partialArchives.Inc()
	}
}

// InventoryExpenseCreated counts an expense created by the inventory bridge.
func (m *Metrics) InventoryExpenseCreated() {
	if m == nil {
		return
	}
	m.bridgeExpenses.Inc()
}

// SetOutstanding records the current unsettled total.
func (m *Metrics) SetOutstanding(total int64) {
	if m == nil {
		return
	}
	m.outstanding.Set(float64(total))
}
