package prom

import (
	"github.com/IvanBrykalov/doublecycle/cycle"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cycle.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	removals *prometheus.CounterVec
	entries  prometheus.Gauge
	chains   *prometheus.GaugeVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "next_hits_total",
				Help:        "Next calls that returned an entry, by axis",
				ConstLabels: constLabels,
			},
			[]string{"axis"},
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "next_misses_total",
				Help:        "Next calls on keys without entries, by axis",
				ConstLabels: constLabels,
			},
			[]string{"axis"},
		),
		removals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "removals_total",
				Help:        "Removed entries by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "entries",
			Help:        "Number of stored entries",
			ConstLabels: constLabels,
		}),
		chains: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "chains",
				Help:        "Number of keys per axis",
				ConstLabels: constLabels,
			},
			[]string{"axis"},
		),
	}
	reg.MustRegister(a.hits, a.misses, a.removals, a.entries, a.chains)
	return a
}

// Hit increments the hit counter for the axis.
func (a *Adapter) Hit(axis cycle.Axis) { a.hits.WithLabelValues(axis.String()).Inc() }

// Miss increments the miss counter for the axis.
func (a *Adapter) Miss(axis cycle.Axis) { a.misses.WithLabelValues(axis.String()).Inc() }

// Remove increments the removal counter with a reason label.
func (a *Adapter) Remove(r cycle.RemoveReason) {
	a.removals.WithLabelValues(r.String()).Inc()
}

// Size updates gauges for the number of entries and keys per axis.
func (a *Adapter) Size(entries, kings, queens int) {
	a.entries.Set(float64(entries))
	a.chains.WithLabelValues(cycle.King.String()).Set(float64(kings))
	a.chains.WithLabelValues(cycle.Queen.String()).Set(float64(queens))
}

// Compile-time check: ensure Adapter implements cycle.Metrics.
var _ cycle.Metrics = (*Adapter)(nil)
