package introspect

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/reactor/reactor"
)

// MetricsConfig configures the Prometheus metrics exposed at /metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactor").
	Namespace string

	// Registry is the Prometheus registry to register against.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithRegistry sets the Prometheus registry to register against.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reactor",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics mirrors reactor.Stats as gauges, plus a gauge for how many nodes
// are currently registered for introspection.
type metrics struct {
	writes      prometheus.Gauge
	recomputes  prometheus.Gauge
	effectRuns  prometheus.Gauge
	drainPasses prometheus.Gauge
	nodeCount   prometheus.Gauge
}

var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		writes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "writes_total",
			Help:      "Total number of Source.Set calls that changed a value.",
		}),
		recomputes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "recomputes_total",
			Help:      "Total number of Derived formula recomputations.",
		}),
		effectRuns: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "effect_runs_total",
			Help:      "Total number of effect callback invocations.",
		}),
		drainPasses: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "drain_passes_total",
			Help:      "Total number of batch drain passes across all batches.",
		}),
		nodeCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "registered_nodes",
			Help:      "Number of nodes currently registered for introspection.",
		}),
	}
}

// registerMetrics initializes the package-global metrics singleton on first
// use. Safe to call repeatedly; only the first call's config takes effect.
func registerMetrics(opts ...MetricsOption) *metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	return globalMetrics
}

// refresh pulls the latest values from reactor.Snapshot() and r's registry
// size into the gauges. Called on every /metrics scrape rather than kept
// live, since the engine itself never pushes updates into this package.
func (m *metrics) refresh(r *Registry) {
	snap := reactor.Snapshot()
	m.writes.Set(float64(snap.Writes))
	m.recomputes.Set(float64(snap.Recomputes))
	m.effectRuns.Set(float64(snap.EffectRuns))
	m.drainPasses.Set(float64(snap.DrainPasses))
	m.nodeCount.Set(float64(r.Len()))
}
