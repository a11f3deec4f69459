package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-coat/coat/pkg/errors"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "coat").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for frame and pass durations.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// frameBuckets spans sub-millisecond frames up to badly janked ones.
var frameBuckets = []float64{.0005, .001, .002, .004, .008, .016, .033, .066, .133, .25, .5}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "coat",
		Subsystem: "engine",
		Buckets:   frameBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors updated by an engine. A nil
// *Metrics records nothing.
type Metrics struct {
	framesTotal   prometheus.Counter
	renderedTotal prometheus.Counter
	frameDuration prometheus.Histogram
	passDuration  *prometheus.HistogramVec
	updateRounds  prometheus.Histogram
	inputEvents   prometheus.Counter
	slots         prometheus.Gauge
	reclaimed     prometheus.Counter
	errorsTotal   *prometheus.CounterVec
	panicsTotal   prometheus.Counter
}

// NewMetrics creates and registers the engine collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		framesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Total number of frames run",
			ConstLabels: config.ConstLabels,
		}),

		renderedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rendered_frames_total",
			Help:        "Total number of frames that produced a display list",
			ConstLabels: config.ConstLabels,
		}),

		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frame_duration_seconds",
			Help:        "Frame duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Duration of a single tree pass in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"pass"}),

		updateRounds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "update_rounds",
			Help:        "Update passes run per frame",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16},
		}),

		inputEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "input_events_total",
			Help:        "Total number of platform events offered to the input pass",
			ConstLabels: config.ConstLabels,
		}),

		slots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "arena_slots",
			Help:        "Number of allocated arena slots",
			ConstLabels: config.ConstLabels,
		}),

		reclaimed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reclaimed_nodes_total",
			Help:        "Total number of orphaned nodes reclaimed by sweeps",
			ConstLabels: config.ConstLabels,
		}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of reported runtime errors",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		panicsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "panics_total",
			Help:        "Total number of recovered panics",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeFrame(res FrameResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.framesTotal.Inc()
	if res.Rendered {
		m.renderedTotal.Inc()
	}
	m.frameDuration.Observe(elapsed.Seconds())
	m.updateRounds.Observe(float64(res.UpdateRounds))
	m.inputEvents.Add(float64(res.Sample.Counts.Events))
	m.slots.Set(float64(res.Sample.Counts.Slots))
	if res.Reclaimed > 0 {
		m.reclaimed.Add(float64(res.Reclaimed))
	}
}

func (m *Metrics) observePass(pass string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.passDuration.WithLabelValues(pass).Observe(elapsed.Seconds())
}

// ErrorHandler wraps next so every reported error and panic is also counted.
// A nil next discards after counting.
func (m *Metrics) ErrorHandler(next errors.ErrorHandler) errors.ErrorHandler {
	return &countingHandler{metrics: m, next: next}
}

type countingHandler struct {
	metrics *Metrics
	next    errors.ErrorHandler
}

func (h *countingHandler) HandleError(err *errors.CoatError) {
	if err == nil {
		return
	}
	if h.metrics != nil {
		h.metrics.errorsTotal.WithLabelValues(err.Kind.String()).Inc()
	}
	if h.next != nil {
		h.next.HandleError(err)
	}
}

func (h *countingHandler) HandlePanic(err *errors.PanicError) {
	if err == nil {
		return
	}
	if h.metrics != nil {
		h.metrics.panicsTotal.Inc()
	}
	if h.next != nil {
		h.next.HandlePanic(err)
	}
}
