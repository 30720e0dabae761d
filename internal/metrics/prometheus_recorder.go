package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder backed by a private registry, so
// tests and multiple preview servers never trip duplicate registration.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	buildDuration prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	stageResults  *prometheus.CounterVec
	buildOutcomes *prometheus.CounterVec
	pagesRendered prometheus.Counter
}

// NewPrometheusRecorder constructs a recorder with all collectors registered.
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagemill_build_duration_seconds",
			Help:    "Wall-clock duration of complete site builds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pagemill_stage_duration_seconds",
			Help:    "Duration of individual build stages.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"stage"}),
		stageResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagemill_stage_results_total",
			Help: "Stage executions by result.",
		}, []string{"stage", "result"}),
		buildOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagemill_build_outcomes_total",
			Help: "Completed builds by outcome.",
		}, []string{"outcome"}),
		pagesRendered: factory.NewCounter(prometheus.CounterOpts{
			Name: "pagemill_pages_rendered_total",
			Help: "Total pages rendered across builds.",
		}),
	}
}

func (r *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	r.buildDuration.Observe(d.Seconds())
}

func (r *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (r *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	r.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (r *PrometheusRecorder) IncBuildOutcome(outcome string) {
	r.buildOutcomes.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) AddPagesRendered(n int) {
	r.pagesRendered.Add(float64(n))
}

// Handler exposes the recorder's registry for the preview server.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
