package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fx"

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	reg            *prom.Registry
	rebuildSeconds prom.Histogram
	rebuilds       *prom.CounterVec
	activeEffects  prom.Gauge
	liveUpdates    *prom.CounterVec
	failures       *prom.CounterVec
	unknown        prom.Counter
}

// NewPrometheusRecorder creates the collectors and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		rebuildSeconds: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "rebuild_duration_seconds",
			Help:      "Duration of effect chain rebuilds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		rebuilds: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuilds_total",
			Help:      "Effect chain rebuilds by result",
		}, []string{"result"}),
		activeEffects: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "active_effects",
			Help:      "Effects in the chain after the last rebuild",
		}),
		liveUpdates: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "live_updates_total",
			Help:      "Parameter updates pushed to active effects without a rebuild",
		}, []string{"effect"}),
		failures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "effect_failures_total",
			Help:      "Failed effect lifecycle calls",
		}, []string{"effect", "op"}),
		unknown: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_effect_updates_total",
			Help:      "Updates naming an unregistered effect",
		}),
	}
	reg.MustRegister(pr.rebuildSeconds, pr.rebuilds, pr.activeEffects, pr.liveUpdates, pr.failures, pr.unknown)
	return pr
}

// Registry returns the registry holding the collectors.
func (pr *PrometheusRecorder) Registry() *prom.Registry { return pr.reg }

// Handler serves the collectors in the Prometheus exposition format.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveRebuild implements Recorder.
func (pr *PrometheusRecorder) ObserveRebuild(d time.Duration, active int, err error) {
	pr.rebuildSeconds.Observe(d.Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	pr.rebuilds.WithLabelValues(result).Inc()
	pr.activeEffects.Set(float64(active))
}

// IncLiveUpdate implements Recorder.
func (pr *PrometheusRecorder) IncLiveUpdate(effect string) {
	pr.liveUpdates.WithLabelValues(effect).Inc()
}

// IncEffectFailure implements Recorder.
func (pr *PrometheusRecorder) IncEffectFailure(effect, op string) {
	pr.failures.WithLabelValues(effect, op).Inc()
}

// IncUnknownEffect implements Recorder.
func (pr *PrometheusRecorder) IncUnknownEffect() {
	pr.unknown.Inc()
}
