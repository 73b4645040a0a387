package sitekit

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	resultSuccess = "success"
	resultFailed  = "failed"
)

// Metrics records render and collection metrics on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prom.Registry
	renderDuration prom.Histogram
	renders        *prom.CounterVec
	posts          prom.Gauge
	refreshes      *prom.CounterVec
	fetches        *prom.CounterVec
}

// NewMetrics constructs and registers the sitekit metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitekit",
			Name:      "og_render_duration_seconds",
			Help:      "Duration of one OG image render, layout through PNG encoding",
			Buckets:   prom.DefBuckets,
		}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitekit",
			Name:      "og_renders_total",
			Help:      "OG image renders by result",
		}, []string{"result"}),
		posts: prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitekit",
			Name:      "collection_posts",
			Help:      "Published posts in the current collection snapshot",
		}),
		refreshes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitekit",
			Name:      "collection_refresh_total",
			Help:      "Collection enumerations by result",
		}, []string{"result"}),
		fetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitekit",
			Name:      "og_fetches_total",
			Help:      "OG images served by requesting client",
		}, []string{"fetcher"}),
	}
	m.registry.MustRegister(m.renderDuration, m.renders, m.posts, m.refreshes, m.fetches)
	m.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prom.Registry {
	return m.registry
}

func (m *Metrics) renderObserved(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
	m.renders.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) collectionRefreshed(n int, err error) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.posts.Set(float64(n))
	}
}

func (m *Metrics) imageFetched(userAgent string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(Fetcher(userAgent)).Inc()
}

func result(err error) string {
	if err != nil {
		return resultFailed
	}
	return resultSuccess
}
