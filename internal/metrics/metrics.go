// Package metrics holds the Prometheus collectors for the pricing service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	regionResolutions *prometheus.CounterVec
	catalogFallbacks  *prometheus.CounterVec
	invalidEntries    *prometheus.CounterVec
	checkouts         *prometheus.CounterVec
	webhooks          *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_http_requests_total",
			Help: "Counts HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pricing_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		regionResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_region_resolutions_total",
			Help: "Region resolutions by signal source and resolved region.",
		}, []string{"source", "region"}),
		catalogFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_catalog_fallbacks_total",
			Help: "Regions served the default package catalog.",
		}, []string{"region"}),
		invalidEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_invalid_catalog_entries_total",
			Help: "Catalog entries dropped because they could not be annotated.",
		}, []string{"package"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_checkouts_total",
			Help: "Checkout sessions created by provider and region.",
		}, []string{"provider", "region"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_webhooks_total",
			Help: "Webhook notifications by provider and outcome.",
		}, []string{"provider", "status"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.regionResolutions,
		m.catalogFallbacks,
		m.invalidEntries,
		m.checkouts,
		m.webhooks,
	)
	return m
}

func (m *Metrics) RecordResolution(source, region string) {
	if m == nil {
		return
	}
	m.regionResolutions.WithLabelValues(source, region).Inc()
}

func (m *Metrics) RecordFallback(region string) {
	if m == nil {
		return
	}
	m.catalogFallbacks.WithLabelValues(region).Inc()
}

func (m *Metrics) RecordInvalidEntry(packageID string) {
	if m == nil {
		return
	}
	m.invalidEntries.WithLabelValues(packageID).Inc()
}

func (m *Metrics) RecordCheckout(provider, region string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(provider, region).Inc()
}

func (m *Metrics) RecordWebhook(provider, status string) {
	if m == nil {
		return
	}
	m.webhooks.WithLabelValues(provider, status).Inc()
}

// Middleware records request counts and latency labelled by the matched
// route, so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
