package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route query outcomes.
const (
	OutcomeFound         = "found"
	OutcomeUnreachable   = "unreachable"
	OutcomeSameEndpoints = "same_endpoints"
	OutcomeUnknownNode   = "unknown_node"
	OutcomeError         = "error"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Routing metrics
	RouteQueries  *prometheus.CounterVec
	RouteDuration prometheus.Histogram
	RouteLength   prometheus.Histogram

	// Graph metrics
	GraphNodes prometheus.Gauge
	GraphLinks prometheus.Gauge
}

// NewCollector creates a collector with its own registry, so several
// collectors can coexist in one process (tests build one per server).
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RouteQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "route_queries_total",
				Help:      "Total number of shortest path queries by outcome",
			},
			[]string{"outcome"},
		),
		RouteDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "route_query_duration_seconds",
				Help:      "Shortest path computation time in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
		RouteLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "route_distance_meters",
				Help:      "Total walking distance of found routes",
				Buckets:   prometheus.LinearBuckets(0, 50, 12),
			},
		),
		GraphNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Number of locations in the loaded graph",
			},
		),
		GraphLinks: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_links",
				Help:      "Number of undirected connections in the loaded graph",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.RouteQueries,
		c.RouteDuration,
		c.RouteLength,
		c.GraphNodes,
		c.GraphLinks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveRoute records one shortest path query. distance is ignored unless
// the outcome is OutcomeFound.
func (c *Collector) ObserveRoute(outcome string, took time.Duration, distance int) {
	if c == nil {
		return
	}
	c.RouteQueries.WithLabelValues(outcome).Inc()
	c.RouteDuration.Observe(took.Seconds())
	if outcome == OutcomeFound {
		c.RouteLength.Observe(float64(distance))
	}
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route, status string, took time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// SetGraphSize publishes the size of the loaded graph.
func (c *Collector) SetGraphSize(nodes, links int) {
	if c == nil {
		return
	}
	c.GraphNodes.Set(float64(nodes))
	c.GraphLinks.Set(float64(links))
}
