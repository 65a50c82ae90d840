package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: ServiceName,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ServiceName,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RenderPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: ServiceName,
		Subsystem: "dashboard",
		Name:      "render_passes_total",
		Help:      "Dashboard render passes by outcome (data or empty).",
	}, []string{"outcome"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: ServiceName,
		Subsystem: "dashboard",
		Name:      "render_duration_seconds",
		Help:      "Time spent filtering and aggregating per render pass.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	})

	ExportedRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: ServiceName,
		Subsystem: "export",
		Name:      "rows_total",
		Help:      "Rows written to CSV exports.",
	})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: ServiceName,
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Transactions held in memory.",
	})

	DatasetLoadSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: ServiceName,
		Subsystem: "dataset",
		Name:      "load_duration_seconds",
		Help:      "Duration of the last workbook load.",
	})
)
