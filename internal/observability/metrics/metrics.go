// Package metrics provides Prometheus instrumentation for dappscope.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	enabled     bool
	serviceName string
	initOnce    sync.Once

	// HTTP metrics
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	// Upstream metrics
	registryLoadTotal *prometheus.CounterVec
	indexerCallTotal  *prometheus.CounterVec
	indexerPages      prometheus.Histogram

	// Exploration metrics
	explorationTotal *prometheus.CounterVec
	exploredDapps    prometheus.Histogram
)

// Init initializes the metrics system. Collectors are registered once per process
// and carry the service name of the first enabled call as a constant "service" label.
func Init(enabledFlag bool, svcName string) {
	enabled = enabledFlag
	serviceName = svcName
	if serviceName == "" {
		serviceName = "dappscope"
	}

	if !enabled {
		return
	}

	initOnce.Do(register)
}

func register() {
	labels := prometheus.Labels{"service": serviceName}

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registryLoadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "registry_load_total",
			Help:        "Total number of registry loads by source",
			ConstLabels: labels,
		},
		[]string{"source", "status"},
	)

	indexerCallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "indexer_call_total",
			Help:        "Total number of transaction indexer calls",
			ConstLabels: labels,
		},
		[]string{"scheme", "status"},
	)

	indexerPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "indexer_pages_per_fetch",
			Help:        "Number of transaction pages read per wallet fetch",
			ConstLabels: labels,
			Buckets:     []float64{1, 2, 3, 4, 6, 8, 12},
		},
	)

	explorationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "exploration_check_total",
			Help:        "Total number of wallet exploration checks",
			ConstLabels: labels,
		},
		[]string{"result"},
	)

	exploredDapps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "exploration_explored_dapps",
			Help:        "Number of explored dApps per successful check",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 5, 10),
		},
	)
}

// Handler returns the Prometheus exposition handler adapted to fasthttp.
func Handler() fasthttp.RequestHandler {
	if !enabled {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}

// Enabled returns whether metrics are enabled.
func Enabled() bool {
	return enabled
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	if !enabled {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordRegistryLoad records a registry load served from "remote" or "cache".
func RecordRegistryLoad(source, status string) {
	if !enabled {
		return
	}
	registryLoadTotal.WithLabelValues(source, status).Inc()
}

// RecordIndexerCall records one HTTP call to the indexer.
func RecordIndexerCall(scheme string, status int) {
	if !enabled {
		return
	}
	indexerCallTotal.WithLabelValues(scheme, strconv.Itoa(status)).Inc()
}

// RecordIndexerPages records how many pages a fetch consumed.
func RecordIndexerPages(pages int) {
	if !enabled {
		return
	}
	indexerPages.Observe(float64(pages))
}

// RecordExploration records the outcome of a wallet check.
func RecordExploration(result string, explored int) {
	if !enabled {
		return
	}
	explorationTotal.WithLabelValues(result).Inc()
	if result == "success" {
		exploredDapps.Observe(float64(explored))
	}
}
