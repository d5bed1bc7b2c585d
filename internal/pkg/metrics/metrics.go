package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smartstay",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smartstay",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Assistance orchestrator metrics
	AssistAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "assist",
		Name:      "provider_attempts_total",
		Help:      "Total provider calls attempted by the assistance chain",
	}, []string{"provider"})

	AssistAnswers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "assist",
		Name:      "answers_total",
		Help:      "Total assistance answers by the provider class that produced them",
	}, []string{"class"})

	AssistProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "smartstay",
		Subsystem: "assist",
		Name:      "provider_duration_seconds",
		Help:      "Latency of individual provider calls",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	}, []string{"provider"})

	// Listing metrics
	RankingRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "listings",
		Name:      "ranking_requests_total",
		Help:      "Total ranked listing requests by record kind and preference",
	}, []string{"kind", "preference"})

	ModerationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "listings",
		Name:      "moderation_rejections_total",
		Help:      "Total user submissions rejected by the moderation gate",
	})

	TranslationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "translate",
		Name:      "requests_total",
		Help:      "Total translation requests by outcome provider",
	}, []string{"provider"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "smartstay",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "smartstay",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
