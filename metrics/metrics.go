package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/gastro-os/floorplan"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gastro_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gastro_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Salon editor metrics
	PendingCommits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salon_pending_commits",
			Help: "Layout writes issued but not yet finished",
		},
	)

	CommitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_commits_total",
			Help: "Finished layout writes by operation",
		},
		[]string{"op"},
	)

	CommitFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_commit_failures_total",
			Help: "Layout writes that failed and were left optimistic",
		},
		[]string{"op"},
	)

	DragSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_drag_sessions_total",
			Help: "Drag sessions started by kind",
		},
		[]string{"kind"},
	)

	ChangesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_changes_processed_total",
			Help: "Layout change rows drained by the change monitor",
		},
	)
)

// Middleware records request count and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Observer feeds the salon editor metrics.
type Observer struct{}

func (Observer) CommitQueued(string) {
	PendingCommits.Inc()
}

func (Observer) CommitDone(op string, err error) {
	PendingCommits.Dec()
	CommitsTotal.WithLabelValues(op).Inc()
	if err != nil {
		CommitFailures.WithLabelValues(op).Inc()
	}
}

func (Observer) DragStarted(kind floorplan.DragKind) {
	DragSessions.WithLabelValues(string(kind)).Inc()
}
