package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drafter",
		Name:      "http_requests_total",
		Help:      "Total number of console HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "drafter",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of console HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drafter",
		Name:      "submissions_total",
		Help:      "Draft submissions by outcome",
	}, []string{"outcome"})

	submissionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "drafter",
		Name:      "submission_duration_seconds",
		Help:      "Time spent waiting on the generation service per submission",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	})

	downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drafter",
		Name:      "downloads_total",
		Help:      "Document downloads by outcome",
	}, []string{"outcome"})

	upstreamUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "drafter",
		Name:      "upstream_up",
		Help:      "1 when the last generation service health check succeeded",
	})
)

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request metrics labelled by chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

// ObserveSubmission records one finished submission ("result" or "error")
func ObserveSubmission(outcome string, elapsed time.Duration) {
	submissions.WithLabelValues(outcome).Inc()
	submissionLatency.Observe(elapsed.Seconds())
}

// ObserveDownload records one download attempt ("saved" or "fallback")
func ObserveDownload(outcome string) {
	downloads.WithLabelValues(outcome).Inc()
}

func SetUpstreamUp(up bool) {
	if up {
		upstreamUp.Set(1)
		return
	}
	upstreamUp.Set(0)
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
