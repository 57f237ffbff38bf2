package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_api",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	cascadePulled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "cascade",
		Name:      "plans_modified_total",
		Help:      "Workout plans that had memberships removed after a workout was deleted.",
	})
	cascadeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "cascade",
		Name:      "failures_total",
		Help:      "Workout deletions whose plan cleanup failed after the workout was removed.",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, cascadePulled, cascadeFailures)
}

// ObserveRequest records one served HTTP request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordCascade adds the number of plans cleaned up by a delete.
func RecordCascade(plansModified int64) {
	if plansModified <= 0 {
		return
	}
	cascadePulled.Add(float64(plansModified))
}

// RecordCascadeFailure counts a delete that left dangling plan entries behind.
func RecordCascadeFailure() {
	cascadeFailures.Inc()
}
