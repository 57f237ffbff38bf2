package observability

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	t.Run("Should count requests by route template", func(t *testing.T) {
		before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/v1/workouts/:id", "404"))
		ObserveRequest(http.MethodGet, "/api/v1/workouts/:id", http.StatusNotFound, 5*time.Millisecond)
		after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/v1/workouts/:id", "404"))
		assert.Equal(t, before+1, after)
	})

	t.Run("Should label requests without a route as unmatched", func(t *testing.T) {
		before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
		ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
		assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
	})
}

func TestCascadeCounters(t *testing.T) {
	t.Run("Should ignore zero plan counts", func(t *testing.T) {
		before := testutil.ToFloat64(cascadePulled)
		RecordCascade(0)
		RecordCascade(3)
		assert.Equal(t, before+3, testutil.ToFloat64(cascadePulled))
	})

	t.Run("Should count failures", func(t *testing.T) {
		before := testutil.ToFloat64(cascadeFailures)
		RecordCascadeFailure()
		assert.Equal(t, before+1, testutil.ToFloat64(cascadeFailures))
	})
}
