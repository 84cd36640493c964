package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveQueryCountsOutcomes(t *testing.T) {
	before := testutil.ToFloat64(queriesTotal.WithLabelValues("recurring_issues", "ok"))
	failedBefore := testutil.ToFloat64(queriesTotal.WithLabelValues("recurring_issues", "error"))

	ObserveQuery("recurring_issues", time.Now(), 1, nil)
	ObserveQuery("recurring_issues", time.Now(), 0, errors.New("down"))

	assert.Equal(t, before+1, testutil.ToFloat64(queriesTotal.WithLabelValues("recurring_issues", "ok")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(queriesTotal.WithLabelValues("recurring_issues", "error")))
}

func TestObserveUpload(t *testing.T) {
	before := testutil.ToFloat64(uploadsTotal.WithLabelValues("ok"))
	ObserveUpload(2048, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(uploadsTotal.WithLabelValues("ok")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	IncHTTPRequest("GET /", "200")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "asset_brain_http_requests_total")
}
