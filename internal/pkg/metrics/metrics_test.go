package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDispatch(t *testing.T) {
	before := testutil.ToFloat64(dispatches.WithLabelValues(OutcomeNoFreeCourier))

	RecordDispatch(OutcomeNoFreeCourier)

	assert.Equal(t, before+1, testutil.ToFloat64(dispatches.WithLabelValues(OutcomeNoFreeCourier)))
}

func TestRecordCompletion(t *testing.T) {
	before := testutil.ToFloat64(completions)

	RecordCompletion(3 * time.Minute)

	assert.Equal(t, before+1, testutil.ToFloat64(completions))
}

func TestRecordStatisticsCorrections_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(statisticsCorrections)

	RecordStatisticsCorrections(0)
	RecordStatisticsCorrections(2)

	assert.Equal(t, before+2, testutil.ToFloat64(statisticsCorrections))
}

func TestRecordHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))

	RecordHTTPRequest("GET", "", 404)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}
