package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/entries", "/entries"},
		{"/entries/0b6c2c1e", "/entries/:id"},
		{"/entries/0b6c2c1e/timestamp", "/entries/:id/timestamp"},
		{"/status/alcohol", "/status/alcohol"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalPath(tt.in), tt.in)
	}
}

func TestInstrumentHandlerCountsRequests(t *testing.T) {
	h := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/entries/:id", "418"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/entries/abc", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/entries/:id", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordCatalogFetch(t *testing.T) {
	ok := catalogFetches.WithLabelValues("test", "success")
	failed := catalogFetches.WithLabelValues("test", "failure")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordCatalogFetch("test", nil)
	RecordCatalogFetch("test", errors.New("down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordEntryLogged("caffeine")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "drinklog_ledger_entries_logged_total"))
}
