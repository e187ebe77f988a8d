package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_ServesRecordedInstruments(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "credit-schedule-service"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	counter, err := provider.Meter("test").Int64Counter("schedule_rows_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 12)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "schedule_rows_total")
}

func TestInitTracer_RequiresEndpoint(t *testing.T) {
	_, err := InitTracer(context.Background(), TracingConfig{ServiceName: "credit-schedule-service"})
	require.Error(t, err)
}
