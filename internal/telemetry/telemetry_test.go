package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Init_WithoutEndpoint_DisablesTracing(t *testing.T) {
	tracing, err := Init(context.Background(), "teamsync", "")
	require.NoError(t, err)

	assert.False(t, tracing.Enabled())
	assert.NoError(t, tracing.Shutdown(context.Background()))

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	recorder := httptest.NewRecorder()
	tracing.Wrap(handler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

func Test_ExporterOptions_AcceptsUrlsAndBareHosts(t *testing.T) {
	testCases := []struct {
		endpoint      string
		expectedCount int
	}{
		{endpoint: "localhost:4318", expectedCount: 2},
		{endpoint: "collector", expectedCount: 2},
		{endpoint: "http://collector:4318", expectedCount: 2},
		{endpoint: "http://collector:4318/v1/traces", expectedCount: 3},
		{endpoint: "https://otel.example.com/v1/traces", expectedCount: 2},
	}

	for _, tc := range testCases {
		opts, err := exporterOptions(tc.endpoint)

		require.NoError(t, err, tc.endpoint)
		assert.Len(t, opts, tc.expectedCount, tc.endpoint)
	}
}

func Test_ExporterOptions_WithoutHost_ReturnsError(t *testing.T) {
	_, err := exporterOptions("http://")

	assert.Error(t, err)
}
