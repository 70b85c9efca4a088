package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	p, err := NewPrometheus()
	require.NoError(t, err)

	p.RunCreated()
	p.RunCreated()
	p.RunRemoved()
	p.Updated("LOOKING")
	p.Updated("LOOKING")
	p.Updated("FREEDOM")

	assert.Equal(t, float64(2), testutil.ToFloat64(p.runsCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.activeRuns))
	assert.Equal(t, float64(2), testutil.ToFloat64(p.updates.WithLabelValues("LOOKING")))

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `explorer_updates_total{state="FREEDOM"} 1`)
	assert.Contains(t, string(body), "explorer_active_runs 1")
}
