package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.APIRequest("games", ResultSuccess)
	m.APIRequest("games", ResultUnauthorized)
	m.APIRequest("games", ResultSuccess)
	m.TokenRefresh(ResultSuccess)
	m.CoverDownload(ResultSkipped)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.apiRequests.WithLabelValues("games", ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.apiRequests.WithLabelValues("games", ResultUnauthorized)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.tokenRefreshes.WithLabelValues(ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.coverDownloads.WithLabelValues(ResultSkipped)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.APIRequest("games", ResultSuccess)
		m.TokenRefresh(ResultFailure)
		m.CoverDownload(ResultFailure)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "gamenote.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.TokenRefresh(ResultSuccess)

	path := filepath.Join(t.TempDir(), "gamenote.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gamenote_token_refreshes_total{result="success"} 1`)
}
