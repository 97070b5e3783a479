// Package metrics counts provider and asset traffic for a session.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess      = "success"
	ResultFailure      = "failure"
	ResultUnauthorized = "unauthorized"
	ResultSkipped      = "skipped"
)

// Metrics holds the counters of one process. A nil *Metrics records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	apiRequests    *prometheus.CounterVec
	tokenRefreshes *prometheus.CounterVec
	coverDownloads *prometheus.CounterVec
}

// New creates the counters on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamenote_api_requests_total",
			Help: "Total number of requests sent to the game database and identity provider.",
		}, []string{"endpoint", "result"}),
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamenote_token_refreshes_total",
			Help: "Total number of access token refreshes.",
		}, []string{"result"}),
		coverDownloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamenote_cover_downloads_total",
			Help: "Total number of cover download attempts.",
		}, []string{"result"}), // result: success, failure, skipped
	}
	m.registry.MustRegister(m.apiRequests, m.tokenRefreshes, m.coverDownloads)
	return m
}

// Registry returns the registry holding the counters.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// APIRequest records one request to endpoint.
func (m *Metrics) APIRequest(endpoint, result string) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(endpoint, result).Inc()
}

// TokenRefresh records one refresh attempt.
func (m *Metrics) TokenRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefreshes.WithLabelValues(result).Inc()
}

// CoverDownload records one cover download attempt.
func (m *Metrics) CoverDownload(result string) {
	if m == nil {
		return
	}
	m.coverDownloads.WithLabelValues(result).Inc()
}

// WriteTextfile writes the counters in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
