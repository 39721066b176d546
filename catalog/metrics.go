package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts and times catalog API requests by resource, method and status.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog_admin",
			Subsystem: "catalog_api",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the catalog API",
		}, []string{"resource", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog_admin",
			Subsystem: "catalog_api",
			Name:      "request_duration_seconds",
			Help:      "Duration of catalog API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

// observe is a no-op on a nil receiver so the client works without metrics.
func (m *Metrics) observe(path, method string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	resource := resourceLabel(path)
	status := "transport_error"
	if statusCode != 0 {
		status = strconv.Itoa(statusCode)
	}
	m.RequestsTotal.WithLabelValues(resource, method, status).Inc()
	m.RequestDuration.WithLabelValues(resource, method).Observe(duration.Seconds())
}

// resourceLabel keeps the collection name so ids do not explode cardinality:
// "/brands/12" -> "brands".
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
