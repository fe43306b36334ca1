// Package metrics expone las métricas Prometheus del servicio sobre un registro propio.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultPrefix prefijo usado cuando METRICS_PREFIX está vacío.
const DefaultPrefix = "stock_api"

// Resultados de geocodificación.
const (
	GeocodeHit  = "cache_hit"
	GeocodeMiss = "cache_miss"
	GeocodeOK   = "resolved"
	GeocodeFail = "failed"
)

// Metrics agrupa los colectores. Un valor nil es válido: todos los Record* son no-op.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuthAttempts        *prometheus.CounterVec
	TenantMissing       prometheus.Counter
	ProductOperations   *prometheus.CounterVec
	GeocodeLookups      *prometheus.CounterVec
}

// New registra los colectores bajo prefix en un registro nuevo (más los de Go y proceso).
func New(prefix string) *Metrics {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		AuthAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Authentication attempts by result",
		}, []string{"result"}),
		TenantMissing: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Protected requests rejected without a tenant identity",
		}),
		ProductOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Catalog operations by type",
		}, []string{"operation"}),
		GeocodeLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_geocode_lookups_total",
			Help: "Geocoding lookups by result",
		}, []string{"result"}),
	}
}

// Registry devuelve el registro para montar /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

// RecordAuthAttempt cuenta un intento de login o de token ("success", "invalid", "expired", "forbidden").
func (m *Metrics) RecordAuthAttempt(result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// RecordTenantMissing cuenta una petición protegida sin identidad.
func (m *Metrics) RecordTenantMissing() {
	if m == nil {
		return
	}
	m.TenantMissing.Inc()
}

// RecordProductOperation cuenta una operación de catálogo exitosa.
func (m *Metrics) RecordProductOperation(op string) {
	if m == nil {
		return
	}
	m.ProductOperations.WithLabelValues(op).Inc()
}

// RecordGeocode cuenta un resultado de geocodificación.
func (m *Metrics) RecordGeocode(result string) {
	if m == nil {
		return
	}
	m.GeocodeLookups.WithLabelValues(result).Inc()
}
