package observability

import (
	"strconv"

	"asclepius-api/internal/domain/diagnosis"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "asclepius"

// Metrics agrupa los collectors de Prometheus del servicio. Implementa
// diagnosis.Observer.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: route, method, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route, method

	Diagnoses          *prometheus.CounterVec // labels: tier
	ValidationFailures *prometheus.CounterVec // labels: field
	HistoryRecords     prometheus.Gauge
}

// NewMetrics crea los collectors y los registra en reg, junto con los de Go
// y proceso.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route", "method"}),
		Diagnoses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnoses_total",
			Help:      "Classified reports by tier.",
		}, []string{"tier"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected report fields by field name.",
		}, []string{"field"}),
		HistoryRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_records",
			Help:      "Records currently held in the in-memory history.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.Diagnoses,
		m.ValidationFailures,
		m.HistoryRecords,
	)

	// todos los tiers expuestos en cero desde el arranque
	for _, t := range []diagnosis.Tier{diagnosis.TierEmergency, diagnosis.TierSevere, diagnosis.TierModerate, diagnosis.TierMild} {
		m.Diagnoses.WithLabelValues(string(t))
	}

	return m
}

func (m *Metrics) ObserveDiagnosis(tier diagnosis.Tier) {
	m.Diagnoses.WithLabelValues(string(tier)).Inc()
}

func (m *Metrics) ObserveRejected(fields []diagnosis.FieldError) {
	for _, f := range fields {
		m.ValidationFailures.WithLabelValues(f.Field).Inc()
	}
}

func (m *Metrics) ObserveHistorySize(n int) {
	m.HistoryRecords.Set(float64(n))
}

// ObserveHTTP registra un request terminado.
func (m *Metrics) ObserveHTTP(route, method string, status int, seconds float64) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(seconds)
}
