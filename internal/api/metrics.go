package api

import "github.com/prometheus/client_golang/prometheus"

// Calculation outcomes used as the result label.
const (
	resultOK        = "ok"
	resultInvalid   = "invalid"
	resultMalformed = "malformed"
)

// Metrics bundles the HTTP layer's calculation metrics.
type Metrics struct {
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	CalculationPeriods  prometheus.Histogram
}

// NewMetrics constructs the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interest_calculations_total",
				Help: "Total calculation requests by result",
			},
			[]string{"result"},
		),
		CalculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "interest_calculation_duration_seconds",
			Help:    "Calculation duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		CalculationPeriods: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "interest_calculation_periods",
			Help:    "Number of rate periods per successful calculation",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
	reg.MustRegister(
		m.CalculationsTotal,
		m.CalculationDuration,
		m.CalculationPeriods,
	)
	return m
}
