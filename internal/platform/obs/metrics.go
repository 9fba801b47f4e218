package obs

import (
	"solomon-validator/internal/domain"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "solomon_validator"

// Metrics holds the validation collectors exported on /metrics.
type Metrics struct {
	validations   *prometheus.CounterVec
	duration      prometheus.Histogram
	issues        *prometheus.CounterVec
	inputFailures *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		validations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Validated solutions by verdict.",
			},
			[]string{"instance", "verdict"},
		),
		duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Time spent parsing and validating one solution.",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, 1},
			},
		),
		issues: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_total",
				Help:      "Reported violations and warnings by kind.",
			},
			[]string{"kind", "severity"},
		),
		inputFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "input_failures_total",
				Help:      "Validations rejected before checking (missing or unparsable input).",
			},
			[]string{"stage"},
		),
	}
}

// ObserveValidation records a finished validation.
func (m *Metrics) ObserveValidation(instance string, res *domain.ValidationResult, dur time.Duration) {
	if m == nil || res == nil {
		return
	}

	verdict := "invalid"
	if res.Valid() {
		verdict = "valid"
	}
	m.validations.WithLabelValues(instance, verdict).Inc()
	m.duration.Observe(dur.Seconds())

	for _, is := range res.Issues {
		m.issues.WithLabelValues(string(is.Kind), string(is.Severity)).Inc()
	}
}

// ObserveInputFailure records a request rejected at the given stage (instance, solution).
func (m *Metrics) ObserveInputFailure(stage string) {
	if m == nil {
		return
	}
	m.inputFailures.WithLabelValues(stage).Inc()
}
