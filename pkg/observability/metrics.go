package observability

import (
	"strconv"

	"github.com/aretw0/schematic/pkg/entity"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by entity hooks.
type Metrics struct {
	Validations *prometheus.CounterVec
	FieldErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schematic_validations_total",
				Help: "Total number of entity validation passes",
			},
			[]string{"kind", "valid", "trigger"},
		),
		FieldErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schematic_field_errors_total",
				Help: "Total number of failing fields found by validation passes",
			},
			[]string{"kind", "field"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Validations, m.FieldErrors)
	}
	return m
}

// Observe records one validation pass.
func (m *Metrics) Observe(ev *entity.ValidationEvent) {
	m.Validations.WithLabelValues(ev.Kind, strconv.FormatBool(ev.Valid), string(ev.Trigger)).Inc()
	for field := range ev.Errors {
		m.FieldErrors.WithLabelValues(ev.Kind, field).Inc()
	}
}

// Hooks returns entity hooks that feed the collectors.
func (m *Metrics) Hooks() entity.Hooks {
	return entity.Hooks{OnValidate: m.Observe}
}
