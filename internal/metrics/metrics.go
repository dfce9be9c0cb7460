// Package metrics provides Prometheus instrumentation for the city
// lookup, population ratio and registration paths.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeFound     = "found"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
	OutcomeOK        = "ok"
	OutcomeUndefined = "undefined"
	OutcomeInvalid   = "invalid"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics tracks lookup/ratio/registration outcomes and durations.
//
// All methods are safe on a nil *Metrics so services can run without
// instrumentation (CLI, tests).
type Metrics struct {
	Registry *prometheus.Registry

	CityLookups        *prometheus.CounterVec
	CityLookupDuration prometheus.Histogram
	RatioComputations  *prometheus.CounterVec
	CityRegistrations  *prometheus.CounterVec
	RegisterDuration   prometheus.Histogram
}

// New creates a Metrics instance on its own registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		CityLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "world_city_lookups_total",
			Help: "City lookups by name, partitioned by outcome",
		}, []string{"outcome"}),
		CityLookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "world_city_lookup_duration_seconds",
			Help:    "Duration of city lookups by name",
			Buckets: durationBuckets,
		}),
		RatioComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "world_population_ratio_computations_total",
			Help: "Population ratio computations, partitioned by outcome",
		}, []string{"outcome"}),
		CityRegistrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "world_city_registrations_total",
			Help: "City registrations, partitioned by outcome",
		}, []string{"outcome"}),
		RegisterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "world_city_register_duration_seconds",
			Help:    "Duration of city registrations",
			Buckets: durationBuckets,
		}),
	}
}

// ObserveLookup records a lookup that started at start.
func (m *Metrics) ObserveLookup(start time.Time, outcome string) {
	if m == nil {
		return
	}
	m.CityLookups.WithLabelValues(outcome).Inc()
	m.CityLookupDuration.Observe(time.Since(start).Seconds())
}

// IncrementRatio records a ratio computation outcome.
func (m *Metrics) IncrementRatio(outcome string) {
	if m == nil {
		return
	}
	m.RatioComputations.WithLabelValues(outcome).Inc()
}

// ObserveRegister records a registration that started at start.
func (m *Metrics) ObserveRegister(start time.Time, outcome string) {
	if m == nil {
		return
	}
	m.CityRegistrations.WithLabelValues(outcome).Inc()
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
