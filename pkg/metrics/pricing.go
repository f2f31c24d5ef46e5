package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// PricingMetrics records engine calculations and configuration persistence.
type PricingMetrics struct {
	calculations *prometheus.CounterVec
	quotes       *prometheus.CounterVec
	quoteLines   prometheus.Histogram
	configSaves  *prometheus.CounterVec
	saveDuration prometheus.Histogram
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_calculations_total",
		Help: "Screening cost calculations by package and volume tier.",
	}, []string{"package", "tier"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Pricing quotes generated by volume tier.",
	}, []string{"tier"})
	quoteLines := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_quote_packages",
		Help:    "Number of packages priced per quote.",
		Buckets: []float64{1, 2, 3, 5, 8},
	})
	configSaves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_configuration_saves_total",
		Help: "Pricing configuration save attempts by outcome.",
	}, []string{"outcome"})
	saveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_configuration_save_duration_seconds",
		Help:    "Duration of pricing configuration saves in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(calculations, quotes, quoteLines, configSaves, saveDuration)
	return &PricingMetrics{
		calculations: calculations,
		quotes:       quotes,
		quoteLines:   quoteLines,
		configSaves:  configSaves,
		saveDuration: saveDuration,
	}
}

// IncCalculation counts one screening cost calculation.
func (m *PricingMetrics) IncCalculation(pkg, tier string) {
	if m == nil || m.calculations == nil {
		return
	}
	m.calculations.WithLabelValues(normalizeLabel(pkg), normalizeLabel(tier)).Inc()
}

// ObserveQuote counts a quote and the number of packages it priced.
func (m *PricingMetrics) ObserveQuote(tier string, packages int) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(tier)).Inc()
	m.quoteLines.Observe(float64(packages))
}

// ObserveConfigSave records the outcome and duration of a configuration save.
func (m *PricingMetrics) ObserveConfigSave(ok bool, duration time.Duration) {
	if m == nil || m.configSaves == nil {
		return
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	m.configSaves.WithLabelValues(outcome).Inc()
	m.saveDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
