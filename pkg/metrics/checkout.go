package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout and shipping quote outcomes.
type CheckoutMetrics struct {
	submissions *prometheus.CounterVec
	quotes      *prometheus.CounterVec
	cartSize    prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quotes_total",
		Help: "Shipping quote requests by outcome.",
	}, []string{"outcome"})
	cartSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_cart_items",
		Help:    "Number of cart lines at submission time.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
	reg.MustRegister(submissions, quotes, cartSize)
	return &CheckoutMetrics{
		submissions: submissions,
		quotes:      quotes,
		cartSize:    cartSize,
	}
}

// IncSubmission increments the submission counter for the given outcome.
func (c *CheckoutMetrics) IncSubmission(outcome string) {
	if c == nil || c.submissions == nil {
		return
	}
	c.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncQuote increments the shipping quote counter for the given outcome.
func (c *CheckoutMetrics) IncQuote(outcome string) {
	if c == nil || c.quotes == nil {
		return
	}
	c.quotes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveCartSize records how many cart lines a submission carried.
func (c *CheckoutMetrics) ObserveCartSize(lines int) {
	if c == nil || c.cartSize == nil {
		return
	}
	c.cartSize.Observe(float64(lines))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
