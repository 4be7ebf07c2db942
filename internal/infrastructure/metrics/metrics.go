package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeValidation         = "validation"
	OutcomeDuplicate          = "duplicate"
	OutcomeRoleNotFound       = "role_not_found"
	OutcomeForbidden          = "forbidden"
	OutcomeError              = "error"
)

// Recorder is what usecases and middleware report to.
type Recorder interface {
	RecordLogin(outcome string)
	RecordProvision(outcome string)
	RecordHTTPRequest(method string, statusCode int, duration time.Duration)
}

// Collector is the Prometheus backed Recorder
type Collector struct {
	logins       *prometheus.CounterVec
	provisions   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medrec_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		provisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medrec_account_provisions_total",
			Help: "Account provisioning requests by outcome",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "medrec_http_requests_total",
			Help: "HTTP responses by method and status code",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "medrec_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.logins,
		c.provisions,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordProvision(outcome string) {
	c.provisions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every observation
type Nop struct{}

func (Nop) RecordLogin(string)                           {}
func (Nop) RecordProvision(string)                       {}
func (Nop) RecordHTTPRequest(string, int, time.Duration) {}
