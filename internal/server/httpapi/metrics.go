package httpapi

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the service-level Prometheus metrics exposed on /metrics.
type Collector struct {
	registry       *prometheus.Registry
	httpStatus     *prometheus.CounterVec
	logins         *prometheus.CounterVec
	registrations  *prometheus.CounterVec
	profileUpdates *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usermgmt_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usermgmt_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usermgmt_registrations_total",
			Help: "Registration attempts by result.",
		}, []string{"result"}),
		profileUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "usermgmt_profile_updates_total",
			Help: "Profile updates by result.",
		}, []string{"result"}),
	}

	c.registry.MustRegister(c.httpStatus, c.logins, c.registrations, c.profileUpdates)

	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordRegistration(result string) {
	c.registrations.WithLabelValues(result).Inc()
}

func (c *Collector) RecordProfileUpdate(result string) {
	c.profileUpdates.WithLabelValues(result).Inc()
}

// Handler serves the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware counts every response by status code.
func (c *Collector) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.RecordHTTPStatus(rec.status)
	})
}
