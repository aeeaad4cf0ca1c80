// Package metrics exposes Prometheus instrumentation for the HTTP layer, the
// employee store and the session gate.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector methods are safe to call on a nil receiver, which records nothing.
type Collector struct {
	requests              *prometheus.CounterVec
	duration              prometheus.Histogram
	rateLimited           prometheus.Counter
	mutations             *prometheus.CounterVec
	employees             prometheus.Gauge
	employeesByRole       *prometheus.GaugeVec
	employeesByDepartment *prometheus.GaugeVec
	sessionActive         prometheus.Gauge
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "staffdesk_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "staffdesk_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_employee_mutations_total",
			Help: "Employee store mutations by operation.",
		}, []string{"op"}),
		employees: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "staffdesk_employees",
			Help: "Employees currently in the store.",
		}),
		employeesByRole: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "staffdesk_employees_by_role",
			Help: "Employees per role.",
		}, []string{"role"}),
		employeesByDepartment: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "staffdesk_employees_by_department",
			Help: "Employees per department.",
		}, []string{"department"}),
		sessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "staffdesk_session_active",
			Help: "1 when the session gate is authenticated.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.duration,
		c.rateLimited,
		c.mutations,
		c.employees,
		c.employeesByRole,
		c.employeesByDepartment,
		c.sessionActive,
	)
	return c
}

func (c *Collector) Record(method string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.duration.Observe(duration.Seconds())
	if status == http.StatusTooManyRequests {
		c.rateLimited.Inc()
	}
}

func (c *Collector) RecordMutation(op string) {
	if c == nil {
		return
	}
	c.mutations.WithLabelValues(op).Inc()
}

// SetHeadcount replaces the headcount gauges; departments that disappeared are dropped.
func (c *Collector) SetHeadcount(total int, byRole, byDepartment map[string]int) {
	if c == nil {
		return
	}
	c.employees.Set(float64(total))
	c.employeesByRole.Reset()
	for role, count := range byRole {
		c.employeesByRole.WithLabelValues(role).Set(float64(count))
	}
	c.employeesByDepartment.Reset()
	for dept, count := range byDepartment {
		c.employeesByDepartment.WithLabelValues(dept).Set(float64(count))
	}
}

func (c *Collector) SetSessionActive(active bool) {
	if c == nil {
		return
	}
	if active {
		c.sessionActive.Set(1)
		return
	}
	c.sessionActive.Set(0)
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
