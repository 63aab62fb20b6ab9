// Package metrics exposes Prometheus counters for account and connection activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devconnect"

var (
	Registry = prometheus.NewRegistry()

	AuthEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Signups, logins and failed logins.",
	}, []string{"event"})

	ConnectionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connection_requests_total",
		Help:      "Connection requests created, by initial status.",
	}, []string{"status"})

	ConnectionReviews = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connection_reviews_total",
		Help:      "Pending connection requests resolved, by outcome.",
	}, []string{"status"})
)

func init() {
	Registry.MustRegister(
		AuthEvents,
		ConnectionRequests,
		ConnectionReviews,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
