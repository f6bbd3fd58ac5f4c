package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BrokerConnectivityStatus records the monitor's connection to the
	// MQTT broker (1=connected, 0=disconnected).
	BrokerConnectivityStatus = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "afrs_broker_connectivity_status",
			Help: "The connectivity status to the MQTT broker (1=Connected, 0=Disconnected).",
		},
	)

	// EventsReceivedTotal counts stream events accepted by the ingestion
	// boundary, partitioned by event type.
	EventsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afrs_events_received_total",
			Help: "Total number of stream events received, by event type.",
		},
		[]string{"type"},
	)

	// EventsMalformedTotal counts stream events dropped at the ingestion
	// boundary, partitioned by the reason they were dropped.
	EventsMalformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afrs_events_malformed_total",
			Help: "Total number of stream events dropped as malformed, by reason.",
		},
		[]string{"reason"},
	)

	// FleetHealthPercent mirrors the derived fleet-health KPI.
	FleetHealthPercent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "afrs_fleet_health_percent",
			Help: "Percentage of fleet vehicles currently in the NORMAL state.",
		},
	)

	// OpenAlerts tracks the number of OPEN alerts by severity.
	OpenAlerts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "afrs_open_alerts",
			Help: "Number of alerts currently in the OPEN status, by severity.",
		},
		[]string{"severity"},
	)

	// UpstreamRequestsTotal counts bulk-fetch and mutation calls against
	// the upstream fleet API.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "afrs_upstream_requests_total",
			Help: "Total number of upstream fleet API requests, by operation and status.",
		},
		[]string{"operation", "status"},
	)
)

func init() {
	prometheus.MustRegister(BrokerConnectivityStatus)
	prometheus.MustRegister(EventsReceivedTotal)
	prometheus.MustRegister(EventsMalformedTotal)
	prometheus.MustRegister(FleetHealthPercent)
	prometheus.MustRegister(OpenAlerts)
	prometheus.MustRegister(UpstreamRequestsTotal)
}
