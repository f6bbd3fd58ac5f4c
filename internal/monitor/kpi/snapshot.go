// Package kpi derives the fleet dashboard metrics: an instantaneous snapshot
// recomputed on every read, and two bounded rolling series fed by a fixed
// period sampler.
package kpi

import (
	"time"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

// alertRateWindow is the trailing window the alerts-per-minute figure counts over.
const alertRateWindow = 60 * time.Second

// Snapshot is a single point-in-time computation over the reconciled
// collections. It is derived, never stored.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// AlertsPerMinute counts alerts created within the trailing 60 seconds.
	AlertsPerMinute int `json:"alerts_per_minute"`

	// MeanAckLatencySeconds averages updated-minus-created over currently
	// ACKNOWLEDGED alerts carrying both timestamps. Zero when none do.
	MeanAckLatencySeconds float64 `json:"mean_ack_latency_seconds"`

	// FleetHealthPercent is the share of NORMAL vehicles. An empty fleet
	// reports 100: nothing is known to be unhealthy.
	FleetHealthPercent float64 `json:"fleet_health_percent"`

	OpenBySeverity  map[model.Severity]int     `json:"open_by_severity"`
	VehiclesByState map[model.VehicleState]int `json:"vehicles_by_state"`

	TotalVehicles int `json:"total_vehicles"`
	TotalAlerts   int `json:"total_alerts"`
}

// Compute derives a snapshot from the current collections. It is a pure
// function: no internal state, no clock access beyond the supplied now.
func Compute(vehicles []model.Vehicle, alerts []model.Alert, now time.Time) Snapshot {
	snap := Snapshot{
		Timestamp: now,
		OpenBySeverity: map[model.Severity]int{
			model.SeverityInfo:     0,
			model.SeverityWarning:  0,
			model.SeverityCritical: 0,
		},
		VehiclesByState: map[model.VehicleState]int{
			model.StateNormal:            0,
			model.StateAlerting:          0,
			model.StateUnderIntervention: 0,
		},
		TotalVehicles: len(vehicles),
		TotalAlerts:   len(alerts),
	}

	cutoff := now.Add(-alertRateWindow)
	var ackTotal time.Duration
	ackCount := 0

	for _, a := range alerts {
		if a.CreatedAt.After(cutoff) {
			snap.AlertsPerMinute++
		}
		if a.Status == model.StatusOpen {
			snap.OpenBySeverity[a.Severity]++
		}
		if a.Status == model.StatusAcknowledged && !a.CreatedAt.IsZero() && !a.UpdatedAt.IsZero() {
			ackTotal += a.UpdatedAt.Sub(a.CreatedAt)
			ackCount++
		}
	}

	if ackCount > 0 {
		snap.MeanAckLatencySeconds = (ackTotal / time.Duration(ackCount)).Seconds()
	}

	normal := 0
	for _, v := range vehicles {
		snap.VehiclesByState[v.State]++
		if v.State == model.StateNormal {
			normal++
		}
	}

	if len(vehicles) == 0 {
		snap.FleetHealthPercent = 100
	} else {
		snap.FleetHealthPercent = float64(normal) / float64(len(vehicles)) * 100
	}

	return snap
}
