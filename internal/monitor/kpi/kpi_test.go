package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

func TestComputeEmptyFleetIsHealthy(t *testing.T) {
	snap := Compute(nil, nil, time.Now())

	assert.Equal(t, 100.0, snap.FleetHealthPercent)
	assert.Zero(t, snap.AlertsPerMinute)
	assert.Zero(t, snap.MeanAckLatencySeconds)
	assert.Zero(t, snap.TotalVehicles)
}

func TestComputeAlertRateCountsTrailingMinute(t *testing.T) {
	now := time.Now()
	alerts := []model.Alert{
		{ID: "a1", VehicleID: "v1", Severity: model.SeverityWarning, Status: model.StatusOpen, CreatedAt: now.Add(-5 * time.Second)},
		{ID: "a2", VehicleID: "v1", Severity: model.SeverityWarning, Status: model.StatusOpen, CreatedAt: now.Add(-15 * time.Second)},
		{ID: "a3", VehicleID: "v2", Severity: model.SeverityInfo, Status: model.StatusOpen, CreatedAt: now.Add(-2 * time.Minute)},
	}

	snap := Compute(nil, alerts, now)
	assert.Equal(t, 2, snap.AlertsPerMinute)
}

func TestComputeFleetHealthAndStateCounts(t *testing.T) {
	vehicles := []model.Vehicle{
		{ID: "v1", State: model.StateNormal},
		{ID: "v2", State: model.StateNormal},
		{ID: "v3", State: model.StateAlerting},
		{ID: "v4", State: model.StateUnderIntervention},
	}

	snap := Compute(vehicles, nil, time.Now())

	assert.Equal(t, 50.0, snap.FleetHealthPercent)
	assert.Equal(t, 2, snap.VehiclesByState[model.StateNormal])
	assert.Equal(t, 1, snap.VehiclesByState[model.StateAlerting])
	assert.Equal(t, 1, snap.VehiclesByState[model.StateUnderIntervention])
}

func TestComputeAckLatency(t *testing.T) {
	now := time.Now()
	created := now.Add(-time.Minute)

	alerts := []model.Alert{
		// 10s and 30s latency -> mean 20s.
		{ID: "a1", Status: model.StatusAcknowledged, CreatedAt: created, UpdatedAt: created.Add(10 * time.Second)},
		{ID: "a2", Status: model.StatusAcknowledged, CreatedAt: created, UpdatedAt: created.Add(30 * time.Second)},
		// Resolved alerts do not count.
		{ID: "a3", Status: model.StatusResolved, CreatedAt: created, UpdatedAt: created.Add(5 * time.Second)},
		// Acknowledged without timestamps does not count.
		{ID: "a4", Status: model.StatusAcknowledged},
	}

	snap := Compute(nil, alerts, now)
	assert.InDelta(t, 20.0, snap.MeanAckLatencySeconds, 1e-9)
}

func TestComputeAckLatencyZeroWhenNone(t *testing.T) {
	snap := Compute(nil, []model.Alert{
		{ID: "a1", Status: model.StatusOpen, CreatedAt: time.Now()},
	}, time.Now())

	// Zero, never NaN.
	assert.Equal(t, 0.0, snap.MeanAckLatencySeconds)
}

func TestComputeOpenBySeverity(t *testing.T) {
	alerts := []model.Alert{
		{ID: "a1", Severity: model.SeverityCritical, Status: model.StatusOpen},
		{ID: "a2", Severity: model.SeverityCritical, Status: model.StatusOpen},
		{ID: "a3", Severity: model.SeverityWarning, Status: model.StatusOpen},
		{ID: "a4", Severity: model.SeverityCritical, Status: model.StatusResolved},
	}

	snap := Compute(nil, alerts, time.Now())

	assert.Equal(t, 2, snap.OpenBySeverity[model.SeverityCritical])
	assert.Equal(t, 1, snap.OpenBySeverity[model.SeverityWarning])
	assert.Equal(t, 0, snap.OpenBySeverity[model.SeverityInfo])
}

func TestRollingSeriesBound(t *testing.T) {
	series := NewRollingSeries(60)
	start := time.Now()

	for i := 0; i < 75; i++ {
		series.Append(ChartPoint{Timestamp: start.Add(time.Duration(i) * time.Second), Value: float64(i)})
	}

	points := series.Points()
	require.Len(t, points, 60)

	// First entry is the 60th-most-recent sample, never older.
	assert.Equal(t, 15.0, points[0].Value)
	assert.Equal(t, 74.0, points[59].Value)

	// Monotonic timestamps.
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i].Timestamp.After(points[i-1].Timestamp))
	}
}

func TestSamplerFeedsBothSeries(t *testing.T) {
	source := func(now time.Time) Snapshot {
		return Snapshot{AlertsPerMinute: 3, MeanAckLatencySeconds: 1.5}
	}
	s := NewSampler(5*time.Second, 60, source)

	now := time.Now()
	s.Sample(now)
	s.Sample(now.Add(5 * time.Second))

	rate := s.AlertRatePoints()
	latency := s.AckLatencyPoints()
	require.Len(t, rate, 2)
	require.Len(t, latency, 2)
	assert.Equal(t, 3.0, rate[1].Value)
	assert.Equal(t, 1.5, latency[1].Value)
}
