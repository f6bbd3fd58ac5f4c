package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

func f64(v float64) *float64 { return &v }

func TestProjectIsDeterministic(t *testing.T) {
	p := NewProjector(6)

	first := p.Project("v1", 12.5, -3.0, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Project("v1", 12.5, -3.0, nil))
	}

	// A different vehicle at the same raw position may land elsewhere,
	// but must itself be stable.
	other := p.Project("v2", 12.5, -3.0, nil)
	assert.Equal(t, other, p.Project("v2", 12.5, -3.0, nil))
}

func TestProjectStaysNearAnchor(t *testing.T) {
	p := NewProjector(6)

	proj := p.Project("v1", 100, 50, nil)
	center := p.DefaultCenter()

	// Corridor spacing plus a 100 m excursion keeps every projection
	// within a fraction of a degree of the anchor.
	assert.InDelta(t, center.Lat, proj.Coordinate.Lat, 0.05)
	assert.InDelta(t, center.Lon, proj.Coordinate.Lon, 0.05)
}

func TestProjectHeadingNormalized(t *testing.T) {
	p := NewProjector(6)

	for _, id := range []string{"v1", "v2", "v3", "v4", "v5", "v6", "v7"} {
		proj := p.Project(id, 0, 0, nil)
		assert.GreaterOrEqual(t, proj.Heading, 0.0)
		assert.Less(t, proj.Heading, 360.0)
	}
}

func TestProjectYawOverridesTangent(t *testing.T) {
	p := NewProjector(1)

	tangent := p.Project("v1", 0, 0, nil)
	yawed := p.Project("v1", 0, 0, f64(1.0))

	assert.Equal(t, tangent.Coordinate, yawed.Coordinate)
	assert.NotEqual(t, tangent.Heading, yawed.Heading)
}

func TestProjectVehicleWithoutPosition(t *testing.T) {
	p := NewProjector(6)

	_, ok := p.ProjectVehicle(model.Vehicle{ID: "v1"})
	assert.False(t, ok)

	// A half-set pair is treated the same as no position.
	_, ok = p.ProjectVehicle(model.Vehicle{ID: "v1", X: f64(3)})
	assert.False(t, ok)

	proj, ok := p.ProjectVehicle(model.Vehicle{ID: "v1", X: f64(3), Y: f64(4)})
	assert.True(t, ok)
	assert.NotZero(t, proj.Coordinate.Lat)
}

func TestCorridorAssignmentSpreads(t *testing.T) {
	p := NewProjector(6)

	seen := make(map[Coordinate]bool)
	for _, id := range []string{"av-1", "av-2", "av-3", "av-4", "av-5", "av-6", "av-7", "av-8", "av-9", "av-10"} {
		seen[p.Project(id, 0, 0, nil).Coordinate] = true
	}

	// Ten hashed ids over six corridors should hit more than one anchor.
	assert.Greater(t, len(seen), 1)
}

func TestBuildHeatFiltersAndWeights(t *testing.T) {
	p := NewProjector(6)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	vehicles := []model.Vehicle{
		{ID: "v1", X: f64(10), Y: f64(20), LastUpdated: now},
		{ID: "v2", LastUpdated: now}, // no position
	}
	alerts := []model.Alert{
		{ID: "a1", VehicleID: "v1", Severity: model.SeverityCritical, Status: model.StatusOpen},
		{ID: "a2", VehicleID: "v1", Severity: model.SeverityWarning, Status: model.StatusResolved},
		{ID: "a3", VehicleID: "v2", Severity: model.SeverityCritical, Status: model.StatusOpen},
		{ID: "a4", VehicleID: "ghost", Severity: model.SeverityInfo, Status: model.StatusOpen},
	}

	fc := BuildHeat(p, alerts, vehicles)
	require.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)

	feat := fc.Features[0]
	assert.Equal(t, "a1", feat.Properties.AlertID)
	assert.Equal(t, 3.0, feat.Properties.Weight)
	assert.Equal(t, model.SeverityCritical, feat.Properties.Severity)
	assert.Equal(t, "Point", feat.Geometry.Type)
}

func TestBuildHeatNeverExceedsOpenAlerts(t *testing.T) {
	p := NewProjector(6)

	vehicles := []model.Vehicle{
		{ID: "v1", X: f64(1), Y: f64(1)},
		{ID: "v2", X: f64(2), Y: f64(2)},
	}
	alerts := []model.Alert{
		{ID: "a1", VehicleID: "v1", Severity: model.SeverityInfo, Status: model.StatusOpen},
		{ID: "a2", VehicleID: "v2", Severity: model.SeverityWarning, Status: model.StatusOpen},
		{ID: "a3", VehicleID: "v1", Severity: model.SeverityCritical, Status: model.StatusAcknowledged},
	}

	fc := BuildHeat(p, alerts, vehicles)
	open := 0
	for _, a := range alerts {
		if a.Status == model.StatusOpen {
			open++
		}
	}
	assert.LessOrEqual(t, len(fc.Features), open)
	assert.Len(t, fc.Features, 2)

	assert.Empty(t, BuildHeat(p, nil, vehicles).Features)
}
