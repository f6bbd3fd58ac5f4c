package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/geo"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
)

func newViews(t *testing.T) (*Views, *store.Store) {
	t.Helper()
	st := store.New(10)
	return NewViews(st, geo.NewProjector(6)), st
}

func TestSnapshotMemoizedUntilStoreChanges(t *testing.T) {
	views, st := newViews(t)

	require.NoError(t, st.UpsertVehicle(model.Vehicle{ID: "v1", State: model.StateNormal}))

	first := views.Snapshot()
	second := views.Snapshot()

	// Same store version: the cached snapshot is returned, timestamp included.
	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Equal(t, 100.0, first.FleetHealthPercent)

	require.NoError(t, st.UpsertVehicle(model.Vehicle{ID: "v2", State: model.StateAlerting}))
	third := views.Snapshot()
	assert.Equal(t, 50.0, third.FleetHealthPercent)
}

func TestHeatTracksStoreVersion(t *testing.T) {
	views, st := newViews(t)

	x, y := 1.0, 2.0
	require.NoError(t, st.UpsertVehicle(model.Vehicle{ID: "v1", X: &x, Y: &y}))
	assert.Empty(t, views.Heat().Features)

	require.NoError(t, st.UpsertAlert(model.Alert{ID: "a1", VehicleID: "v1", Severity: model.SeverityWarning, Status: model.StatusOpen}))
	assert.Len(t, views.Heat().Features, 1)
}

func TestVehiclesJoinProjection(t *testing.T) {
	views, st := newViews(t)

	x, y := 3.0, 4.0
	require.NoError(t, st.UpsertVehicle(model.Vehicle{ID: "v1", X: &x, Y: &y}))
	require.NoError(t, st.UpsertVehicle(model.Vehicle{ID: "v2"}))

	vehicles := views.Vehicles()
	require.Len(t, vehicles, 2)
	assert.NotNil(t, vehicles[0].Projection)
	assert.Nil(t, vehicles[1].Projection)

	assert.InDelta(t, 42.35, views.Center().Lat, 0.1)
}
