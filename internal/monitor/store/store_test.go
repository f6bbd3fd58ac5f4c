package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

func vehicle(id string, state model.VehicleState) model.Vehicle {
	return model.Vehicle{
		ID:          id,
		DisplayID:   "AV-" + id,
		Class:       model.ClassAutonomous,
		State:       state,
		LastUpdated: time.Now(),
	}
}

func alert(id, vehicleID string, sev model.Severity) model.Alert {
	now := time.Now()
	return model.Alert{
		ID:        id,
		VehicleID: vehicleID,
		Severity:  sev,
		Status:    model.StatusOpen,
		RuleID:    model.RuleSuddenDeceleration,
		FirstSeen: now,
		LastSeen:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUpsertVehicleInsertsThenReplaces(t *testing.T) {
	s := New(10)

	require.NoError(t, s.UpsertVehicle(vehicle("v1", model.StateNormal)))
	assert.Len(t, s.Vehicles(), 1)

	// Same id replaces wholesale, size unchanged.
	require.NoError(t, s.UpsertVehicle(vehicle("v1", model.StateAlerting)))
	vehicles := s.Vehicles()
	require.Len(t, vehicles, 1)
	assert.Equal(t, "v1", vehicles[0].ID)
	assert.Equal(t, model.StateAlerting, vehicles[0].State)

	// New id grows the collection by one.
	require.NoError(t, s.UpsertVehicle(vehicle("v2", model.StateNormal)))
	assert.Len(t, s.Vehicles(), 2)
}

func TestUpsertIsIdempotent(t *testing.T) {
	s := New(10)

	v := vehicle("v1", model.StateNormal)
	require.NoError(t, s.UpsertVehicle(v))
	require.NoError(t, s.UpsertVehicle(v))

	a := alert("a1", "v1", model.SeverityWarning)
	require.NoError(t, s.UpsertAlert(a))
	require.NoError(t, s.UpsertAlert(a))

	assert.Len(t, s.Vehicles(), 1)
	require.Len(t, s.Alerts(), 1)
	assert.Equal(t, a, s.Alerts()[0])
}

func TestUpsertRejectsMissingID(t *testing.T) {
	s := New(10)

	assert.ErrorIs(t, s.UpsertVehicle(model.Vehicle{}), ErrMissingID)
	assert.ErrorIs(t, s.UpsertAlert(model.Alert{}), ErrMissingID)
	assert.ErrorIs(t, s.UpsertAction(model.OperatorAction{}), ErrMissingID)

	vCount, aCount := s.Counts()
	assert.Zero(t, vCount)
	assert.Zero(t, aCount)
}

func TestLookups(t *testing.T) {
	s := New(10)
	require.NoError(t, s.UpsertVehicle(vehicle("v1", model.StateNormal)))
	require.NoError(t, s.UpsertAlert(alert("a1", "v1", model.SeverityInfo)))

	v, err := s.Vehicle("v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID)

	_, err = s.Vehicle("ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	a, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)

	_, err = s.Alert("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVersionAdvancesAndSubscribersFire(t *testing.T) {
	s := New(10)

	var notified []uint64
	s.Subscribe(func(version uint64) {
		notified = append(notified, version)
	})

	require.NoError(t, s.UpsertVehicle(vehicle("v1", model.StateNormal)))
	require.NoError(t, s.UpsertAlert(alert("a1", "v1", model.SeverityInfo)))
	s.ReplaceAllAlerts(nil)

	assert.Equal(t, []uint64{1, 2, 3}, notified)
	assert.Equal(t, uint64(3), s.Version())
}

func TestReplaceAllSwapsCollection(t *testing.T) {
	s := New(10)
	require.NoError(t, s.UpsertVehicle(vehicle("stale", model.StateNormal)))

	s.ReplaceAllVehicles([]model.Vehicle{
		vehicle("v1", model.StateNormal),
		vehicle("v2", model.StateAlerting),
		{}, // no id, dropped
	})

	vehicles := s.Vehicles()
	require.Len(t, vehicles, 2)
	assert.Equal(t, "v1", vehicles[0].ID)
	assert.Equal(t, "v2", vehicles[1].ID)
}

func TestActionsAreBoundedAndNewestFirst(t *testing.T) {
	s := New(3)

	for _, id := range []string{"ac1", "ac2", "ac3", "ac4"} {
		require.NoError(t, s.UpsertAction(model.OperatorAction{ID: id, AlertID: "a1"}))
	}

	actions := s.Actions()
	require.Len(t, actions, 3)
	assert.Equal(t, "ac4", actions[0].ID)
	assert.Equal(t, "ac2", actions[2].ID)

	// Re-delivery replaces in place instead of growing the list.
	require.NoError(t, s.UpsertAction(model.OperatorAction{ID: "ac4", AlertID: "a2"}))
	actions = s.Actions()
	require.Len(t, actions, 3)
	assert.Equal(t, "a2", actions[0].AlertID)
}
