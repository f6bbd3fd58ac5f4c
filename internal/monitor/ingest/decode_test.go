package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

// recordingSink captures applied records for assertions.
type recordingSink struct {
	vehicles []model.Vehicle
	alerts   []model.Alert
	actions  []model.OperatorAction
	err      error
}

func (r *recordingSink) ApplyVehicle(v model.Vehicle) error {
	if r.err != nil {
		return r.err
	}
	r.vehicles = append(r.vehicles, v)
	return nil
}

func (r *recordingSink) ApplyAlert(a model.Alert) error {
	if r.err != nil {
		return r.err
	}
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recordingSink) ApplyAction(a model.OperatorAction) error {
	if r.err != nil {
		return r.err
	}
	r.actions = append(r.actions, a)
	return nil
}

func TestApplyVehicleUpdated(t *testing.T) {
	sink := &recordingSink{}

	payload := []byte(`{"type":"vehicle_updated","data":{"id":"v1","display_id":"AV-001","state":"ALERTING"}}`)
	require.NoError(t, Apply(sink, payload))

	require.Len(t, sink.vehicles, 1)
	assert.Equal(t, "v1", sink.vehicles[0].ID)
	assert.Equal(t, model.StateAlerting, sink.vehicles[0].State)
}

func TestApplyAlertEvents(t *testing.T) {
	sink := &recordingSink{}

	created := []byte(`{"type":"alert_created","data":{"id":"a1","vehicle_id":"v1","severity":"CRITICAL","status":"OPEN"}}`)
	updated := []byte(`{"type":"alert_updated","data":{"id":"a1","vehicle_id":"v1","severity":"CRITICAL","status":"ACKNOWLEDGED"}}`)
	require.NoError(t, Apply(sink, created))
	require.NoError(t, Apply(sink, updated))

	require.Len(t, sink.alerts, 2)
	assert.Equal(t, model.StatusOpen, sink.alerts[0].Status)
	assert.Equal(t, model.StatusAcknowledged, sink.alerts[1].Status)
}

func TestApplyOperatorAction(t *testing.T) {
	sink := &recordingSink{}

	payload := []byte(`{"type":"operator_action_created","data":{"action_id":"act1","alert_id":"a1","vehicle_id":"v1","action_type":"acknowledge"}}`)
	require.NoError(t, Apply(sink, payload))

	require.Len(t, sink.actions, 1)
	assert.Equal(t, "act1", sink.actions[0].ID)
}

func TestApplyRejectsMalformed(t *testing.T) {
	sink := &recordingSink{}

	tests := []struct {
		name    string
		payload string
	}{
		{"truncated json", `{"type":"vehicle_updated","data"`},
		{"unknown type", `{"type":"vehicle_deleted","data":{}}`},
		{"bad record shape", `{"type":"vehicle_updated","data":[1,2,3]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Apply(sink, []byte(tt.payload)))
		})
	}

	assert.Empty(t, sink.vehicles)
	assert.Empty(t, sink.alerts)
	assert.Empty(t, sink.actions)
}

func TestApplySurfacesSinkError(t *testing.T) {
	sink := &recordingSink{err: assert.AnError}

	payload := []byte(`{"type":"vehicle_updated","data":{"id":"v1"}}`)
	assert.Error(t, Apply(sink, payload))
}
