package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

type fakeFetcher struct {
	vehicles []model.Vehicle
	alerts   []model.Alert
	err      error

	// onFetch runs inside FetchVehicles, simulating stream records that
	// arrive while the bulk request is in flight.
	onFetch func()
}

func (f *fakeFetcher) FetchVehicles(ctx context.Context) ([]model.Vehicle, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.vehicles, f.err
}

func (f *fakeFetcher) FetchAlerts(ctx context.Context) ([]model.Alert, error) {
	return f.alerts, f.err
}

func TestBootstrapAppliesBulkThenReplaysBuffer(t *testing.T) {
	s := New(10)
	g := NewGate(s)

	fetcher := &fakeFetcher{
		vehicles: []model.Vehicle{vehicle("v1", model.StateNormal), vehicle("v2", model.StateNormal)},
		alerts:   []model.Alert{alert("a1", "v1", model.SeverityInfo)},
		onFetch: func() {
			// Stream records land during the fetch: buffered, not applied.
			assert.NoError(t, g.ApplyVehicle(vehicle("v1", model.StateAlerting)))
			assert.NoError(t, g.ApplyVehicle(vehicle("v3", model.StateNormal)))
			assert.Empty(t, s.Vehicles())
		},
	}

	require.NoError(t, g.Bootstrap(context.Background(), fetcher))
	assert.True(t, g.Ready())

	// v1 exists once, with the buffered (stream) state winning over bulk.
	vehicles := s.Vehicles()
	require.Len(t, vehicles, 3)
	v1, err := s.Vehicle("v1")
	require.NoError(t, err)
	assert.Equal(t, model.StateAlerting, v1.State)

	// The buffered v3 was not dropped even though bulk never mentioned it.
	_, err = s.Vehicle("v3")
	assert.NoError(t, err)

	// After bootstrap the gate forwards live.
	require.NoError(t, g.ApplyVehicle(vehicle("v4", model.StateNormal)))
	assert.Len(t, s.Vehicles(), 4)
}

func TestBootstrapDiscardsResultAfterCancellation(t *testing.T) {
	s := New(10)
	g := NewGate(s)

	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{
		vehicles: []model.Vehicle{vehicle("v1", model.StateNormal)},
		onFetch:  cancel, // teardown races the in-flight fetch
	}

	err := g.Bootstrap(ctx, fetcher)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Vehicles())
	assert.False(t, g.Ready())
}

func TestBootstrapCancellationReleasesGate(t *testing.T) {
	s := New(10)
	g := NewGate(s)

	require.NoError(t, s.UpsertVehicle(vehicle("v1", model.StateNormal)))
	require.NoError(t, g.Bootstrap(context.Background(), &fakeFetcher{
		vehicles: []model.Vehicle{vehicle("v1", model.StateNormal)},
	}))

	// A refresh cancelled mid-fetch, with a stream record racing it.
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{
		vehicles: []model.Vehicle{vehicle("v9", model.StateNormal)},
		onFetch: func() {
			assert.NoError(t, g.ApplyVehicle(vehicle("v2", model.StateAlerting)))
			cancel()
		},
	}
	assert.ErrorIs(t, g.Bootstrap(ctx, fetcher), context.Canceled)

	// The discarded bulk never wrote, but the buffered record replayed and
	// later records flow through: the gate must not stay closed.
	_, err := s.Vehicle("v9")
	assert.ErrorIs(t, err, ErrNotFound)
	v2, err := s.Vehicle("v2")
	require.NoError(t, err)
	assert.Equal(t, model.StateAlerting, v2.State)

	require.NoError(t, g.ApplyVehicle(vehicle("v3", model.StateNormal)))
	assert.Len(t, s.Vehicles(), 3)
}

func TestBootstrapFetchFailureStillOpensGate(t *testing.T) {
	s := New(10)
	g := NewGate(s)

	bulkErr := errors.New("upstream down")
	fetcher := &fakeFetcher{
		err: bulkErr,
		onFetch: func() {
			assert.NoError(t, g.ApplyAlert(alert("a1", "v1", model.SeverityCritical)))
		},
	}

	err := g.Bootstrap(context.Background(), fetcher)
	assert.ErrorIs(t, err, bulkErr)

	// Stream data survives; the dashboard degrades instead of staying empty.
	assert.True(t, g.Ready())
	assert.Len(t, s.Alerts(), 1)
}

func TestGateRejectsMissingIDWhileBuffering(t *testing.T) {
	g := NewGate(New(10))

	assert.ErrorIs(t, g.ApplyVehicle(model.Vehicle{}), ErrMissingID)
	assert.ErrorIs(t, g.ApplyAlert(model.Alert{}), ErrMissingID)
	assert.ErrorIs(t, g.ApplyAction(model.OperatorAction{}), ErrMissingID)
}
