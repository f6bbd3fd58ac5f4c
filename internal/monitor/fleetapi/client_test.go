package fleetapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchVehicles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/vehicles", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"v1","display_id":"AV-001","state":"NORMAL"},{"id":"v2","display_id":"AV-002","state":"ALERTING"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	vehicles, err := c.FetchVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "v1", vehicles[0].ID)
	assert.Equal(t, "AV-002", vehicles[1].DisplayID)
}

func TestFetchAlertsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchAlerts(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestSubmitActionBody(t *testing.T) {
	var got actionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/alerts/a1/actions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, c.Acknowledge(context.Background(), "a1", "op-7"))
	assert.Equal(t, ActionAcknowledge, got.ActionType)
	assert.Equal(t, "op-7", got.Operator)

	require.NoError(t, c.Resolve(context.Background(), "a1", ""))
	assert.Equal(t, ActionResolve, got.ActionType)
	assert.Empty(t, got.Operator)
}

func TestSubmitActionRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conflict", http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	err := c.Resolve(context.Background(), "a1", "op-7")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorContains(t, err, "unexpected status 409")
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchVehicles(ctx)
	assert.Error(t, err)
}
