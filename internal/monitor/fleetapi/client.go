// Package fleetapi is the HTTP client for the upstream fleet service. It
// serves two roles: the bulk fetch of authoritative vehicle/alert state,
// and the alert-lifecycle mutations operators trigger from the dashboard.
package fleetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/pkg/metrics"
)

// ErrUpstream marks failures of the upstream fleet service itself, transport
// errors and non-2xx responses alike, so callers can tell them apart from
// request validation failures.
var ErrUpstream = errors.New("upstream fleet service")

// Actions the upstream accepts on an alert.
const (
	ActionAcknowledge = "acknowledge"
	ActionResolve     = "resolve"
)

// Client talks to the upstream fleet service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the fleet service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchVehicles returns the full current vehicle list.
func (c *Client) FetchVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := c.getJSON(ctx, "/vehicles", &vehicles); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("fetch_vehicles", "failed").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("fetch_vehicles", "success").Inc()
	return vehicles, nil
}

// FetchAlerts returns the full current alert list.
func (c *Client) FetchAlerts(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	if err := c.getJSON(ctx, "/alerts", &alerts); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("fetch_alerts", "failed").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("fetch_alerts", "success").Inc()
	return alerts, nil
}

// FetchActions returns the recorded operator actions.
func (c *Client) FetchActions(ctx context.Context) ([]model.OperatorAction, error) {
	var actions []model.OperatorAction
	if err := c.getJSON(ctx, "/actions", &actions); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("fetch_actions", "failed").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("fetch_actions", "success").Inc()
	return actions, nil
}

// Acknowledge submits an acknowledge action for the alert.
func (c *Client) Acknowledge(ctx context.Context, alertID, operator string) error {
	return c.submitAction(ctx, alertID, ActionAcknowledge, operator)
}

// Resolve submits a resolve action for the alert.
func (c *Client) Resolve(ctx context.Context, alertID, operator string) error {
	return c.submitAction(ctx, alertID, ActionResolve, operator)
}

// actionRequest is the mutation body the upstream expects.
type actionRequest struct {
	ActionType string `json:"action_type"`
	Operator   string `json:"operator,omitempty"`
}

func (c *Client) submitAction(ctx context.Context, alertID, actionType, operator string) error {
	body, err := json.Marshal(actionRequest{ActionType: actionType, Operator: operator})
	if err != nil {
		return fmt.Errorf("encode action request: %w", err)
	}

	path := fmt.Sprintf("/alerts/%s/actions", url.PathEscape(alertID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build action request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(actionType, "failed").Inc()
		return fmt.Errorf("%w: submit %s for alert %s: %v", ErrUpstream, actionType, alertID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(actionType, "failed").Inc()
		return fmt.Errorf("%w: submit %s for alert %s: unexpected status %d", ErrUpstream, actionType, alertID, resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(actionType, "success").Inc()
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: GET %s: unexpected status %d", ErrUpstream, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}
