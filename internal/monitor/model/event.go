package model

import "encoding/json"

// EventType discriminates the self-describing stream envelope.
type EventType string

const (
	EventVehicleUpdated        EventType = "vehicle_updated"
	EventAlertCreated          EventType = "alert_created"
	EventAlertUpdated          EventType = "alert_updated"
	EventOperatorActionCreated EventType = "operator_action_created"
)

// StreamEvent is the wire envelope of the event feed. Data carries a full
// replacement record (never a delta) whose shape depends on Type.
type StreamEvent struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}
