package model

import "time"

// OperatorAction records one operator intervention on an alert, as produced by
// the upstream operator service. The monitor keeps a bounded recent list of
// these for the activity panel; it never creates them itself.
type OperatorAction struct {
	ID        string    `json:"action_id"`
	AlertID   string    `json:"alert_id"`
	VehicleID string    `json:"vehicle_id"`
	Type      string    `json:"action_type"`
	Operator  string    `json:"operator"`
	CreatedAt time.Time `json:"created_at"`
}
