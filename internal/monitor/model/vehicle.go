package model

import "time"

// VehicleClass distinguishes self-driving units from externally tracked ones.
type VehicleClass string

const (
	ClassAutonomous VehicleClass = "AUTONOMOUS"
	ClassTracked    VehicleClass = "TRACKED"
)

// VehicleState is the operational state reported by the upstream feed.
type VehicleState string

const (
	StateNormal            VehicleState = "NORMAL"
	StateAlerting          VehicleState = "ALERTING"
	StateUnderIntervention VehicleState = "UNDER_INTERVENTION"
)

// Vehicle represents the canonical record for one fleet unit.
// Records arrive as self-describing snapshots keyed by ID; every sighting
// replaces the previous record wholesale.
type Vehicle struct {
	// ID is the stable identifier records are reconciled on.
	ID string `json:"id"`

	// DisplayID is the human-facing identifier shown to operators.
	DisplayID string `json:"display_id"`

	Class VehicleClass `json:"vehicle_class"`
	State VehicleState `json:"state"`

	// AssignedOperator is nil while no operator has taken the vehicle.
	AssignedOperator *string `json:"assigned_operator"`

	// X/Y are the last known planar position in meters, in the scene-local
	// frame the telemetry producer uses. They are jointly nil or jointly set.
	X *float64 `json:"x"`
	Y *float64 `json:"y"`

	// Yaw is the last known heading in radians, if the producer reported one.
	Yaw *float64 `json:"yaw"`

	LastUpdated    time.Time `json:"last_updated"`
	OpenAlertCount int       `json:"open_alert_count"`
}

// HasPosition reports whether the vehicle carries a usable planar position.
// A half-set pair is treated as absent rather than trusted.
func (v *Vehicle) HasPosition() bool {
	return v.X != nil && v.Y != nil
}
