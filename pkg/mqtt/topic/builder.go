package topic

import (
	"fmt"
)

// Constants defining the standard topic segments.
// These act as the protocol contract between the upstream event producers and
// the monitor. Changing these values breaks compatibility with deployed feeds.
const (
	// SuffixVehicle carries full vehicle snapshot records.
	// Structure: {root}/vehicle/{vehicleID}
	SuffixVehicle = "vehicle"

	// SuffixAlert carries full alert snapshot records (created and updated).
	// Structure: {root}/alert/{vehicleID}
	SuffixAlert = "alert"

	// SuffixAction carries operator action records.
	// Structure: {root}/action/{vehicleID}
	SuffixAction = "action"
)

// Builder encapsulates the logic for constructing MQTT topic strings.
// It keeps topic layout knowledge in one place.
type Builder struct {
	// root is the base namespace for all topics (e.g., "afrs/v1").
	root string
}

// NewBuilder creates a new Builder with the specified root namespace.
func NewBuilder(root string) *Builder {
	return &Builder{root: root}
}

// Vehicle returns the topic a producer publishes vehicle snapshots on.
func (b *Builder) Vehicle(vehicleID string) string {
	return b.build(SuffixVehicle, vehicleID)
}

// VehicleWildcard returns the filter the monitor subscribes to for ALL vehicles.
// Result: {root}/vehicle/+
func (b *Builder) VehicleWildcard() string {
	return b.build(SuffixVehicle, "+")
}

// Alert returns the topic a producer publishes alert snapshots on.
func (b *Builder) Alert(vehicleID string) string {
	return b.build(SuffixAlert, vehicleID)
}

// AlertWildcard returns the filter the monitor subscribes to for ALL alerts.
// Result: {root}/alert/+
func (b *Builder) AlertWildcard() string {
	return b.build(SuffixAlert, "+")
}

// Action returns the topic a producer publishes operator actions on.
func (b *Builder) Action(vehicleID string) string {
	return b.build(SuffixAction, vehicleID)
}

// ActionWildcard returns the filter the monitor subscribes to for ALL actions.
// Result: {root}/action/+
func (b *Builder) ActionWildcard() string {
	return b.build(SuffixAction, "+")
}

// build is a private helper to construct the final topic string.
// Pattern: {root}/{suffix}/{identifier}
func (b *Builder) build(suffix, id string) string {
	return fmt.Sprintf("%s/%s/%s", b.root, suffix, id)
}
