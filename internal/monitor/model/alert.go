package model

import (
	"encoding/json"
	"time"
)

// Severity of an alert. The three values form a strict total order used for
// both filtering and display sort: INFO < WARNING < CRITICAL.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Rank maps a severity onto its position in the strict order.
// Unknown severities rank below INFO so malformed data never outranks real data.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// AlertStatus is the lifecycle status of an alert.
type AlertStatus string

const (
	StatusOpen         AlertStatus = "OPEN"
	StatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	StatusResolved     AlertStatus = "RESOLVED"
)

// Rule identifiers emitted by the upstream anomaly detector.
const (
	RuleSuddenDeceleration    = "sudden_deceleration"
	RulePerceptionInstability = "perception_instability"
	RuleDropoutProxy          = "dropout_proxy"
)

// ruleDisplayNames maps known rule ids onto operator-facing names, for
// records that arrive without a rule_name of their own.
var ruleDisplayNames = map[string]string{
	RuleSuddenDeceleration:    "Sudden Deceleration",
	RulePerceptionInstability: "Perception Instability",
	RuleDropoutProxy:          "Dropout Proxy",
}

// Alert represents the canonical record of one safety alert.
// Like vehicles, alerts are full-replacement snapshots keyed by ID.
type Alert struct {
	// ID is the stable identifier records are reconciled on. Distinct from
	// the human-facing incident code.
	ID string `json:"id"`

	// IncidentCode is the operator-facing code, nil until one is assigned.
	IncidentCode *string `json:"incident_code"`

	VehicleID string      `json:"vehicle_id"`
	Severity  Severity    `json:"severity"`
	Status    AlertStatus `json:"status"`

	// RuleID identifies the detection rule; RuleName is an optional display name.
	RuleID   string `json:"rule_id"`
	RuleName string `json:"rule_name,omitempty"`

	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Evidence is the detector's feature values and thresholds, passed through
	// verbatim for display. The monitor never interprets it.
	Evidence json.RawMessage `json:"evidence,omitempty"`
}

// DisplayRuleName returns the rule display name. Records without one fall
// back to the friendly name for known rule ids, then to the raw id.
func (a *Alert) DisplayRuleName() string {
	if a.RuleName != "" {
		return a.RuleName
	}
	if name, ok := ruleDisplayNames[a.RuleID]; ok {
		return name
	}
	return a.RuleID
}
