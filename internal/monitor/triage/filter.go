package triage

import (
	"strings"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

// Filter narrows the alert set before grouping, so filtered-out alerts
// neither appear in counts nor influence ranking. Empty fields match all.
type Filter struct {
	// Statuses keeps alerts whose status is in the set.
	Statuses []model.AlertStatus

	// Severities keeps alerts whose severity is in the set.
	Severities []model.Severity

	// Query is a case-insensitive substring matched against the owning
	// vehicle's id and display id.
	Query string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return len(f.Statuses) == 0 && len(f.Severities) == 0 && f.Query == ""
}

func (f Filter) matches(a model.Alert, vehicles map[string]model.Vehicle) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status) {
		return false
	}
	if len(f.Severities) > 0 && !containsSeverity(f.Severities, a.Severity) {
		return false
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if strings.Contains(strings.ToLower(a.VehicleID), q) {
			return true
		}
		if v, ok := vehicles[a.VehicleID]; ok && strings.Contains(strings.ToLower(v.DisplayID), q) {
			return true
		}
		return false
	}

	return true
}

func containsStatus(set []model.AlertStatus, s model.AlertStatus) bool {
	for _, c := range set {
		if c == s {
			return true
		}
	}
	return false
}

func containsSeverity(set []model.Severity, s model.Severity) bool {
	for _, c := range set {
		if c == s {
			return true
		}
	}
	return false
}
