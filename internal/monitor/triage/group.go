// Package triage partitions the live alert set into per-vehicle risk groups
// and ranks the groups so the most urgent vehicle always surfaces first.
package triage

import (
	"sort"
	"time"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

// RiskGroup aggregates every alert belonging to a single vehicle.
type RiskGroup struct {
	// VehicleID is the canonical vehicle identifier the group keys on.
	VehicleID string `json:"vehicle_id"`

	// VehicleDisplayID is the human-facing id of the vehicle, falling back
	// to VehicleID when the vehicle record has not arrived yet.
	VehicleDisplayID string `json:"vehicle_display_id"`

	// VehicleClass is empty when the vehicle record is unknown.
	VehicleClass model.VehicleClass `json:"vehicle_class,omitempty"`

	// HighestSeverity is the maximum severity across the group's members.
	HighestSeverity model.Severity `json:"highest_severity"`

	// AlertCount is the number of member alerts after filtering.
	AlertCount int `json:"alert_count"`

	// OpenCount is the number of members still in the OPEN status.
	OpenCount int `json:"open_count"`

	// RuleNames lists the distinct rule names of the members, de-duplicated
	// and kept in first-appearance order.
	RuleNames []string `json:"rule_names"`

	// Representative is the member with the most recent last_seen. It is
	// the alert shown when the group is rendered collapsed.
	Representative model.Alert `json:"representative"`

	// LastUpdated is the maximum updated_at across the members.
	LastUpdated time.Time `json:"last_updated"`

	// Alerts holds the members in input order.
	Alerts []model.Alert `json:"alerts"`
}

// Group partitions alerts by vehicle id and returns the resulting risk
// groups ranked by highest severity (descending), then representative
// last_seen (most recent first), then vehicle id (ascending) as the final
// tiebreaker so the ordering is fully deterministic.
//
// The filter is applied per alert before grouping: a vehicle whose alerts
// are all filtered out produces no group at all.
func Group(alerts []model.Alert, vehicles []model.Vehicle, f Filter) []RiskGroup {
	index := make(map[string]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		index[v.ID] = v
	}

	byVehicle := make(map[string]*RiskGroup)
	var order []string

	for _, a := range alerts {
		if a.VehicleID == "" {
			continue
		}
		if !f.matches(a, index) {
			continue
		}

		g, ok := byVehicle[a.VehicleID]
		if !ok {
			g = &RiskGroup{
				VehicleID:        a.VehicleID,
				VehicleDisplayID: a.VehicleID,
			}
			if v, found := index[a.VehicleID]; found {
				if v.DisplayID != "" {
					g.VehicleDisplayID = v.DisplayID
				}
				g.VehicleClass = v.Class
			}
			byVehicle[a.VehicleID] = g
			order = append(order, a.VehicleID)
		}

		g.Alerts = append(g.Alerts, a)
		g.AlertCount++
		if a.Status == model.StatusOpen {
			g.OpenCount++
		}
		if a.Severity.Rank() > g.HighestSeverity.Rank() {
			g.HighestSeverity = a.Severity
		}
		if name := a.DisplayRuleName(); !containsString(g.RuleNames, name) {
			g.RuleNames = append(g.RuleNames, name)
		}
		if a.UpdatedAt.After(g.LastUpdated) {
			g.LastUpdated = a.UpdatedAt
		}
		// Strictly-after keeps the earliest arrival as representative on
		// equal timestamps.
		if g.AlertCount == 1 || a.LastSeen.After(g.Representative.LastSeen) {
			g.Representative = a
		}
	}

	groups := make([]RiskGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byVehicle[id])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].HighestSeverity.Rank() != groups[j].HighestSeverity.Rank() {
			return groups[i].HighestSeverity.Rank() > groups[j].HighestSeverity.Rank()
		}
		if !groups[i].Representative.LastSeen.Equal(groups[j].Representative.LastSeen) {
			return groups[i].Representative.LastSeen.After(groups[j].Representative.LastSeen)
		}
		return groups[i].VehicleID < groups[j].VehicleID
	})

	return groups
}

func containsString(set []string, s string) bool {
	for _, c := range set {
		if c == s {
			return true
		}
	}
	return false
}
