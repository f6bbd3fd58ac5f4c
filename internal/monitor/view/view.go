package view

import (
	"sync"
	"time"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/geo"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/kpi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/triage"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/pkg/metrics"
)

// VehicleView is a vehicle record joined with its map projection. Projection
// is nil when the vehicle has no usable position.
type VehicleView struct {
	model.Vehicle
	Projection *geo.Projection `json:"projection,omitempty"`
}

// Views turns the reconciled store into the derived read models the
// presentation layer consumes. Snapshot and heat collection are memoized on
// the store version: consecutive reads between changes hit the cached value,
// so a burst of change notifications collapses into one recomputation.
type Views struct {
	store     *store.Store
	projector *geo.Projector

	mu           sync.Mutex
	snapVersion  uint64
	snapshot     kpi.Snapshot
	heatVersion  uint64
	heat         geo.FeatureCollection
	haveSnapshot bool
	haveHeat     bool
}

// NewViews creates the derived-view layer over st.
func NewViews(st *store.Store, projector *geo.Projector) *Views {
	return &Views{store: st, projector: projector}
}

// Snapshot computes the current KPI snapshot, reusing the cached one while
// the store version is unchanged. The prometheus fleet gauges are refreshed
// on every recomputation.
func (v *Views) Snapshot() kpi.Snapshot {
	version := v.store.Version()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.haveSnapshot && v.snapVersion == version {
		return v.snapshot
	}

	snap := kpi.Compute(v.store.Vehicles(), v.store.Alerts(), time.Now())
	v.snapshot = snap
	v.snapVersion = version
	v.haveSnapshot = true

	metrics.FleetHealthPercent.Set(snap.FleetHealthPercent)
	for sev, count := range snap.OpenBySeverity {
		metrics.OpenAlerts.WithLabelValues(string(sev)).Set(float64(count))
	}

	return snap
}

// SnapshotAt computes a snapshot for an explicit time, bypassing the cache.
// It is the source the periodic sampler draws from.
func (v *Views) SnapshotAt(now time.Time) kpi.Snapshot {
	return kpi.Compute(v.store.Vehicles(), v.store.Alerts(), now)
}

// Triage computes the filtered, ranked risk groups. Not memoized: the filter
// varies per request and the computation is cheap at fleet scale.
func (v *Views) Triage(f triage.Filter) []triage.RiskGroup {
	return triage.Group(v.store.Alerts(), v.store.Vehicles(), f)
}

// Heat rebuilds the incident density collection, reusing the cached one
// while the store version is unchanged.
func (v *Views) Heat() geo.FeatureCollection {
	version := v.store.Version()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.haveHeat && v.heatVersion == version {
		return v.heat
	}

	v.heat = geo.BuildHeat(v.projector, v.store.Alerts(), v.store.Vehicles())
	v.heatVersion = version
	v.haveHeat = true
	return v.heat
}

// Vehicles returns the reconciled vehicles joined with their projections.
func (v *Views) Vehicles() []VehicleView {
	vehicles := v.store.Vehicles()
	views := make([]VehicleView, 0, len(vehicles))
	for _, veh := range vehicles {
		view := VehicleView{Vehicle: veh}
		if proj, ok := v.projector.ProjectVehicle(veh); ok {
			view.Projection = &proj
		}
		views = append(views, view)
	}
	return views
}

// Center returns the default map center.
func (v *Views) Center() geo.Coordinate {
	return v.projector.DefaultCenter()
}
