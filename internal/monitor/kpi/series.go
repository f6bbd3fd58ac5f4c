package kpi

import "time"

// ChartPoint is one sample of a rolling chart series: ephemeral display data,
// never a source of truth.
type ChartPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
}

// RollingSeries is a fixed-capacity, append-only sequence that discards its
// oldest point once capacity is exceeded. Timestamps are monotonic because
// points are only ever appended by the sampler tick.
type RollingSeries struct {
	capacity int
	points   []ChartPoint
}

// NewRollingSeries creates a series bounded at capacity points.
func NewRollingSeries(capacity int) *RollingSeries {
	if capacity <= 0 {
		capacity = 60
	}
	return &RollingSeries{
		capacity: capacity,
		points:   make([]ChartPoint, 0, capacity),
	}
}

// Append adds a point, evicting the oldest when the series is full.
func (r *RollingSeries) Append(p ChartPoint) {
	if len(r.points) == r.capacity {
		copy(r.points, r.points[1:])
		r.points = r.points[:len(r.points)-1]
	}
	r.points = append(r.points, p)
}

// Points returns a copy of the current window, oldest first.
func (r *RollingSeries) Points() []ChartPoint {
	out := make([]ChartPoint, len(r.points))
	copy(out, r.points)
	return out
}

// Len returns the number of points currently held.
func (r *RollingSeries) Len() int {
	return len(r.points)
}
