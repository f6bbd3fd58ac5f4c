package kpi

import (
	"context"
	"sync"
	"time"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
)

// SnapshotSource supplies the current snapshot at sampling time.
type SnapshotSource func(now time.Time) Snapshot

// Sampler drives the two rolling chart series on a fixed period. The series
// are independent: one tracks the alert rate, the other mean acknowledgment
// latency.
type Sampler struct {
	period time.Duration
	source SnapshotSource

	mu         sync.Mutex
	alertRate  *RollingSeries
	ackLatency *RollingSeries
}

// NewSampler creates a sampler with both series bounded at capacity.
func NewSampler(period time.Duration, capacity int, source SnapshotSource) *Sampler {
	if period <= 0 {
		period = 5 * time.Second
	}
	return &Sampler{
		period:     period,
		source:     source,
		alertRate:  NewRollingSeries(capacity),
		ackLatency: NewRollingSeries(capacity),
	}
}

// Run samples on the fixed period until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	log.Info("Metrics sampler started", "period", s.period)

	for {
		select {
		case now := <-ticker.C:
			s.Sample(now)
		case <-ctx.Done():
			log.Info("Metrics sampler stopped")
			return nil
		}
	}
}

// Sample appends one point to each series from a snapshot taken at now.
func (s *Sampler) Sample(now time.Time) {
	snap := s.source(now)
	label := now.Format("15:04:05")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.alertRate.Append(ChartPoint{
		Timestamp: now,
		Label:     label,
		Value:     float64(snap.AlertsPerMinute),
	})
	s.ackLatency.Append(ChartPoint{
		Timestamp: now,
		Label:     label,
		Value:     snap.MeanAckLatencySeconds,
	})
}

// AlertRatePoints returns the alert-rate window, oldest first.
func (s *Sampler) AlertRatePoints() []ChartPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alertRate.Points()
}

// AckLatencyPoints returns the acknowledgment-latency window, oldest first.
func (s *Sampler) AckLatencyPoints() []ChartPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ackLatency.Points()
}
