// Package monitor assembles the fleet monitor: it reconciles the upstream
// event stream with bulk state into an in-memory model and serves the
// derived dashboards over HTTP.
package monitor

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/fleetapi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/ingest"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/kpi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/server"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/view"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
)

// Monitor is the running composition of all monitor components.
type Monitor struct {
	store    *store.Store
	gate     *store.Gate
	views    *view.Views
	sampler  *kpi.Sampler
	fleet    *fleetapi.Client
	consumer *ingest.Consumer
	server   *server.Server

	mu     sync.Mutex
	runCtx context.Context
}

// Run starts the consumer, bootstrap sequence, sampler and HTTP server and
// blocks until ctx is cancelled or one of them fails.
func (m *Monitor) Run(ctx context.Context) error {
	log.Info("Starting afrs-monitor")

	eg, egCtx := errgroup.WithContext(ctx)

	m.mu.Lock()
	m.runCtx = egCtx
	m.mu.Unlock()

	eg.Go(func() error {
		return m.consumer.Start(egCtx)
	})

	eg.Go(func() error {
		// Subscriptions must be active before the bulk fetch starts so any
		// record racing the fetch lands in the gate's buffer.
		select {
		case <-m.consumer.Subscribed():
		case <-egCtx.Done():
			return egCtx.Err()
		}

		if err := m.gate.Bootstrap(egCtx, m.fleet); err != nil {
			// The gate already degraded to stream-only data; not fatal.
			log.Error(err, "Initial bulk fetch failed")
		}
		return nil
	})

	eg.Go(func() error {
		return m.sampler.Run(egCtx)
	})

	eg.Go(func() error {
		return m.server.Run(egCtx)
	})

	err := eg.Wait()
	log.Info("afrs-monitor stopped")
	return err
}

// Acknowledge validates and submits an acknowledge action, then refreshes
// authoritative state from the upstream.
func (m *Monitor) Acknowledge(ctx context.Context, alertID, operator string) error {
	return m.mutate(ctx, alertID, model.StatusAcknowledged, func() error {
		return m.fleet.Acknowledge(ctx, alertID, operator)
	})
}

// Resolve validates and submits a resolve action, then refreshes
// authoritative state from the upstream.
func (m *Monitor) Resolve(ctx context.Context, alertID, operator string) error {
	return m.mutate(ctx, alertID, model.StatusResolved, func() error {
		return m.fleet.Resolve(ctx, alertID, operator)
	})
}

func (m *Monitor) mutate(ctx context.Context, alertID string, target model.AlertStatus, submit func() error) error {
	alert, err := m.store.Alert(alertID)
	if err != nil {
		return err
	}
	if err := model.ValidateTransition(alert.Status, target); err != nil {
		return err
	}

	if err := submit(); err != nil {
		return err
	}

	// Re-fetch authoritative post-mutation state; the stream stays
	// subscribed throughout so the same buffer/replay policy applies. The
	// refresh runs under the monitor's own context, not the request's: an
	// operator client disconnecting must not cancel it mid-flight.
	if err := m.gate.Bootstrap(m.refreshContext(), m.fleet); err != nil {
		return fmt.Errorf("refresh after mutation: %w", err)
	}
	return nil
}

// refreshContext returns the run context, or Background before Run started.
func (m *Monitor) refreshContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runCtx != nil {
		return m.runCtx
	}
	return context.Background()
}
