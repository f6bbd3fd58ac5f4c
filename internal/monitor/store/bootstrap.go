package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
)

// Applier is the sink the ingestion boundary writes decoded records to.
// It is implemented by the Gate so that records arriving during the initial
// bulk fetch are buffered instead of racing the bulk replacement.
type Applier interface {
	ApplyVehicle(v model.Vehicle) error
	ApplyAlert(a model.Alert) error
	ApplyAction(a model.OperatorAction) error
}

// BulkFetcher is the upstream request/response collaborator used once at
// startup and again after operator mutations.
type BulkFetcher interface {
	FetchVehicles(ctx context.Context) ([]model.Vehicle, error)
	FetchAlerts(ctx context.Context) ([]model.Alert, error)
}

type bufferedKind int

const (
	kindVehicle bufferedKind = iota
	kindAlert
	kindAction
)

// bufferedRecord preserves arrival order across record types so a replay is
// indistinguishable from live delivery.
type bufferedRecord struct {
	kind    bufferedKind
	vehicle model.Vehicle
	alert   model.Alert
	action  model.OperatorAction
}

// Gate sits between the stream consumer and the store and resolves the race
// between the bulk fetch and stream records delivered while it is in flight.
//
// The upstream system documents no ordering guarantee across the
// bulk-fetch/subscribe boundary, so the monitor subscribes first, buffers
// every stream record received before the bulk response, applies the bulk
// replacement, then replays the buffer in arrival order. The replay runs
// after the replacement, so a buffered record wins a tie on id: the stream
// is presumed more current than the bulk snapshot. Buffered records are
// never silently dropped.
type Gate struct {
	store *Store

	mu        sync.Mutex
	buffering bool
	buffer    []bufferedRecord

	ready atomic.Bool
}

var _ Applier = (*Gate)(nil)

// NewGate creates a gate in buffering mode; records pass through to the store
// only after Bootstrap completes (or fails).
func NewGate(s *Store) *Gate {
	return &Gate{store: s, buffering: true}
}

// Ready reports whether the initial bootstrap has completed. Used by the
// readiness endpoint.
func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// ApplyVehicle buffers or forwards one vehicle record.
func (g *Gate) ApplyVehicle(v model.Vehicle) error {
	if v.ID == "" {
		return ErrMissingID
	}

	g.mu.Lock()
	if g.buffering {
		g.buffer = append(g.buffer, bufferedRecord{kind: kindVehicle, vehicle: v})
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	return g.store.UpsertVehicle(v)
}

// ApplyAlert buffers or forwards one alert record.
func (g *Gate) ApplyAlert(a model.Alert) error {
	if a.ID == "" {
		return ErrMissingID
	}

	g.mu.Lock()
	if g.buffering {
		g.buffer = append(g.buffer, bufferedRecord{kind: kindAlert, alert: a})
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	return g.store.UpsertAlert(a)
}

// ApplyAction buffers or forwards one operator action record.
func (g *Gate) ApplyAction(a model.OperatorAction) error {
	if a.ID == "" {
		return ErrMissingID
	}

	g.mu.Lock()
	if g.buffering {
		g.buffer = append(g.buffer, bufferedRecord{kind: kindAction, action: a})
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	return g.store.UpsertAction(a)
}

// Bootstrap performs the bulk fetch and applies it under the buffer/replay
// policy. On fetch failure the gate still opens and replays its buffer, so
// the dashboard degrades to stream-only data instead of staying empty; the
// error is returned for the caller to surface.
//
// A fetch resolving after ctx is cancelled is discarded without touching the
// store, so no partial bulk writes are observable after teardown. The gate is
// released even then: buffered stream records replay and later records flow
// through, so a cancelled refresh leaves the dashboard stale at worst, never
// frozen.
func (g *Gate) Bootstrap(ctx context.Context, fetcher BulkFetcher) error {
	g.mu.Lock()
	g.buffering = true
	g.mu.Unlock()

	var (
		vehicles []model.Vehicle
		alerts   []model.Alert
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if vehicles, err = fetcher.FetchVehicles(egCtx); err != nil {
			return fmt.Errorf("bulk vehicle fetch: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if alerts, err = fetcher.FetchAlerts(egCtx); err != nil {
			return fmt.Errorf("bulk alert fetch: %w", err)
		}
		return nil
	})
	fetchErr := eg.Wait()

	if err := ctx.Err(); err != nil {
		// Cancelled mid-flight: the resolved fetch must not write. The gate
		// still opens and replays, otherwise live records would buffer
		// without bound and the store would never update again.
		g.replay()
		return err
	}

	if fetchErr == nil {
		g.store.ReplaceAllVehicles(vehicles)
		g.store.ReplaceAllAlerts(alerts)
		log.Info("Bulk state applied", "vehicles", len(vehicles), "alerts", len(alerts))
	} else {
		log.Error(fetchErr, "Bulk fetch failed, continuing with stream data only")
	}

	g.replay()
	g.ready.Store(true)

	return fetchErr
}

// replay drains the buffer into the store in arrival order and opens the gate.
func (g *Gate) replay() {
	g.mu.Lock()
	buffered := g.buffer
	g.buffer = nil
	g.buffering = false
	g.mu.Unlock()

	if len(buffered) == 0 {
		return
	}

	for _, rec := range buffered {
		var err error
		switch rec.kind {
		case kindVehicle:
			err = g.store.UpsertVehicle(rec.vehicle)
		case kindAlert:
			err = g.store.UpsertAlert(rec.alert)
		case kindAction:
			err = g.store.UpsertAction(rec.action)
		}
		if err != nil {
			log.Error(err, "Failed to replay buffered record")
		}
	}

	log.Info("Replayed buffered stream records", "count", len(buffered))
}
