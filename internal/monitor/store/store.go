// Package store holds the canonical reconciled collections of vehicles,
// alerts and operator actions. It is the single source of truth every derived
// view (metrics, triage, heatmap) reads from.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

var (
	// ErrMissingID is returned for records arriving without their identity
	// field. Such records are never inserted; the ingestion boundary counts them.
	ErrMissingID = errors.New("record is missing its identity field")

	// ErrNotFound is returned by the point lookups.
	ErrNotFound = errors.New("record not found")
)

// Subscriber observes store mutations. Callbacks run synchronously after the
// mutation commits and receive the store version the mutation produced;
// they must be cheap and must not mutate the store.
type Subscriber func(version uint64)

// Store reconciles inbound records with insert-or-replace semantics keyed by
// identifier. Last write wins, wholesale; there is no field-level merging.
//
// Unlike the browser original, which ran on one event loop, the monitor
// mutates from the ingest goroutine and reads from the serving and sampler
// goroutines, so access is guarded by an RWMutex.
type Store struct {
	mu       sync.RWMutex
	vehicles map[string]model.Vehicle
	alerts   map[string]model.Alert

	// actions is a bounded recent-history list, newest last.
	actions   []model.OperatorAction
	actionCap int

	version uint64

	subMu       sync.Mutex
	subscribers []Subscriber
}

// New creates an empty store. actionCap bounds the retained operator actions.
func New(actionCap int) *Store {
	if actionCap <= 0 {
		actionCap = 100
	}
	return &Store{
		vehicles:  make(map[string]model.Vehicle),
		alerts:    make(map[string]model.Alert),
		actionCap: actionCap,
	}
}

// Subscribe registers a callback notified after every mutation.
func (s *Store) Subscribe(sub Subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Version returns the current change counter. It advances by one on every
// committed mutation, so derived views can memoize on it.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) notify(version uint64) {
	s.subMu.Lock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub(version)
	}
}

// UpsertVehicle inserts or wholesale-replaces the vehicle keyed by its ID.
func (s *Store) UpsertVehicle(v model.Vehicle) error {
	if v.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	s.vehicles[v.ID] = v
	s.version++
	version := s.version
	s.mu.Unlock()

	s.notify(version)
	return nil
}

// UpsertAlert inserts or wholesale-replaces the alert keyed by its ID.
func (s *Store) UpsertAlert(a model.Alert) error {
	if a.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	s.alerts[a.ID] = a
	s.version++
	version := s.version
	s.mu.Unlock()

	s.notify(version)
	return nil
}

// UpsertAction records an operator action. Re-delivery of an already known
// action id replaces it in place; new actions evict the oldest once the
// retention cap is reached.
func (s *Store) UpsertAction(a model.OperatorAction) error {
	if a.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	replaced := false
	for i := range s.actions {
		if s.actions[i].ID == a.ID {
			s.actions[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		s.actions = append(s.actions, a)
		if len(s.actions) > s.actionCap {
			s.actions = s.actions[len(s.actions)-s.actionCap:]
		}
	}
	s.version++
	version := s.version
	s.mu.Unlock()

	s.notify(version)
	return nil
}

// ReplaceAllVehicles swaps in the authoritative bulk-fetched vehicle set.
// Records without an ID are dropped. The bootstrap coordinator replays any
// stream records buffered during the fetch afterwards, so those win ties.
func (s *Store) ReplaceAllVehicles(vehicles []model.Vehicle) {
	next := make(map[string]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		if v.ID == "" {
			continue
		}
		next[v.ID] = v
	}

	s.mu.Lock()
	s.vehicles = next
	s.version++
	version := s.version
	s.mu.Unlock()

	s.notify(version)
}

// ReplaceAllAlerts swaps in the authoritative bulk-fetched alert set.
func (s *Store) ReplaceAllAlerts(alerts []model.Alert) {
	next := make(map[string]model.Alert, len(alerts))
	for _, a := range alerts {
		if a.ID == "" {
			continue
		}
		next[a.ID] = a
	}

	s.mu.Lock()
	s.alerts = next
	s.version++
	version := s.version
	s.mu.Unlock()

	s.notify(version)
}

// Vehicles returns a copy of the vehicle collection, sorted by ID for
// deterministic output.
func (s *Store) Vehicles() []model.Vehicle {
	s.mu.RLock()
	out := make([]model.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Alerts returns a copy of the alert collection, sorted by ID.
func (s *Store) Alerts() []model.Alert {
	s.mu.RLock()
	out := make([]model.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		out = append(out, a)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Actions returns the retained operator actions, newest first.
func (s *Store) Actions() []model.OperatorAction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.OperatorAction, len(s.actions))
	for i, a := range s.actions {
		out[len(s.actions)-1-i] = a
	}
	return out
}

// Vehicle looks up one vehicle by ID.
func (s *Store) Vehicle(id string) (model.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[id]
	if !ok {
		return model.Vehicle{}, ErrNotFound
	}
	return v, nil
}

// Alert looks up one alert by ID.
func (s *Store) Alert(id string) (model.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.alerts[id]
	if !ok {
		return model.Alert{}, ErrNotFound
	}
	return a, nil
}

// Counts returns the collection sizes in one consistent read.
func (s *Store) Counts() (vehicles, alerts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles), len(s.alerts)
}
