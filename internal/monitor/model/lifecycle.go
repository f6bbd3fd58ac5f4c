package model

import (
	"fmt"

	"github.com/looplab/fsm"
)

// Lifecycle events. Alert status only ever moves forward:
// OPEN -> ACKNOWLEDGED -> RESOLVED, where acknowledgment may be skipped.
const (
	eventAcknowledge = "acknowledge"
	eventResolve     = "resolve"
)

func newLifecycle(initial AlertStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: eventAcknowledge, Src: []string{string(StatusOpen)}, Dst: string(StatusAcknowledged)},
			{Name: eventResolve, Src: []string{string(StatusOpen), string(StatusAcknowledged)}, Dst: string(StatusResolved)},
		},
		fsm.Callbacks{},
	)
}

// lifecycleEvent maps a target status onto the machine event reaching it.
func lifecycleEvent(to AlertStatus) (string, bool) {
	switch to {
	case StatusAcknowledged:
		return eventAcknowledge, true
	case StatusResolved:
		return eventResolve, true
	default:
		return "", false
	}
}

// CanTransition reports whether the alert lifecycle permits moving from one
// status to another. Re-submitting the current status is not a transition.
func CanTransition(from, to AlertStatus) bool {
	event, ok := lifecycleEvent(to)
	if !ok {
		return false
	}
	return newLifecycle(from).Can(event)
}

// ValidateTransition returns a descriptive error when the lifecycle forbids
// the requested move. Used by the mutation client to refuse doomed calls
// before they round-trip to the upstream API.
func ValidateTransition(from, to AlertStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("alert status %s cannot transition to %s", from, to)
	}
	return nil
}
