package ingest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/pkg/metrics"
)

// Drop reasons used as the label on the malformed-events counter.
const (
	reasonEnvelope    = "envelope"
	reasonUnknownType = "unknown_type"
	reasonPayload     = "payload"
	reasonMissingID   = "missing_id"
)

// Apply decodes one stream envelope and applies the carried record to sink.
// A non-nil error means the event was dropped; the store is untouched.
func Apply(sink store.Applier, payload []byte) error {
	var event model.StreamEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		metrics.EventsMalformedTotal.WithLabelValues(reasonEnvelope).Inc()
		return fmt.Errorf("decode envelope: %w", err)
	}

	var err error
	switch event.Type {
	case model.EventVehicleUpdated:
		var v model.Vehicle
		if err = json.Unmarshal(event.Data, &v); err == nil {
			err = sink.ApplyVehicle(v)
		}
	case model.EventAlertCreated, model.EventAlertUpdated:
		var a model.Alert
		if err = json.Unmarshal(event.Data, &a); err == nil {
			err = sink.ApplyAlert(a)
		}
	case model.EventOperatorActionCreated:
		var a model.OperatorAction
		if err = json.Unmarshal(event.Data, &a); err == nil {
			err = sink.ApplyAction(a)
		}
	default:
		metrics.EventsMalformedTotal.WithLabelValues(reasonUnknownType).Inc()
		return fmt.Errorf("unknown event type %q", event.Type)
	}

	if err != nil {
		if errors.Is(err, store.ErrMissingID) {
			metrics.EventsMalformedTotal.WithLabelValues(reasonMissingID).Inc()
		} else {
			metrics.EventsMalformedTotal.WithLabelValues(reasonPayload).Inc()
		}
		return fmt.Errorf("apply %s: %w", event.Type, err)
	}

	metrics.EventsReceivedTotal.WithLabelValues(string(event.Type)).Inc()
	return nil
}
