package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/fleetapi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/kpi"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/store"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/triage"
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/pkg/log"
)

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views.Vehicles())
}

func (s *Server) handleVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.deps.Store.Vehicle(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Store.Alerts())
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	alert, err := s.deps.Store.Alert(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Store.Actions())
}

func (s *Server) handleTriage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views.Triage(filterFromQuery(r)))
}

func (s *Server) handleMetricSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views.Snapshot())
}

// seriesResponse bundles the two rolling chart series.
type seriesResponse struct {
	AlertRate  []kpi.ChartPoint `json:"alert_rate"`
	AckLatency []kpi.ChartPoint `json:"ack_latency"`
}

func (s *Server) handleMetricSeries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seriesResponse{
		AlertRate:  s.deps.Sampler.AlertRatePoints(),
		AckLatency: s.deps.Sampler.AckLatencyPoints(),
	})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views.Heat())
}

func (s *Server) handleCenter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views.Center())
}

// mutationRequest is the optional body of the lifecycle endpoints.
type mutationRequest struct {
	Operator string `json:"operator"`
}

func (s *Server) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, s.deps.Lifecycle.Acknowledge)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, s.deps.Lifecycle.Resolve)
}

func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, alertID, operator string) error) {
	alertID := mux.Vars(r)["id"]

	var body mutationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := apply(r.Context(), alertID, body.Operator); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "bootstrapping"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// filterFromQuery builds a triage filter from the query string. Repeated or
// comma-separated values are both accepted for status and severity.
func filterFromQuery(r *http.Request) triage.Filter {
	q := r.URL.Query()

	var f triage.Filter
	for _, raw := range q["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Statuses = append(f.Statuses, model.AlertStatus(strings.ToUpper(s)))
			}
		}
	}
	for _, raw := range q["severity"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Severities = append(f.Severities, model.Severity(strings.ToUpper(s)))
			}
		}
	}
	f.Query = q.Get("q")
	return f
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error(err, "Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fleetapi.ErrUpstream):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
