package v1handler

import (
	"ctwatch/internal/monitor"
	"net/http"
	"time"
)

// Monitoring is the body of every /monitoring response.
type Monitoring struct {
	Running bool `json:"running"`
	// Changed reports whether a start or stop request changed the state.
	Changed             *bool      `json:"changed,omitempty"`
	LastCycleStartedAt  *time.Time `json:"lastCycleStartedAt,omitempty"`
	LastCycleFinishedAt *time.Time `json:"lastCycleFinishedAt,omitempty"`
	LastCycleClean      bool       `json:"lastCycleClean"`
	NextCycleAt         *time.Time `json:"nextCycleAt,omitempty"`
}

// MonitoringFromStatus converts a monitor.Status to its wire form.
func MonitoringFromStatus(s monitor.Status) Monitoring {
	optTime := func(t time.Time) *time.Time {
		if t.IsZero() {
			return nil
		}
		t = t.UTC()

		return &t
	}

	return Monitoring{
		Running:             s.Running,
		LastCycleStartedAt:  optTime(s.LastCycleStartedAt),
		LastCycleFinishedAt: optTime(s.LastCycleFinishedAt),
		LastCycleClean:      s.LastCycleClean,
		NextCycleAt:         optTime(s.NextCycleAt),
	}
}

// GetMonitoring returns the state of the scan loop.
func (h Handler) GetMonitoring(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MonitoringFromStatus(h.deps.Monitor.Monitoring(r.Context())))
}

// StartMonitoring enables the scan loop. Starting a running loop is not an error.
func (h Handler) StartMonitoring(w http.ResponseWriter, r *http.Request) {
	changed := h.deps.Monitor.StartMonitoring(r.Context())
	res := MonitoringFromStatus(h.deps.Monitor.Monitoring(r.Context()))
	res.Changed = &changed

	writeJSON(w, http.StatusOK, res)
}

// StopMonitoring disables the scan loop. Stopping an idle loop is not an error.
func (h Handler) StopMonitoring(w http.ResponseWriter, r *http.Request) {
	changed := h.deps.Monitor.StopMonitoring(r.Context())
	res := MonitoringFromStatus(h.deps.Monitor.Monitoring(r.Context()))
	res.Changed = &changed

	writeJSON(w, http.StatusOK, res)
}
