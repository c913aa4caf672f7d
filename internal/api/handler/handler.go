// Package handler implements the dashboard HTTP handlers: the HTML page, the
// run trigger and the log-polling endpoint.
package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"prospector/internal/runner"
	"prospector/pkg/logger"
	"prospector/pkg/serrors"

	"go.uber.org/zap"
)

//go:embed dashboard.html
var dashboardHTML string

// dashboardTmpl renders the embedded dashboard page with the current status
// and counter baked in; subsequent updates come from the /logs poll.
var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML)) //nolint: gochecknoglobals

// Handler serves the dashboard endpoints.
type Handler struct {
	runner *runner.Runner
}

// New creates a Handler on top of the run controller.
func New(r *runner.Runner) *Handler {
	return &Handler{runner: r}
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Home renders the dashboard HTML page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	snap := h.runner.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, map[string]any{
		"Status": snap.Status,
		"Count":  snap.Count,
	}); err != nil {
		logger.Error(r.Context(), "could not render dashboard", zap.Error(err))
	}
}

// Run synchronously executes one full scraping run and reports its trigger.
// A second request while a run is active is rejected with 409.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger.Info(ctx, "manual start triggered")

	if err := h.runner.Run(ctx); err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "run already in progress"})

			return
		}
		logger.Error(ctx, "run failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "run failed"})

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

// Logs returns the bounded log buffer, status label and uploaded-lead count
// for dashboard polling.
func (h *Handler) Logs(w http.ResponseWriter, _ *http.Request) {
	snap := h.runner.Snapshot()
	if snap.Logs == nil {
		snap.Logs = []string{}
	}

	writeJSON(w, http.StatusOK, snap)
}
