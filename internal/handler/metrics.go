package handler

import (
	"fmt"
	"net/http"

	"github.com/accountd/accountd/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "accountd_accounts_created_total %d\n", snap.AccountsCreated)

	writeMetric(w, "accountd_signups_rejected_total{reason=\"%s\"} %d\n", metrics.ReasonMissingParam, snap.SignupsMissingParam)
	writeMetric(w, "accountd_signups_rejected_total{reason=\"%s\"} %d\n", metrics.ReasonInvalidParam, snap.SignupsInvalidParam)
	writeMetric(w, "accountd_signups_rejected_total{reason=\"%s\"} %d\n", metrics.ReasonServerError, snap.SignupsServerError)

	writeMetric(w, "accountd_signup_duration_seconds_count %d\n", snap.SignupDurationCount)
	writeMetric(w, "accountd_signup_duration_seconds_sum %.6f\n", float64(snap.SignupDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
