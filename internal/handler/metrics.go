package handler

import (
	"fmt"
	"net/http"

	"github.com/textshare/textshare/internal/metrics"
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

	writeMetric(w, "textshare_signups_total %d\n", snap.Signups)
	writeMetric(w, "textshare_logins_total{outcome=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "textshare_logins_total{outcome=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "textshare_pastes_created_total{owner=\"anonymous\"} %d\n", snap.PastesCreatedAnon)
	writeMetric(w, "textshare_pastes_created_total{owner=\"user\"} %d\n", snap.PastesCreatedOwned)
	writeMetric(w, "textshare_pastes_deleted_total %d\n", snap.PastesDeleted)

	writeMetric(w, "textshare_paste_cache_hits_total %d\n", snap.PasteCacheHits)
	writeMetric(w, "textshare_paste_cache_misses_total %d\n", snap.PasteCacheMisses)
	writeMetric(w, "textshare_paste_fetch_duration_seconds_count %d\n", snap.PasteFetchCount)
	writeMetric(w, "textshare_paste_fetch_duration_seconds_sum %.6f\n", float64(snap.PasteFetchTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
