package api

import (
	"net/http"
	"time"

	"github.com/SudoBobo/RestaurantAPIExercise/pkg/metrics"
)

var startTime = time.Now()

// health returns basic liveness information.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (a *API) health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": int64(time.Since(startTime).Seconds()),
	})
}

// metricsSnapshot returns the process counters.
// @Summary Metrics
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /metrics [get]
func (a *API) metricsSnapshot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, metrics.Snapshot())
}
