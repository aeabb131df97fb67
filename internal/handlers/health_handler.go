package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is satisfied by any backing store exposing a Ping method.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Health returns a handler that probes the backing store and reports
// degraded status with a 503 if it is unreachable.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Store: "ok"}
		status := http.StatusOK

		if err := store.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Store = "unreachable"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
