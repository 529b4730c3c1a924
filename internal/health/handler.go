// Package health serves the liveness probe.
package health

import (
	"context"
	"net/http"

	"github.com/crossroads/apparel-backend/internal/httpjson"
)

// Pinger is anything that can round-trip to its backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the probe result returned to clients.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Healthy reports whether the probe succeeded.
func (s Status) Healthy() bool { return s.Status == "ok" }

type Handler struct {
	db Pinger
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// CheckStatus pings the database. It writes nothing.
func (h *Handler) CheckStatus(ctx context.Context) Status {
	if err := h.db.Ping(ctx); err != nil {
		return Status{Status: "error", Message: err.Error()}
	}
	return Status{Status: "ok", Message: "Backend and database connected"}
}

// ServeHTTP handles GET /api/status.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := h.CheckStatus(r.Context())
	code := http.StatusOK
	if !st.Healthy() {
		code = http.StatusInternalServerError
	}
	httpjson.Write(w, code, st)
}
