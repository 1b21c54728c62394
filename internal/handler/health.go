// Copyright (c) 2026 Vince Veselosky and contributors
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/veselosky/commoncontent/internal/version"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Error   string `json:"error,omitempty"`
}

// Healthz handles GET /healthz. The database must answer a ping for the
// service to report healthy.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:  "ok",
		Version: version.Version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}

	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
