package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger reports store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the read-only status report.
type HealthHandler struct {
	Store            Pinger
	Degraded         bool
	Transport        string
	OracleConfigured bool
	PingTimeout      time.Duration
	Started          time.Time
	Log              *zap.Logger
}

type healthResponse struct {
	Status           string  `json:"status"`
	Store            string  `json:"store"`
	Transport        string  `json:"transport"`
	OracleConfigured bool    `json:"oracle_configured"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	Error            string  `json:"error,omitempty"`
}

// Serve handles GET /health. It is informational and always answers 200:
//
//	{"status":"ok","store":"connected","transport":"whatsapp","oracle_configured":true,"uptime_seconds":12}
func (h *HealthHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.PingTimeout)
	defer cancel()

	resp := healthResponse{
		Status:           "ok",
		Store:            "connected",
		Transport:        h.Transport,
		OracleConfigured: h.OracleConfigured,
		UptimeSeconds:    math.Round(time.Since(h.Started).Seconds()),
	}

	if h.Degraded {
		resp.Status = "degraded"
		resp.Store = "memory"
	}
	if err := h.Store.Ping(ctx); err != nil {
		h.Log.Warn("health-check: store ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Store = "disconnected"
		resp.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
