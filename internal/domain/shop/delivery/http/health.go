// Package http contains HTTP delivery handlers for the shop domain
package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

const healthCheckTimeout = 3 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Bot        string            `json:"bot"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components,omitempty"`
}

// RootResponse is served on /
type RootResponse struct {
	Message string       `json:"message"`
	Status  HealthStatus `json:"status"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	database Pinger
	logger   zerolog.Logger
	now      func() time.Time
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(database Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		database: database,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle handles the health check request for fasthttp
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	checkCtx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	components := h.checkComponents(checkCtx)

	status := HealthStatusHealthy
	for _, c := range components {
		if !c.Healthy {
			status = HealthStatusUnhealthy
		}
	}

	statusCode := fasthttp.StatusOK
	if status == HealthStatusUnhealthy {
		statusCode = fasthttp.StatusServiceUnavailable
	}

	logEvent := h.logger.Debug()
	if status == HealthStatusUnhealthy {
		logEvent = h.logger.Warn()
	}
	logEvent.
		Str("status", string(status)).
		Int("status_code", statusCode).
		Interface("components", components).
		Msg("Health check completed")

	h.writeJSON(ctx, statusCode, HealthResponse{
		Status:     status,
		Bot:        "running",
		Timestamp:  h.now().UTC(),
		Components: components,
	})
}

// HandleRoot answers liveness probes on /
func (h *HealthHandler) HandleRoot(ctx *fasthttp.RequestCtx) {
	h.writeJSON(ctx, fasthttp.StatusOK, RootResponse{
		Message: "Premium Telegram Bot is running!",
		Status:  HealthStatusHealthy,
	})
}

func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	if h.database == nil {
		return nil
	}

	component := ComponentHealth{Name: "database", Healthy: true}
	if err := h.database.PingContext(ctx); err != nil {
		component.Healthy = false
		component.Message = "Database is not reachable"
		h.logger.Warn().Err(err).Msg("Database ping failed")
	}

	return []ComponentHealth{component}
}

func (h *HealthHandler) writeJSON(ctx *fasthttp.RequestCtx, statusCode int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)
	ctx.SetBody(body)
}
