package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers health HTTP routes
type Router struct {
	handler *HealthHandler
	logger  zerolog.Logger
}

// NewRouter creates a new health router
func NewRouter(handler *HealthHandler, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
	}
}

// RegisterRoutes registers health routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.GET("/", r.handler.HandleRoot)
	rt.GET("/health", r.handler.Handle)

	r.logger.Info().Msg("HTTP health routes registered")
}
