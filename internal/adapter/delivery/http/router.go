package http

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	handler "dappscope/internal/adapter/handler/http"
	"dappscope/internal/observability/metrics"
)

// RegisterRoutes sets up the exploration API routes and common health checks.
func RegisterRoutes(r *router.Router, h *handler.ExplorerHandler, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	for _, path := range []string{"/api/check", "/api/check.js"} {
		r.GET(path, h.Check)
		r.POST(path, h.Check)
		r.OPTIONS(path, h.Preflight)
	}
	r.GET("/api/dapps", h.ListDapps)
	r.OPTIONS("/api/dapps", h.Preflight)

	r.HandleMethodNotAllowed = true
	r.MethodNotAllowed = h.MethodNotAllowed
	r.NotFound = h.NotFound

	logger.Info("Setting up health check route...")
	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	if metrics.Enabled() {
		logger.Info("Setting up metrics route...")
		r.GET("/metrics", metrics.Handler())
	}

	logger.Info("All routes registered.")
}
