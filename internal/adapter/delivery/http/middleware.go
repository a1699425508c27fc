package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	handler "dappscope/internal/adapter/handler/http"
	"dappscope/internal/config"
	"dappscope/internal/observability/metrics"
)

const headerRequestID = "X-Request-ID"

// Middleware wraps a fasthttp handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain applies middlewares so that the first one listed runs outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestID assigns each request an id, reusing a valid incoming X-Request-ID.
func RequestID() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			id := string(ctx.Request.Header.Peek(headerRequestID))
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			ctx.SetUserValue(handler.RequestIDKey, id)
			ctx.Response.Header.Set(headerRequestID, id)
			next(ctx)
		}
	}
}

// CORS sets the cross-origin headers on every response.
func CORS(cfg config.CORSConfig) Middleware {
	origin := cfg.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowOrigin, origin)
			ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
			ctx.Response.Header.Set(fasthttp.HeaderAccessControlAllowHeaders, "Content-Type")
			next(ctx)
		}
	}
}

// Logging logs every request once it has been served.
func Logging(logger *zap.Logger) Middleware {
	logger = logger.Named("HTTP")
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			id, _ := ctx.UserValue(handler.RequestIDKey).(string)
			logger.Info("Request served",
				zap.String("requestId", id),
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("uri", ctx.RequestURI()),
				zap.Int("status", ctx.Response.StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
	}
}

var knownPaths = map[string]struct{}{
	"/api/check":    {},
	"/api/check.js": {},
	"/api/dapps":    {},
	"/health":       {},
	"/metrics":      {},
}

// Metrics records request counts and latency. Unknown paths share one label.
func Metrics() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)
			path := string(ctx.Path())
			if _, ok := knownPaths[path]; !ok {
				path = "other"
			}
			metrics.ObserveRequest(string(ctx.Method()), path, ctx.Response.StatusCode(), time.Since(start))
		}
	}
}
