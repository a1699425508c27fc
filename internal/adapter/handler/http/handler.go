package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"dappscope/internal/application/port"
	"dappscope/internal/domain"
	"dappscope/internal/pkg/apperrors"
)

// RequestIDKey is the user value holding the request id set by the delivery middleware.
const RequestIDKey = "requestId"

// ExplorerHandler serves the wallet exploration API.
type ExplorerHandler struct {
	service port.ExplorerService
	logger  *zap.Logger
}

// NewExplorerHandler creates a handler backed by service.
func NewExplorerHandler(service port.ExplorerService, logger *zap.Logger) *ExplorerHandler {
	return &ExplorerHandler{
		service: service,
		logger:  logger.Named("ExplorerHandler"),
	}
}

// Check handles GET ?wallet=|?address= and POST {"wallet"|"address"} requests.
func (h *ExplorerHandler) Check(ctx *fasthttp.RequestCtx) {
	req, err := parseCheckRequest(ctx)
	if err != nil {
		h.logger.Info("Rejected malformed check request", h.requestID(ctx), zap.Error(err))
		h.writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Ready(); err != nil {
		h.handleError(ctx, "Service is not ready", err)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Info("Rejected invalid wallet",
			h.requestID(ctx), zap.String("wallet", req.walletAddress()), zap.Error(err),
		)
		h.writeError(ctx, fasthttp.StatusBadRequest, "Invalid wallet address")
		return
	}

	result, err := h.service.Explore(ctx, req.walletAddress())
	if err != nil {
		h.handleError(ctx, "Failed to check wallet", err)
		return
	}

	h.writeJSON(ctx, fasthttp.StatusOK, newCheckResponse(result))
}

// ListDapps handles requests for the parsed registry.
func (h *ExplorerHandler) ListDapps(ctx *fasthttp.RequestCtx) {
	dapps, err := h.service.ListDapps(ctx)
	if err != nil {
		h.handleError(ctx, "Failed to list dApps", err)
		return
	}
	h.writeJSON(ctx, fasthttp.StatusOK, newDappListResponse(dapps))
}

// Preflight answers CORS preflight requests. CORS headers are set by the delivery middleware.
func (h *ExplorerHandler) Preflight(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
}

// MethodNotAllowed answers requests whose path exists but whose method does not.
func (h *ExplorerHandler) MethodNotAllowed(ctx *fasthttp.RequestCtx) {
	h.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound answers requests for unknown paths.
func (h *ExplorerHandler) NotFound(ctx *fasthttp.RequestCtx) {
	h.writeError(ctx, fasthttp.StatusNotFound, "Not found")
}

func parseCheckRequest(ctx *fasthttp.RequestCtx) (checkRequest, error) {
	var req checkRequest
	if ctx.IsPost() {
		body := ctx.PostBody()
		if len(body) == 0 {
			return req, nil
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return req, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		return req, nil
	}

	args := ctx.QueryArgs()
	req.Wallet = string(args.Peek("wallet"))
	req.Address = string(args.Peek("address"))
	return req, nil
}

// handleError maps domain errors to status codes. Error details stay in the log.
func (h *ExplorerHandler) handleError(ctx *fasthttp.RequestCtx, msg string, err error) {
	status := fasthttp.StatusInternalServerError
	public := "Error checking wallet"

	switch {
	case errors.Is(err, domain.ErrInvalidWallet):
		status, public = fasthttp.StatusBadRequest, "Invalid wallet address"
	case errors.Is(err, domain.ErrConfiguration):
		public = "Service is not configured"
	case errors.Is(err, domain.ErrRegistryUnavailable):
		public = "dApp registry unavailable"
	case errors.Is(err, domain.ErrUpstream):
		public = "Transaction indexer unavailable"
	}

	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error(msg, h.requestID(ctx), zap.Error(err))
	} else {
		h.logger.Info(msg, h.requestID(ctx), zap.Error(err))
	}
	h.writeError(ctx, status, public)
}

func (h *ExplorerHandler) writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	h.writeJSON(ctx, status, errorResponse{OK: false, Error: msg})
}

func (h *ExplorerHandler) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", h.requestID(ctx), zap.Error(err))
	}
}

func (h *ExplorerHandler) requestID(ctx *fasthttp.RequestCtx) zap.Field {
	id, _ := ctx.UserValue(RequestIDKey).(string)
	return zap.String("requestId", id)
}
