package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	dto "dappscope/internal/adapter/indexer/dto"
	"dappscope/internal/config"
	"dappscope/internal/domain"
	"dappscope/internal/domain/entity"
	domainRepo "dappscope/internal/domain/repository"
	"dappscope/internal/observability/metrics"
	"dappscope/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Compile-time check
var _ domainRepo.TransactionRepository = (*Client)(nil)

// Client reads account transactions from a BlockVision-compatible indexer.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	schemes []CredentialScheme
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates an indexer client. A nil schemes list uses DefaultCredentialSchemes.
// RequestsPerSecond <= 0 disables client-side rate limiting.
func NewClient(cfg config.IndexerConfig, schemes []CredentialScheme, logger *zap.Logger) *Client {
	if len(schemes) == 0 {
		schemes = DefaultCredentialSchemes()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}

	return &Client{
		client:  &fasthttp.Client{},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		timeout: cfg.GetTimeout(),
		schemes: schemes,
		limiter: limiter,
		logger:  logger.Named("IndexerClient"),
	}
}

// FetchAll reads the wallet's transactions page by page, in upstream order.
//
// It stops after a page with no records, after a page without a continuation
// cursor, or once opts.MaxPages pages were read. Pages are requested sequentially.
// Once a fallback scheme succeeds, later pages start from that scheme and never
// retry the primary one: a key rejected on one page is assumed rejected for the
// rest of the fetch.
func (c *Client) FetchAll(
	ctx context.Context,
	wallet entity.Address,
	opts domainRepo.FetchOptions,
) ([]entity.Transaction, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("%w: indexer api key is not set", domain.ErrConfiguration)
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = 4
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var (
		all    []entity.Transaction
		cursor string
		scheme int
		pages  int
	)
	for pages < maxPages {
		envelope, used, err := c.fetchPage(ctx, wallet, pageSize, cursor, scheme)
		if err != nil {
			return nil, fmt.Errorf("fetch transactions page %d: %w", pages+1, err)
		}
		scheme = used
		pages++

		items := pageItems(envelope.Result)
		all = append(all, toDomainTransactions(items)...)
		if len(items) == 0 {
			break
		}
		cursor = nextCursor(envelope.Result)
		if cursor == "" {
			break
		}
	}

	metrics.RecordIndexerPages(pages)
	c.logger.Debug("Fetched wallet transactions",
		zap.String("wallet", wallet.String()),
		zap.Int("pages", pages),
		zap.Int("count", len(all)),
	)

	return all, nil
}

// fetchPage requests one page, trying credential schemes from index first onwards
// while the indexer answers 401 or 403. It returns the index of the scheme that was used.
func (c *Client) fetchPage(
	ctx context.Context,
	wallet entity.Address,
	pageSize int,
	cursor string,
	first int,
) (*dto.TransactionsResponseRaw, int, error) {
	var status int
	for i := first; i < len(c.schemes); i++ {
		scheme := c.schemes[i]

		var (
			body []byte
			err  error
		)
		status, body, err = c.do(ctx, scheme, wallet, pageSize, cursor)
		if err != nil {
			return nil, i, err
		}

		if (status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden) && i+1 < len(c.schemes) {
			c.logger.Warn("Indexer rejected credentials, falling back",
				zap.String("scheme", scheme.Name()),
				zap.String("next", c.schemes[i+1].Name()),
				zap.Int("statusCode", status),
			)
			continue
		}

		if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
			c.logger.Error("Indexer returned non-2xx status",
				zap.Int("statusCode", status),
				zap.String("scheme", scheme.Name()),
				zap.ByteString("body", body[:min(512, len(body))]),
			)
			return nil, i, &domain.UpstreamError{StatusCode: status}
		}

		var envelope dto.TransactionsResponseRaw
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.logger.Error("Failed to decode indexer response",
				zap.Error(err), zap.ByteString("bodySample", body[:min(1024, len(body))]),
			)
			return nil, i, &domain.UpstreamError{StatusCode: status, Reason: "undecodable response body"}
		}

		if code, ok := codeValue(envelope.Code); !ok || code != 0 {
			upErr := upstreamCodeError(status, envelope)
			c.logger.Error("Indexer reported an error", zap.Int64("code", upErr.Code), zap.String("reason", upErr.Reason))
			return nil, i, upErr
		}

		return &envelope, i, nil
	}

	return nil, first, &domain.UpstreamError{StatusCode: status}
}

// do performs a single HTTP call and returns the status with the decoded body.
func (c *Client) do(
	ctx context.Context,
	scheme CredentialScheme,
	wallet entity.Address,
	pageSize int,
	cursor string,
) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("%w: rate limiter: %w", domain.ErrUpstream, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	args := req.URI().QueryArgs()
	args.Set("address", wallet.String())
	args.Set("limit", strconv.Itoa(pageSize))
	if cursor != "" {
		args.Set("cursor", cursor)
	}
	scheme.Apply(req, c.apiKey)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		metrics.RecordIndexerCall(scheme.Name(), 0)
		c.logger.Error("Failed to execute request to indexer", zap.String("scheme", scheme.Name()), zap.Error(err))
		if errors.Is(err, fasthttp.ErrTimeout) {
			return 0, nil, fmt.Errorf("%w: %w: indexer request", domain.ErrUpstream, apperrors.ErrTimeout)
		}
		return 0, nil, fmt.Errorf("%w: %w: %v", domain.ErrUpstream, apperrors.ErrExternalServiceFailure, err)
	}

	status := resp.StatusCode()
	metrics.RecordIndexerCall(scheme.Name(), status)

	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		body, err := resp.BodyGunzip()
		if err != nil {
			return status, nil, fmt.Errorf("%w: failed to decompress indexer response: %v", domain.ErrUpstream, err)
		}
		return status, body, nil
	}

	return status, append([]byte(nil), resp.Body()...), nil
}

// upstreamCodeError builds the error for a response whose code is not zero.
func upstreamCodeError(status int, envelope dto.TransactionsResponseRaw) *domain.UpstreamError {
	upErr := &domain.UpstreamError{StatusCode: status}
	code, ok := codeValue(envelope.Code)
	if ok {
		upErr.Code = code
	}

	reason, message, rawCode := textOf(envelope.Reason), textOf(envelope.Message), textOf(envelope.Code)
	switch {
	case reason != "":
		upErr.Reason = reason
	case message != "":
		upErr.Reason = message
	case ok:
		upErr.Reason = "code " + strconv.FormatInt(code, 10)
	case rawCode != "":
		upErr.Reason = "code " + rawCode
	default:
		upErr.Reason = "response carried no status code"
	}
	return upErr
}
