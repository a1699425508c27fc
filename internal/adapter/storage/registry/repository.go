package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dto "dappscope/internal/adapter/storage/registry/dto"
	"dappscope/internal/config"
	"dappscope/internal/domain"
	"dappscope/internal/domain/entity"
	domainRepo "dappscope/internal/domain/repository"
	"dappscope/internal/observability/metrics"
	"dappscope/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Compile-time check
var _ domainRepo.RegistryRepository = (*Repository)(nil)

// Repository implements RegistryRepository by fetching a registry document over HTTP.
type Repository struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRepository creates a new registry repository for the configured URL.
func NewRepository(cfg config.RegistryConfig, logger *zap.Logger) *Repository {
	return &Repository{
		client:  &fasthttp.Client{},
		url:     cfg.URL,
		timeout: cfg.GetTimeout(),
		logger:  logger.Named("RegistryStorage"),
	}
}

// LoadDapps fetches and decodes the registry document.
// JSON is expected unless the URL or the Content-Type names YAML.
func (r *Repository) LoadDapps(ctx context.Context) ([]entity.Dapp, error) {
	if strings.TrimSpace(r.url) == "" {
		return nil, fmt.Errorf("%w: registry url is not set", domain.ErrConfiguration)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRegistryUnavailable, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	r.logger.Debug("Fetching dApp registry", zap.String("url", r.url), zap.Duration("timeout", timeout))

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		metrics.RecordRegistryLoad("remote", "error")
		r.logger.Error("Failed to execute request to registry", zap.String("url", r.url), zap.Error(err))
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: %w: registry request", domain.ErrRegistryUnavailable, apperrors.ErrTimeout)
		}
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrRegistryUnavailable, apperrors.ErrExternalServiceFailure, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		metrics.RecordRegistryLoad("remote", "error")
		r.logger.Error("Registry returned non-2xx status",
			zap.Int("statusCode", status),
			zap.ByteString("body", resp.Body()[:min(512, len(resp.Body()))]),
		)
		return nil, fmt.Errorf("%w: registry returned status %d", domain.ErrRegistryUnavailable, status)
	}

	var (
		body []byte
		err  error
	)
	if bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		body, err = resp.BodyGunzip()
		if err != nil {
			metrics.RecordRegistryLoad("remote", "error")
			r.logger.Error("Failed to gunzip registry response body", zap.Error(err))
			return nil, fmt.Errorf("%w: failed to decompress registry: %v", domain.ErrRegistryUnavailable, err)
		}
	} else {
		body = resp.Body()
	}

	var doc any
	if r.isYAML(req, resp) {
		err = yaml.Unmarshal(body, &doc)
	} else {
		err = json.Unmarshal(body, &doc)
	}
	if err != nil {
		metrics.RecordRegistryLoad("remote", "error")
		r.logger.Error("Failed to decode registry document",
			zap.Error(err), zap.ByteString("bodySample", body[:min(1024, len(body))]),
		)
		return nil, fmt.Errorf("%w: failed to parse registry: %v", domain.ErrRegistryUnavailable, err)
	}

	dapps := toDomainDapps(dto.NewDocumentRaw(doc), r.logger)
	metrics.RecordRegistryLoad("remote", "success")
	r.logger.Info("Loaded dApp registry", zap.Int("count", len(dapps)))

	return dapps, nil
}

func (r *Repository) isYAML(req *fasthttp.Request, resp *fasthttp.Response) bool {
	path := strings.ToLower(string(req.URI().Path()))
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return true
	}
	return bytes.Contains(bytes.ToLower(resp.Header.ContentType()), []byte("yaml"))
}
