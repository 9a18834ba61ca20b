// Package notify delivers match result events to an external webhook so
// league sites and chat integrations can react to completed matches.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Porizovatel/kulda/internal/platform/logging"
	"github.com/Porizovatel/kulda/internal/platform/resilience"
	"github.com/Porizovatel/kulda/internal/usecase"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	BaseURL        string
	Path           string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher posts match result payloads to a configured endpoint.
// Delivery is best effort; callers decide whether a failure is fatal.
type WebhookPublisher struct {
	client         *fasthttp.Client
	endpoint       string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) (*WebhookPublisher, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid NOTIFY_BASE_URL")
	}

	path := "/" + strings.TrimLeft(strings.TrimSpace(cfg.Path), "/")
	if path == "/" {
		return nil, crerr.New("webhook path is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		endpoint:       baseURL + path,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

func (p *WebhookPublisher) PublishMatchResult(ctx context.Context, event usecase.MatchResultEvent) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("webhook is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(event)
	if err != nil {
		return crerr.Wrap(err, "marshal match result event")
	}
	bodyText := truncateForLog(string(body), 4096)
	curlPreview := buildWebhookCurlPreview(p.endpoint, bodyText, p.token != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.endpoint", p.endpoint),
			attribute.String("webhook.match_id", event.MatchID),
			attribute.String("webhook.request_body", bodyText),
			attribute.String("webhook.request_curl_preview", curlPreview),
		)
	}
	p.logger.InfoContext(ctx, "webhook publish request",
		"endpoint", p.endpoint,
		"match_id", event.MatchID,
		"curl_preview", curlPreview,
	)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		callErr := fmt.Errorf("%w: publish match result endpoint=%s: %v", errWebhookTransient, p.endpoint, err)
		p.recordCircuitResult(callErr)
		return callErr
	}

	statusCode := resp.StatusCode()
	if statusCode/100 != 2 {
		raw := strings.TrimSpace(truncateForLog(string(resp.Body()), 4096))
		if isWebhookRetryableStatus(statusCode) {
			callErr := fmt.Errorf(
				"%w: publish match result status=%d endpoint=%s body=%s",
				errWebhookTransient, statusCode, p.endpoint, raw,
			)
			p.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf("publish match result status=%d endpoint=%s body=%s", statusCode, p.endpoint, raw)
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "match result published", "match_id", event.MatchID, "season", event.Season)
	p.recordCircuitResult(nil)
	return nil
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func isWebhookRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildWebhookCurlPreview(endpoint, body string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(endpoint))
	if withToken {
		appendPart("-H")
		appendPart(shellQuote("Authorization: Bearer ***"))
	}
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
