package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shopsphere/storefront/config"
	"github.com/shopsphere/storefront/errors"
	"github.com/shopsphere/storefront/metrics"
)

// TokenSource supplies the bearer credential attached to every request once
// one is held. An empty string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client is the storefront API client: one base URL, JSON bodies, bearer
// authentication, no retries. Every store and service in this module goes
// through it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg *config.APIConfig, opts ...Option) *Client {

	client := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetTokenSource binds the session store after construction; the session
// store itself needs the client for login, so the wiring is two-step.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// errorResponse is the body shape the API uses for failures.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Error
}

// do issues one round trip and decodes the response into out when non-nil.
// endpoint is a fixed label for metrics, not the interpolated path.
func (c *Client) do(ctx context.Context, method, path, endpoint string, body, out any) error {

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.RequestError(0, "failed to encode request body").WithError(err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.RequestError(0, "failed to build request").WithError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestLogger := c.logger.With(
		slog.String("correlation_id", req.Header.Get("X-Request-ID")),
		slog.String("http_method", method),
		slog.String("http_path", path),
	)

	start := time.Now()

	metrics.RequestStarted()
	defer metrics.RequestFinished()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveRequest(method, endpoint, 0, time.Since(start))
		requestLogger.Warn("API call failed", slog.String("error", err.Error()))

		return errors.UnavailableError("the storefront API could not be reached").WithError(err)
	}

	defer resp.Body.Close()

	metrics.ObserveRequest(method, endpoint, resp.StatusCode, time.Since(start))
	requestLogger.Debug("API call completed",
		slog.Int("http_status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.RequestError(resp.StatusCode, "failed to read response body").WithError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {

		var errResp errorResponse
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

		if err := json.Unmarshal(data, &errResp); err == nil && errResp.text() != "" {
			message = errResp.text()
		}

		requestLogger.Warn("API returned an error",
			slog.Int("http_status", resp.StatusCode),
			slog.String("message", message),
		)

		return errors.FromStatus(resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.RequestError(resp.StatusCode, "failed to decode response body").WithError(err)
	}

	return nil
}
