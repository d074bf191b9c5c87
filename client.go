// Package cbir is a client for a remote content-based image retrieval
// server. It exposes one method per server operation; every call performs a
// single HTTP round trip and returns either a typed result or an error
// classified by the server's own failure vocabulary.
package cbir

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/cbir-client/internal/logging"
	"github.com/example/cbir-client/protocol"
)

// Content types attached to request bodies.
const (
	contentTypeJSON = "application/json"
	contentTypeJPEG = "image/jpeg"
	contentTypeText = "text/plain; charset=utf-8"
)

// Client talks to a single CBIR server. It holds no mutable state beyond
// its configuration, so a single instance is safe for concurrent use.
type Client struct {
	endpoint   Endpoint
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Timeouts, retries and
// connection pooling are entirely the transport's concern; the library adds
// no policy of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger enables structured logging of every round trip. The default
// logger is a no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the default endpoint, http://localhost:4212.
func New(opts ...Option) *Client {
	return NewWithEndpoint(DefaultEndpoint(), opts...)
}

// NewWithHost returns a client for the given host and port, over HTTPS when
// useTLS is set.
func NewWithHost(host string, port int, useTLS bool, opts ...Option) *Client {
	return NewWithEndpoint(NewEndpoint(host, port, useTLS), opts...)
}

// NewWithEndpoint returns a client for an explicit endpoint.
func NewWithEndpoint(endpoint Endpoint, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		baseURL:    endpoint.BaseURL(),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("cbir_client")
	return c
}

// Endpoint reports the server address the client was constructed with.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// dispatch performs exactly one HTTP round trip: it builds the request from
// the configured endpoint, reads the whole reply, and decodes the response
// envelope. Transport failures are returned as the http client produced
// them; an unintelligible body is a protocol.DecodeError.
func (c *Client) dispatch(ctx context.Context, operation, method, path string, body []byte, contentType string) ([]byte, protocol.Envelope, error) {
	requestID := uuid.NewString()
	opLogger := logging.WithOperation(c.logger, operation, requestID)
	opLogger.Debug("dispatching request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("body_bytes", len(body)))

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		opLogger.Error("failed to build request", zap.Error(err))
		return nil, protocol.Envelope{}, logging.NewOperationError(operation, requestID, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		opLogger.Error("request failed", zap.Error(err))
		return nil, protocol.Envelope{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		opLogger.Error("failed to read response body", zap.Error(err))
		return nil, protocol.Envelope{}, err
	}

	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		opLogger.Error("failed to decode response", zap.Error(err))
		return nil, protocol.Envelope{}, err
	}

	opLogger.Debug("received response",
		zap.String("response_type", env.Type),
		zap.Int("status", resp.StatusCode))
	return data, env, nil
}

// call runs the full build-dispatch-verify sequence shared by every
// operation and hands back the raw body for payload extraction.
func (c *Client) call(ctx context.Context, operation, method, path string, body []byte, contentType, expected string) ([]byte, error) {
	data, env, err := c.dispatch(ctx, operation, method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	if err := protocol.Verify(expected, env); err != nil {
		logging.WithOperation(c.logger, operation, "").Warn("server reported failure",
			zap.String("response_type", env.Type),
			zap.Error(err))
		return nil, err
	}
	return data, nil
}

// callJSON is call with a JSON-marshaled request body.
func (c *Client) callJSON(ctx context.Context, operation, method, path string, payload any, expected string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, logging.NewOperationError(operation, "", err)
	}
	return c.call(ctx, operation, method, path, body, contentTypeJSON, expected)
}
