// Package portal is the HTTP client for the Habitta portal REST API.
// All outbound calls pass through the gatekeeper Transport, which attaches
// the session's bearer token and reacts to authorization failures.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
	"github.com/arturbaldoramos/habitta-cli/internal/log"
)

// Client is the portal API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTransport installs a round tripper (normally the gatekeeper
// Transport) on the client.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// WithClientLogger sets the logger.
func WithClientLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a portal client for the given base URL
// (e.g. "http://localhost:8080").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.L()
	}
	return c
}

// envelope is the portal's success wrapper: {"data": ...}
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorResponse is the portal's failure wrapper: {"error", "message"}
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest performs a JSON request against the portal and decodes the
// "data" payload into out. Failures are classified per status code; a
// transport-level failure is reported as connectivity (status 0).
func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.logger.Debug("portal request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.FromStatus(0, "").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(errors.ErrCodeBadResponse, "failed to decode portal response", err)
	}
	if env.Data == nil {
		return errors.New(errors.ErrCodeBadResponse, "portal response is missing its data payload")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(errors.ErrCodeBadResponse, "failed to decode portal response", err)
	}

	return nil
}

// classifyError turns a non-2xx response into a classified PortalError,
// keeping the server-provided message when one is present.
func (c *Client) classifyError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp errorResponse
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			message = errResp.Message
		} else if errResp.Error != "" {
			message = errResp.Error
		}
	}

	perr := errors.FromStatus(resp.StatusCode, message)
	c.logger.Debug("portal request failed",
		"status", resp.StatusCode,
		"error_code", string(perr.Code),
	)
	return perr
}
