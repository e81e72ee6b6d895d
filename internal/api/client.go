package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/errors"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/telemetry"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/tokens"
)

var tracer = telemetry.GetTracer("nexus/client/api")

const defaultTimeout = 10 * time.Second

// Options configures the API client.
type Options struct {
	BaseURL string
	Timeout time.Duration

	// OnAuthExpired runs after a failed token refresh, once the persisted
	// tokens have been cleared. The CLI uses it to tell the user to log in
	// again; it is the terminal counterpart of a redirect to the login page.
	OnAuthExpired func()
}

// Client is the one configured transport for the job-board API. It attaches
// the bearer token from the token store to every request and performs a
// single refresh-and-retry cycle on 401 responses.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  tokens.Store
	logger  *zap.Logger

	onAuthExpired func()

	refresh refreshGroup
}

func NewClient(logger *zap.Logger, store tokens.Store, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	onExpired := opts.OnAuthExpired
	if onExpired == nil {
		onExpired = func() {}
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		client:        &http.Client{Timeout: timeout},
		tokens:        store,
		logger:        logger,
		onAuthExpired: onExpired,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FileURL resolves a server-relative file path (resume downloads) against
// the API root.
func (c *Client) FileURL(relativePath string) string {
	if !strings.HasPrefix(relativePath, "/") {
		relativePath = "/" + relativePath
	}
	return c.baseURL + relativePath
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", payload, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, "application/json", payload, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

// Upload sends a multipart request. Each entry of fields becomes one form
// field; the file is streamed into fileField under the given filename.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return errors.Internal("writing form field", err)
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return errors.Internal("creating form file", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Internal("copying file contents", err)
	}
	if err := writer.Close(); err != nil {
		return errors.Internal("finalizing multipart body", err)
	}

	return c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), buf.Bytes(), out)
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Internal("marshaling request body", err)
	}
	return payload, nil
}

// do issues one request, retrying exactly once after a successful token
// refresh when the first attempt comes back 401. The body is held as bytes
// so the retry can replay it.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out interface{}) error {
	ctx, span := tracer.Start(ctx, "Client.do")
	defer span.End()

	url := c.baseURL + path
	span.SetAttributes(
		telemetry.String("http.method", method),
		telemetry.String("http.url", url),
	)

	token, _ := c.tokens.Access()

	resp, err := c.attempt(ctx, method, url, contentType, body, token)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("failed to execute request",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return errors.Internal("executing request", err)
	}

	if resp.StatusCode != http.StatusUnauthorized {
		span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))
		return c.finish(resp, out)
	}

	origErr := c.errorFromResponse(resp)
	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))

	refreshToken, ok := c.tokens.Refresh()
	if !ok {
		c.logger.Debug("received 401 with no refresh token available",
			zap.String("url", url))
		return origErr
	}

	if err := c.refreshAccessToken(ctx, refreshToken); err != nil {
		c.logger.Warn("token refresh failed, clearing session",
			zap.String("url", url),
			zap.Error(err))
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear persisted tokens", zap.Error(clearErr))
		}
		c.onAuthExpired()
		return origErr
	}

	newToken, _ := c.tokens.Access()
	c.logger.Debug("retrying request with refreshed token",
		zap.String("method", method),
		zap.String("url", url))
	span.SetAttributes(telemetry.Bool("http.retried_after_refresh", true))

	resp, err = c.attempt(ctx, method, url, contentType, body, newToken)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("executing retried request", err)
	}

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))
	return c.finish(resp, out)
}

func (c *Client) attempt(ctx context.Context, method, url, contentType string, body []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.client.Do(req)
}

func (c *Client) finish(resp *http.Response, out interface{}) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("url", resp.Request.URL.String()))
		return c.errorFromResponse(resp)
	}

	defer c.closeBody(resp)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode response", zap.Error(err))
		return errors.Internal("decoding response", err)
	}

	return nil
}

// errorFromResponse drains and closes the body, building a DomainError from
// the status and the server payload's message field when present.
func (c *Client) errorFromResponse(resp *http.Response) error {
	defer c.closeBody(resp)

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(data, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}

	return errors.FromStatus(resp.StatusCode, message)
}

func (c *Client) closeBody(resp *http.Response) {
	if cerr := resp.Body.Close(); cerr != nil {
		c.logger.Warn("failed to close response body", zap.Error(cerr))
	}
}
