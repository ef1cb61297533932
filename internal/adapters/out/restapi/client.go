// Package restapi implements the remote service ports over the shared REST
// API: customers, boxes, orders, shipments and rates.
//
// All clients share one Client, which adds the bearer token, the
// Idempotency-Key header of create calls and the request timeout. Every
// failed call comes back as errs.RemoteCallError; a 404 on lookups becomes
// errs.ObjectNotFoundError.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shipping/internal/pkg/errs"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	// maxErrorBody bounds how much of a failed response ends up in the error.
	maxErrorBody = 512
)

// Client performs JSON calls against the remote API.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client for baseURL. An empty token sends no
// Authorization header; timeout bounds every call.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", fmt.Errorf("%q is not absolute", baseURL))
	}
	if timeout <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("timeout", timeout, "1ns", "unbounded")
	}

	return &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "restapi"),
	}, nil
}

// call describes one request.
type call struct {
	operation      string
	method         string
	path           string
	query          url.Values
	idempotencyKey string
	body           any
}

// do sends c and decodes a successful response into out, which may be nil.
func (cl *Client) do(ctx context.Context, c call, out any) error {
	req, err := cl.newRequest(ctx, c)
	if err != nil {
		return errs.NewRemoteCallErrorWithCause(c.operation, 0, err)
	}

	start := time.Now()
	resp, err := cl.http.Do(req)
	if err != nil {
		cl.logger.WarnContext(ctx, "Remote call failed", "operation", c.operation, "error", err)
		return errs.NewRemoteCallErrorWithCause(c.operation, 0, err)
	}
	defer resp.Body.Close()

	cl.logger.DebugContext(ctx, "Remote call",
		"operation", c.operation,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if msg := strings.TrimSpace(string(excerpt)); msg != "" {
			cause = errors.New(msg)
		}
		return errs.NewRemoteCallErrorWithCause(c.operation, resp.StatusCode, cause)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewRemoteCallErrorWithCause(c.operation, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (cl *Client) newRequest(ctx context.Context, c call) (*http.Request, error) {
	u := cl.baseURL.JoinPath(c.path)
	if len(c.query) > 0 {
		u.RawQuery = c.query.Encode()
	}

	var body io.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if c.idempotencyKey != "" {
		req.Header.Set(idempotencyKeyHeader, c.idempotencyKey)
	}
	return req, nil
}

// isNotFound reports whether err is a 404 from the remote API.
func isNotFound(err error) bool {
	var remote *errs.RemoteCallError
	return errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound
}
