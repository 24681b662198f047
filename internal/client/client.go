// Package client talks to the tracker HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/platform/logging"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RequestIDHeader     = "X-Request-ID"
	AuthorizationHeader = "Authorization"
)

type requestIDKey struct{}

// WithRequestID attaches a request id that is forwarded in the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestError is returned for non-2xx responses and transport failures.
// Message is the human-readable text shown to the user.
type RequestError struct {
	Op         string
	StatusCode int // 0 for transport failures
	Message    string
	Kind       error // sentinel the error unwraps to besides ErrRequestFailed
	Err        error // underlying transport or decode error, if any
}

func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RequestError) Unwrap() []error {
	errs := []error{common.ErrRequestFailed}
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Client is a typed wrapper around the tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client. If httpClient is nil a client with the given timeout is used.
func New(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logging.GetLogger("client"),
	}
}

// call describes one API round trip.
type call struct {
	op      string
	method  string
	path    string
	token   string
	body    interface{}
	out     interface{}
	failMsg string
	kind    error
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", cl.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", cl.op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cl.token != "" {
		req.Header.Set(AuthorizationHeader, "Bearer "+cl.token)
	}

	requestID, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "request failed", "op", cl.op, "requestId", requestID, "error", err)
		return &RequestError{Op: cl.op, Message: cl.failMsg, Kind: cl.kind, Err: err}
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "request done",
		"op", cl.op, "status", resp.StatusCode, "requestId", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &RequestError{Op: cl.op, StatusCode: resp.StatusCode, Message: cl.failMsg, Kind: cl.kind}
	}

	if cl.out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return &RequestError{Op: cl.op, StatusCode: resp.StatusCode, Message: cl.failMsg, Kind: cl.kind,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// Message extracts the user-facing text from err, or returns fallback.
func Message(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
