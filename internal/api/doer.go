package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Doer performs a single logical request against the collaborator.
// Decorators (retry, logging) wrap a Doer and return a Doer.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)

	// Endpoint returns the base URL requests are resolved against.
	Endpoint() string
}

// Request describes one call to the collaborator.
type Request struct {
	// Method is the HTTP method. Empty means GET.
	Method string

	// Path is resolved against the Doer's endpoint unless it is an absolute URL.
	Path string

	// Body is encoded as JSON when non-nil.
	Body any

	// Headers are merged over the defaults.
	Headers map[string]string
}

// Response holds a successful (2xx) reply.
type Response struct {
	Status    int
	Body      json.RawMessage
	RequestID string
	Attempt   int
}

// HTTPDoer performs exactly one attempt per Do call.
type HTTPDoer struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

var _ Doer = (*HTTPDoer)(nil)

// NewHTTPDoer creates a Doer that resolves paths against endpoint and aborts
// each attempt after timeout. A nil client uses http.DefaultClient.
func NewHTTPDoer(client *http.Client, endpoint string, timeout time.Duration) *HTTPDoer {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDoer{
		client:   client,
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  timeout,
	}
}

func (d *HTTPDoer) Endpoint() string {
	return d.endpoint
}

func (d *HTTPDoer) Do(ctx context.Context, r Request) (*Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, method, d.resolve(r.Path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		// The caller gave up; that is not a collaborator failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{
			Err:     err,
			Timeout: errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded),
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err), Timeout: errors.Is(err, context.DeadlineExceeded)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(data, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, &ClientError{Status: resp.StatusCode, Message: msg}
		}
		return nil, &ServerError{Status: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(data)) == 0 || !json.Valid(data) {
		return nil, &InvalidResponseError{
			Content: data,
			Err:     fmt.Errorf("%s %s returned a non-JSON body", method, r.Path),
		}
	}

	return &Response{
		Status:    resp.StatusCode,
		Body:      json.RawMessage(data),
		RequestID: requestID,
		Attempt:   1,
	}, nil
}

func (d *HTTPDoer) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return d.endpoint + path
}

// errorMessage extracts the server-supplied message from an error body,
// preferring "error" over "detail".
func errorMessage(body []byte, status int) string {
	var payload struct {
		Error  any `json:"error"`
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
		if s, ok := payload.Detail.(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}
