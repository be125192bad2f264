package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// LoggingDoer is a decorator that records every attempt as a request event.
type LoggingDoer struct {
	inner     Doer
	eventRepo store.EventRepo
}

// WithLogging wraps a Doer with event logging. A nil repo disables logging.
func WithLogging(d Doer, repo store.EventRepo) Doer {
	if repo == nil {
		return d
	}
	return &LoggingDoer{inner: d, eventRepo: repo}
}

func (l *LoggingDoer) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Do(ctx, req)

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	data := store.RequestEventData{
		Operation: OperationFrom(ctx),
		Method:    method,
		Endpoint:  l.inner.Endpoint(),
		Path:      req.Path,
		Attempt:   attemptFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Status = resp.Status
		data.RequestID = resp.RequestID
	}
	if err != nil {
		data.Status = statusOf(err)
		data.ErrorKind = Kind(err)
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingDoer) Endpoint() string {
	return l.inner.Endpoint()
}

func statusOf(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Status
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Status
	}
	return 0
}
