package api

import (
	"context"
	"errors"
	"time"
)

// RetryDoer is a decorator that retries transient failures with a
// bounded number of attempts.
type RetryDoer struct {
	inner  Doer
	config RetryConfig
}

// WithRetry wraps a Doer with retry logic.
func WithRetry(d Doer, cfg RetryConfig) Doer {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryDoer{inner: d, config: cfg}
}

func (r *RetryDoer) Do(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		resp, err := r.inner.Do(withAttempt(ctx, attempt), req)
		if err == nil {
			resp.Attempt = attempt
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt, no sleep.
		if attempt == r.config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	var transport *TransportError
	if errors.As(lastErr, &transport) {
		return nil, &NetworkUnavailableError{
			Endpoint: r.inner.Endpoint(),
			Attempts: r.config.MaxAttempts,
			Err:      lastErr,
		}
	}
	return nil, lastErr
}

func (r *RetryDoer) Endpoint() string {
	return r.inner.Endpoint()
}

// shouldRetry determines if an error is retryable. Only transport failures
// (including the per-attempt timeout) and 5xx responses are transient; the
// caller's own context errors, 4xx and undecodable bodies are not.
func shouldRetry(err error) bool {
	var transport *TransportError
	if errors.As(err, &transport) {
		return true
	}
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// backoff computes the wait after the given (1-based) failed attempt.
func (r *RetryDoer) backoff(attempt int) time.Duration {
	switch r.config.Policy {
	case BackoffExponential:
		return r.config.InitialWait << (attempt - 1)
	default:
		return r.config.InitialWait * time.Duration(attempt)
	}
}
