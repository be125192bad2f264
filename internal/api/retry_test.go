package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		Policy:      BackoffLinear,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Body: json.RawMessage(`{"ok":true}`)},
	)
	d := WithRetry(mock, retryConfig())

	resp, err := d.Do(context.Background(), Request{Path: "/questions/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", resp.Body)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ServerErrorThenSuccess(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Err: &ServerError{Status: 503, Message: "unavailable"}},
		MockResponse{Err: &ServerError{Status: 503, Message: "unavailable"}},
		MockResponse{Body: json.RawMessage(`{"ok":true}`)},
	)
	d := WithRetry(mock, retryConfig())

	resp, err := d.Do(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Attempt != 3 {
		t.Fatalf("expected attempt 3, got %d", resp.Attempt)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ServerErrorExhausted(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Err: &ServerError{Status: 500, Message: "boom"}},
		MockResponse{Err: &ServerError{Status: 500, Message: "boom"}},
		MockResponse{Err: &ServerError{Status: 500, Message: "boom"}},
	)
	d := WithRetry(mock, retryConfig())

	_, err := d.Do(context.Background(), Request{})
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %T: %v", err, err)
	}
	if serverErr.Message != "boom" {
		t.Fatalf("unexpected message: %q", serverErr.Message)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_TransportExhaustedIsNetworkUnavailable(t *testing.T) {
	down := &TransportError{Err: errors.New("connection refused")}
	mock := NewMockDoer(
		MockResponse{Err: down},
		MockResponse{Err: down},
		MockResponse{Err: down},
	)
	d := WithRetry(mock, retryConfig())

	_, err := d.Do(context.Background(), Request{})
	if !IsNetworkUnavailable(err) {
		t.Fatalf("expected NetworkUnavailableError, got %T: %v", err, err)
	}
	var netErr *NetworkUnavailableError
	errors.As(err, &netErr)
	if netErr.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", netErr.Attempts)
	}
	want := "Unable to connect to the server at mock://innerbalance/api. Using offline mode."
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestRetry_ClientErrorNotRetried(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Err: &ClientError{Status: 400, Message: "missing answers"}},
	)
	d := WithRetry(mock, retryConfig())

	_, err := d.Do(context.Background(), Request{})
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected ClientError, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseNotRetried(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Err: &InvalidResponseError{Content: json.RawMessage("<html>"), Err: errors.New("not json")}},
	)
	d := WithRetry(mock, retryConfig())

	if _, err := d.Do(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Err: &ServerError{Status: 503}},
		MockResponse{Body: json.RawMessage(`{}`)},
	)
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	d := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := d.Do(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_SingleAttempt(t *testing.T) {
	mock := NewMockDoer(
		MockResponse{Err: &ServerError{Status: 502}},
		MockResponse{Body: json.RawMessage(`{}`)},
	)
	d := WithRetry(mock, RetryConfig{MaxAttempts: 0})

	if _, err := d.Do(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		policy  BackoffPolicy
		attempt int
		want    time.Duration
	}{
		{BackoffLinear, 1, 1 * time.Second},
		{BackoffLinear, 2, 2 * time.Second},
		{BackoffLinear, 3, 3 * time.Second},
		{BackoffExponential, 1, 1 * time.Second},
		{BackoffExponential, 2, 2 * time.Second},
		{BackoffExponential, 3, 4 * time.Second},
	}
	for _, tt := range tests {
		r := &RetryDoer{config: RetryConfig{MaxAttempts: 3, InitialWait: time.Second, Policy: tt.policy}}
		if got := r.backoff(tt.attempt); got != tt.want {
			t.Errorf("%s backoff(%d) = %v, want %v", tt.policy, tt.attempt, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ClientError{Status: 404}, "client"},
		{&ServerError{Status: 500}, "server"},
		{&TransportError{Err: errors.New("x"), Timeout: true}, "timeout"},
		{&TransportError{Err: errors.New("x")}, "network"},
		{&NetworkUnavailableError{Err: &TransportError{Err: errors.New("x")}}, "network-unavailable"},
		{&InvalidResponseError{Err: errors.New("x")}, "invalid-response"},
		{errors.New("x"), "other"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
