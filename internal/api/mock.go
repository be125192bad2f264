package api

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned reply for the MockDoer.
type MockResponse struct {
	Status int
	Body   json.RawMessage
	Err    error
}

// MockDoer is a deterministic Doer for testing.
// It returns canned responses in FIFO order and records all requests.
type MockDoer struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

var _ Doer = (*MockDoer)(nil)

// NewMockDoer creates a MockDoer with the given canned responses.
func NewMockDoer(responses ...MockResponse) *MockDoer {
	return &MockDoer{responses: responses}
}

// Do returns the next canned response, or a NetworkUnavailableError once
// the queue is empty.
func (m *MockDoer) Do(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &NetworkUnavailableError{Endpoint: m.Endpoint()}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	status := resp.Status
	if status == 0 {
		status = 200
	}
	return &Response{Status: status, Body: resp.Body, Attempt: 1}, nil
}

// Endpoint returns a fixed mock URL.
func (m *MockDoer) Endpoint() string {
	return "mock://innerbalance/api"
}

// CallCount returns the number of Do calls made.
func (m *MockDoer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
