package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// healthPath is the liveness probe, resolved against the root URL.
const healthPath = "/api/test/"

// Client is the uniform entry point to the collaborator. Every call is
// bounded by a timeout and retried on transient failure.
type Client struct {
	doer   Doer
	health Doer
}

// New builds a Client from configuration.
// Middleware order: caller → retry → logging → http.
func New(cfg Config, eventRepo store.EventRepo, httpClient *http.Client) *Client {
	base := NewHTTPDoer(httpClient, cfg.BaseURL, cfg.Timeout)
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	probe := WithLogging(NewHTTPDoer(httpClient, cfg.RootURL, cfg.HealthTimeout), eventRepo)

	return &Client{doer: retried, health: probe}
}

// NewWithDoer creates a Client over an existing Doer chain. The liveness
// probe uses the same Doer.
func NewWithDoer(d Doer) *Client {
	return &Client{doer: d, health: d}
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string {
	return c.doer.Endpoint()
}

// Do performs req and returns the raw JSON body of a successful reply.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Get performs a GET against path.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post performs a POST of body against path.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Health probes the collaborator once. It never retries and never fails;
// any error simply reports false.
func (c *Client) Health(ctx context.Context) bool {
	_, err := c.health.Do(WithOperation(ctx, "health"), Request{Method: http.MethodGet, Path: healthPath})
	return err == nil
}

// SystemStatus describes the collaborator's analysis engine.
type SystemStatus struct {
	LLMLoaded          bool   `json:"llm_loaded"`
	VectorStoreReady   bool   `json:"vector_store_ready"`
	KnowledgeBaseItems int    `json:"knowledge_base_items"`
	System             string `json:"system"`
	Version            string `json:"version"`
}

// SystemStatus fetches the collaborator's engine status.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	body, err := c.Get(WithOperation(ctx, "system-status"), "/system-status/")
	if err != nil {
		return nil, err
	}
	var st SystemStatus
	if err := json.Unmarshal(body, &st); err != nil {
		return nil, &InvalidResponseError{Content: body, Err: fmt.Errorf("decode system status: %w", err)}
	}
	return &st, nil
}
