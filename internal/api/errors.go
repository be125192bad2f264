package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ClientError indicates the collaborator rejected the request (4xx).
// It is terminal and never retried.
type ClientError struct {
	Status  int
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError indicates the collaborator failed to serve the request (5xx).
// It is transient and retried.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError indicates a single attempt never produced an HTTP response:
// connection refused, DNS failure, or the per-attempt timeout fired.
type TransportError struct {
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NetworkUnavailableError is returned once every attempt has failed at the
// transport level. Callers use it to choose offline behavior.
type NetworkUnavailableError struct {
	Endpoint string
	Attempts int
	Err      error
}

func (e *NetworkUnavailableError) Error() string {
	return fmt.Sprintf("Unable to connect to the server at %s. Using offline mode.", e.Endpoint)
}

func (e *NetworkUnavailableError) Unwrap() error { return e.Err }

// InvalidResponseError indicates a 2xx response whose body was not JSON.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// IsNetworkUnavailable reports whether err is, or wraps, a NetworkUnavailableError.
func IsNetworkUnavailable(err error) bool {
	var netErr *NetworkUnavailableError
	return errors.As(err, &netErr)
}

// Kind returns a short label for err, used in the request log.
func Kind(err error) string {
	var (
		clientErr  *ClientError
		serverErr  *ServerError
		transport  *TransportError
		netErr     *NetworkUnavailableError
		invalidErr *InvalidResponseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return "network-unavailable"
	case errors.As(err, &transport):
		if transport.Timeout {
			return "timeout"
		}
		return "network"
	case errors.As(err, &clientErr):
		return "client"
	case errors.As(err, &serverErr):
		return "server"
	case errors.As(err, &invalidErr):
		return "invalid-response"
	default:
		return "other"
	}
}
