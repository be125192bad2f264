package assessment

import "github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"

// Source records where a payload came from.
type Source int

const (
	SourceRemote Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "remote"
}

// Result is the outcome of a domain operation. Payload is always usable;
// Reason holds the failure that forced a fallback, if any.
type Result[T any] struct {
	Payload T
	Source  Source
	Reason  error
}

// Ok wraps a payload received from the collaborator.
func Ok[T any](payload T) Result[T] {
	return Result[T]{Payload: payload, Source: SourceRemote}
}

// Fallback wraps a locally computed payload and the reason it was needed.
func Fallback[T any](payload T, reason error) Result[T] {
	return Result[T]{Payload: payload, Source: SourceFallback, Reason: reason}
}

// IsFallback reports whether the payload was computed locally.
func (r Result[T]) IsFallback() bool {
	return r.Source == SourceFallback
}

// Offline reports whether the fallback was caused by the collaborator
// being unreachable.
func (r Result[T]) Offline() bool {
	return r.IsFallback() && api.IsNetworkUnavailable(r.Reason)
}
