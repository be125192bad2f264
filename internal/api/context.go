package api

import "context"

type contextKey int

const (
	operationKey contextKey = iota
	attemptKey
)

// WithOperation attaches an operation label (e.g. "questions",
// "analyze-initial") to the context for request logging.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey, operation)
}

// OperationFrom extracts the operation label from the context.
func OperationFrom(ctx context.Context) string {
	if v, ok := ctx.Value(operationKey).(string); ok {
		return v
	}
	return "unknown"
}

func withAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, attemptKey, attempt)
}

// attemptFrom returns the 1-based attempt number set by the retry layer.
func attemptFrom(ctx context.Context) int {
	if v, ok := ctx.Value(attemptKey).(int); ok {
		return v
	}
	return 1
}
