package middleware

import "context"

type contextKey string

const (
	ctxPropertyID contextKey = "property_id"
	ctxRequestID  contextKey = "request_id"
)

func PropertyIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxPropertyID)
}

// WithPropertyID injects the property identifier into the context for downstream handlers.
func WithPropertyID(ctx context.Context, propertyID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPropertyID, propertyID)
}

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxRequestID)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
