package logging

import (
	"context"

	"github.com/turtacn/LegalSpend-Research/pkg/requestid"
)

// Canonical field keys.
const (
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldResource  = "resource_type"
	FieldVendor    = "vendor"
)

// WithRequestID stores the inbound request id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return requestid.NewContext(ctx, id)
}

// RequestIDFromContext returns the id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return requestid.FromContext(ctx)
}

// ForContext returns l with the request id of ctx attached, if any.
func ForContext(ctx context.Context, l Logger) Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.With(String(FieldRequestID, id))
	}
	return l
}
