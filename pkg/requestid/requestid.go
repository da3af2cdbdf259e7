// Package requestid carries a correlation id through a context so the id of
// an inbound request can be forwarded on the outbound calls it causes.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the id travels in.
const Header = "X-Request-ID"

type key struct{}

// NewContext returns ctx carrying id.  An empty id leaves ctx unchanged.
func NewContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, key{}, id)
}

// FromContext returns the id stored by NewContext, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(key{}).(string)
	return id
}

// FromContextOrNew returns the id on ctx, or a fresh uuid when there is none.
func FromContextOrNew(ctx context.Context) string {
	if id := FromContext(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
