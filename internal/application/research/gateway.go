// Package research holds the inbound search operations of the engine: the
// query normalizer, the fallback policy that aggregate paths wrap around the
// gateway, and the search service used by the HTTP and CLI surfaces.
package research

import (
	"context"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Gateway issues one search request per call.  Every failure is reported as
// a single AppError with code SearchFailure.  *client.Client satisfies it.
type Gateway interface {
	Search(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error)
}

// FallbackRecorder counts degraded calls.  *prometheus.EngineMetrics
// satisfies it.
type FallbackRecorder interface {
	RecordFallback(operation string)
}

type noopRecorder struct{}

func (noopRecorder) RecordFallback(string) {}
