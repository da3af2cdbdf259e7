package research

import (
	"context"
	"fmt"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/fn"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Fallback wraps gateway searches for the aggregate paths.  A failed call is
// logged, counted and replaced by an empty result of the requested resource
// type; the failure is handed back as a FailureNote instead of an error.
type Fallback struct {
	gateway Gateway
	logger  logging.Logger
	metrics FallbackRecorder
}

// NewFallback creates a Fallback.  A nil logger or recorder disables that
// side effect.
func NewFallback(gateway Gateway, logger logging.Logger, metrics FallbackRecorder) *Fallback {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &Fallback{gateway: gateway, logger: logger, metrics: metrics}
}

// Search runs q through the gateway.  It never fails: the returned result is
// always non-nil, and the note is non-nil exactly when the result is a
// substitute.  A panicking gateway also degrades.
func (f *Fallback) Search(ctx context.Context, operation string, q research.SearchQuery) (*research.SearchResult, *research.FailureNote) {
	results, notes := f.SearchAll(ctx, operation, q)
	if len(notes) > 0 {
		return results[0], &notes[0]
	}
	return results[0], nil
}

// SearchAll runs every query concurrently and settles each one on its own:
// results[i] answers queries[i], a failed branch is replaced by an empty
// result and reported in notes, and no branch cancels another.
func (f *Fallback) SearchAll(ctx context.Context, operation string, queries ...research.SearchQuery) ([]*research.SearchResult, []research.FailureNote) {
	branches := make([]func(context.Context) (*research.SearchResult, error), len(queries))
	for i, q := range queries {
		q := q
		branches[i] = func(ctx context.Context) (*research.SearchResult, error) {
			return f.gateway.Search(ctx, q)
		}
	}

	settled := fn.Settle(ctx, branches...)
	results := make([]*research.SearchResult, len(queries))
	notes := []research.FailureNote{}
	for i, r := range settled {
		res, note := f.resolve(ctx, operation, resourceOf(queries[i]), r)
		results[i] = res
		if note != nil {
			notes = append(notes, *note)
		}
	}
	return results, notes
}

func (f *Fallback) resolve(ctx context.Context, operation string, rt research.ResourceType, r fn.Result[*research.SearchResult]) (*research.SearchResult, *research.FailureNote) {
	res, err := r.Unwrap()
	if err == nil && res == nil {
		err = fmt.Errorf("research gateway returned no result")
	}
	if err != nil {
		return f.degrade(ctx, operation, rt, err)
	}
	if res.Records == nil {
		res.Records = []research.Record{}
	}
	return res, nil
}

func resourceOf(q research.SearchQuery) research.ResourceType {
	if q.Type == "" {
		return research.ResourceOpinion
	}
	return q.Type
}

func (f *Fallback) degrade(ctx context.Context, operation string, rt research.ResourceType, cause error) (*research.SearchResult, *research.FailureNote) {
	logging.ForContext(ctx, f.logger).Warn("research call degraded to empty result",
		logging.String(logging.FieldOperation, operation),
		logging.String(logging.FieldResource, string(rt)),
		logging.Err(cause),
	)
	f.metrics.RecordFallback(operation)
	return research.EmptyResult(rt), &research.FailureNote{
		Operation: operation,
		Resource:  rt,
		Reason:    cause.Error(),
	}
}
