// Package analytics derives legal analytics snapshots from the opinion and
// registry corpora.  Gateway failures never escape ComputeAnalytics: a failed
// branch contributes an empty result and marks the snapshot degraded.
package analytics

import (
	"context"
	"strings"
	"time"

	appresearch "github.com/turtacn/LegalSpend-Research/internal/application/research"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

const (
	operation = "analytics"

	DefaultTopCitations = 10
	DefaultTopCourts    = 10
)

// Params scopes a snapshot.  Jurisdiction is a court id filter and
// PracticeArea a free-text filter; both are optional.
type Params struct {
	Jurisdiction string             `json:"jurisdiction,omitempty" form:"jurisdiction"`
	PracticeArea string             `json:"practice_area,omitempty" form:"practice_area"`
	Timeframe    research.Timeframe `json:"timeframe,omitempty" form:"timeframe"`
}

// Recorder receives snapshot and fallback metrics.
type Recorder interface {
	appresearch.FallbackRecorder
	RecordSnapshot(timeframe string, degraded bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordFallback(string)       {}
func (noopRecorder) RecordSnapshot(string, bool) {}

// Option configures a Service.
type Option func(*Service)

// WithTopCitations sets how many most-cited opinions a snapshot lists.
func WithTopCitations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topCitations = n
		}
	}
}

// WithTopCourts sets how many courts the ranking keeps.
func WithTopCourts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topCourts = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service is the analytics aggregator.
type Service struct {
	fallback     *appresearch.Fallback
	logger       logging.Logger
	metrics      Recorder
	topCitations int
	topCourts    int
	now          func() time.Time
}

// NewService creates a Service over gateway.  logger and metrics may be nil.
func NewService(gateway appresearch.Gateway, logger logging.Logger, metrics Recorder, opts ...Option) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	logger = logger.Named(operation)
	s := &Service{
		fallback:     appresearch.NewFallback(gateway, logger, metrics),
		logger:       logger,
		metrics:      metrics,
		topCitations: DefaultTopCitations,
		topCourts:    DefaultTopCourts,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeAnalytics builds a snapshot for p.  It fails only when p names an
// unknown timeframe; every sequence of the returned snapshot is non-nil.
func (s *Service) ComputeAnalytics(ctx context.Context, p Params) (*research.LegalAnalyticsSnapshot, error) {
	tf, ok := research.ParseTimeframe(string(p.Timeframe))
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidQuery, "unknown timeframe %q", string(p.Timeframe)).
			WithDetail("expected one of 1m, 3m, 6m, 1y")
	}

	snap := research.NewAnalyticsSnapshot(tf)
	snap.Jurisdiction = strings.TrimSpace(p.Jurisdiction)
	snap.PracticeArea = strings.TrimSpace(p.PracticeArea)
	now := s.now()
	snap.Start, snap.End = tf.Range(now)
	snap.GeneratedAt = now.UTC()

	base, err := appresearch.Normalize(research.SearchQuery{
		Query:       snap.PracticeArea,
		Court:       snap.Jurisdiction,
		FiledAfter:  snap.Start.String(),
		FiledBefore: snap.End.String(),
		OrderBy:     research.OrderDateFiledDesc,
	})
	if err != nil {
		return nil, err
	}
	opinionQ := base.Clone()
	opinionQ.Type = research.ResourceOpinion
	registryQ := base.Clone()
	registryQ.Type = research.ResourceRegistryRecord

	results, failures := s.fallback.SearchAll(ctx, operation, opinionQ, registryQ)
	opinions := results[0].Opinions()
	dockets := results[1].RegistryRecords()

	records := collect(opinions, dockets)
	periods := periodsBetween(snap.Start, snap.End, snap.Granularity)

	snap.TotalCases = results[0].Count + results[1].Count
	snap.SampleSize = len(records)
	snap.RecentTrends = trends(records, periods, snap.Granularity)
	snap.TopCourts = topCourts(records, snap.SampleSize, snap.TotalCases, s.topCourts)
	snap.CaseTypeDistribution = caseTypes(records, snap.SampleSize, snap.TotalCases)
	snap.CitationNetwork = citationNetwork(opinions, periods, snap.Granularity, s.topCitations)
	snap.Failures = failures
	snap.Degraded = len(failures) > 0

	s.metrics.RecordSnapshot(string(tf), snap.Degraded)
	logging.ForContext(ctx, s.logger).Info("analytics snapshot computed",
		logging.String("jurisdiction", snap.Jurisdiction),
		logging.String("practice_area", snap.PracticeArea),
		logging.String("timeframe", string(tf)),
		logging.Int("total_cases", snap.TotalCases),
		logging.Int("sample_size", snap.SampleSize),
		logging.Bool("degraded", snap.Degraded),
	)
	return snap, nil
}
