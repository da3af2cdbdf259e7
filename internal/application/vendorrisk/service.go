// Package vendorrisk scores the litigation exposure of a named vendor.
package vendorrisk

import (
	"context"
	"sort"
	"strings"
	"time"

	appresearch "github.com/turtacn/LegalSpend-Research/internal/application/research"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

const operation = "vendor_risk"

// Recorder receives assessment and fallback metrics.
type Recorder interface {
	appresearch.FallbackRecorder
	RecordRiskAssessment(score int, degraded bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordFallback(string)          {}
func (noopRecorder) RecordRiskAssessment(int, bool) {}

// Service is the risk scorer.
type Service struct {
	fallback *appresearch.Fallback
	logger   logging.Logger
	metrics  Recorder
	now      func() time.Time
}

// NewService creates a Service over gateway.  logger and metrics may be nil.
func NewService(gateway appresearch.Gateway, logger logging.Logger, metrics Recorder) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	logger = logger.Named(operation)
	return &Service{
		fallback: appresearch.NewFallback(gateway, logger, metrics),
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// PhraseQuery quotes name for exact-phrase matching.  Embedded double quotes
// are dropped so they cannot end the phrase early.
func PhraseQuery(name string) string {
	return `"` + strings.ReplaceAll(strings.TrimSpace(name), `"`, "") + `"`
}

// AssessVendorRisk searches both corpora for vendorName and derives its risk
// profile.  Gateway failures degrade to zero exposure and set Degraded; the
// only errors are an empty vendor name and a query the normalizer rejects.
func (s *Service) AssessVendorRisk(ctx context.Context, vendorName string) (*research.VendorRiskProfile, error) {
	name := strings.TrimSpace(strings.ReplaceAll(vendorName, `"`, ""))
	if name == "" {
		return nil, errors.InvalidParam("vendor name is required")
	}

	base, err := appresearch.Normalize(research.SearchQuery{Query: PhraseQuery(name), OrderBy: research.OrderDateFiledDesc})
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

	profile := &research.VendorRiskProfile{
		VendorName:    name,
		OpinionCount:  results[0].Count,
		RegistryCount: results[1].Count,
		LegalExposure: research.LegalExposure{
			ActiveLitigation: results[1].Count,
		},
		PracticeAreas:  practiceAreas(opinions, dockets),
		Jurisdictions:  jurisdictions(opinions, dockets),
		AverageMetrics: averageMetrics(dockets),
		Degraded:       len(failures) > 0,
		Failures:       failures,
		AssessedAt:     s.now().UTC(),
	}
	profile.RiskScore = research.RiskScore(profile.OpinionCount, profile.RegistryCount)

	s.metrics.RecordRiskAssessment(profile.RiskScore, profile.Degraded)
	logging.ForContext(ctx, s.logger).Info("vendor risk assessed",
		logging.String(logging.FieldVendor, name),
		logging.Int("risk_score", profile.RiskScore),
		logging.Int("opinion_count", profile.OpinionCount),
		logging.Int("registry_count", profile.RegistryCount),
		logging.Bool("degraded", profile.Degraded),
	)
	return profile, nil
}

func practiceAreas(opinions []*research.OpinionRecord, dockets []*research.RegistryRecord) []string {
	set := make(map[string]struct{})
	for _, o := range opinions {
		add(set, o.SuitNature)
	}
	for _, d := range dockets {
		add(set, d.SuitNature)
	}
	return sortedKeys(set)
}

func jurisdictions(opinions []*research.OpinionRecord, dockets []*research.RegistryRecord) []string {
	set := make(map[string]struct{})
	for _, o := range opinions {
		add(set, firstNonEmpty(o.Court, o.CourtID))
	}
	for _, d := range dockets {
		add(set, firstNonEmpty(d.Court, d.CourtID))
	}
	return sortedKeys(set)
}

// averageMetrics averages filed-to-terminated duration over the dockets that
// carry both dates.  The registry exposes neither cost nor outcome, so those
// averages stay unset.
func averageMetrics(dockets []*research.RegistryRecord) research.AverageCaseMetrics {
	var m research.AverageCaseMetrics
	var total float64
	for _, d := range dockets {
		if days, ok := d.DateFiled.DaysUntil(d.DateTerminated); ok {
			total += days
			m.DurationN++
		}
	}
	if m.DurationN > 0 {
		avg := total / float64(m.DurationN)
		m.DurationDays = &avg
	}
	return m
}

func add(set map[string]struct{}, v string) {
	if v = strings.TrimSpace(v); v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
