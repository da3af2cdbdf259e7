package research

import (
	"context"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Service exposes the direct search operations.  Unlike the aggregate
// paths, a gateway failure is returned to the caller unchanged.
type Service struct {
	gateway Gateway
	logger  logging.Logger
}

// NewService creates a Service.
func NewService(gateway Gateway, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{gateway: gateway, logger: logger.Named("search")}
}

// SearchOpinions searches the opinion corpus.
func (s *Service) SearchOpinions(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error) {
	q.Type = research.ResourceOpinion
	return s.search(ctx, "search_opinions", q)
}

// SearchRegistryRecords searches the docket registry.
func (s *Service) SearchRegistryRecords(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error) {
	q.Type = research.ResourceRegistryRecord
	return s.search(ctx, "search_registry_records", q)
}

// SearchJudges searches the people corpus.
func (s *Service) SearchJudges(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error) {
	q.Type = research.ResourcePerson
	return s.search(ctx, "search_judges", q)
}

func (s *Service) search(ctx context.Context, operation string, q research.SearchQuery) (*research.SearchResult, error) {
	log := logging.ForContext(ctx, s.logger).With(
		logging.String(logging.FieldOperation, operation),
		logging.String(logging.FieldResource, string(q.Type)),
	)

	nq, err := Normalize(q)
	if err != nil {
		log.Debug("rejected search query", logging.Err(err))
		return nil, err
	}

	res, err := s.gateway.Search(ctx, nq)
	if err != nil {
		log.Error("search failed", logging.Err(err))
		return nil, err
	}
	if res == nil {
		res = research.EmptyResult(nq.Type)
	}
	log.Debug("search completed",
		logging.Int("count", res.Count),
		logging.Int("returned", len(res.Records)),
	)
	return res, nil
}
