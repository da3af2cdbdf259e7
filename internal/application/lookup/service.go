// Package lookup resolves single research entities by identifier.  Failures
// are returned unchanged; there is no placeholder entity.
package lookup

import (
	"context"
	"strings"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Gateway reads entities from the research API.  *client.Client satisfies it.
type Gateway interface {
	GetCourt(ctx context.Context, id string) (*research.Court, error)
	GetOpinion(ctx context.Context, id string) (*research.Opinion, error)
	GetOpinionCluster(ctx context.Context, id string) (*research.OpinionCluster, error)
	GetDocket(ctx context.Context, id string) (*research.Docket, error)
	GetJudge(ctx context.Context, id string) (*research.Judge, error)
	ResolveCitation(ctx context.Context, text string) ([]research.CitationMatch, error)
}

// Service proxies point lookups.
type Service struct {
	gateway Gateway
	logger  logging.Logger
}

// NewService creates a Service.
func NewService(gateway Gateway, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{gateway: gateway, logger: logger.Named("lookup")}
}

func (s *Service) GetCourt(ctx context.Context, id string) (*research.Court, error) {
	return get(ctx, s, "court", id, s.gateway.GetCourt)
}

func (s *Service) GetOpinion(ctx context.Context, id string) (*research.Opinion, error) {
	return get(ctx, s, "opinion", id, s.gateway.GetOpinion)
}

func (s *Service) GetOpinionCluster(ctx context.Context, id string) (*research.OpinionCluster, error) {
	return get(ctx, s, "cluster", id, s.gateway.GetOpinionCluster)
}

func (s *Service) GetDocket(ctx context.Context, id string) (*research.Docket, error) {
	return get(ctx, s, "docket", id, s.gateway.GetDocket)
}

func (s *Service) GetJudge(ctx context.Context, id string) (*research.Judge, error) {
	return get(ctx, s, "judge", id, s.gateway.GetJudge)
}

// ResolveCitation matches the citations found in text against known clusters.
func (s *Service) ResolveCitation(ctx context.Context, text string) ([]research.CitationMatch, error) {
	matches, err := s.gateway.ResolveCitation(ctx, text)
	if err != nil {
		logging.ForContext(ctx, s.logger).Warn("citation lookup failed", logging.Err(err))
		return nil, err
	}
	if matches == nil {
		matches = []research.CitationMatch{}
	}
	return matches, nil
}

// get trims id and rejects ids that would change the request path before
// any gateway call.
func get[T any](ctx context.Context, s *Service, entity, id string, fetch func(context.Context, string) (*T, error)) (*T, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return nil, errors.InvalidParam("invalid " + entity + " id").WithDetail(id)
	}
	v, err := fetch(ctx, id)
	if err != nil {
		logging.ForContext(ctx, s.logger).Warn("entity lookup failed",
			logging.String("entity", entity),
			logging.String("id", id),
			logging.Err(err),
		)
		return nil, err
	}
	return v, nil
}
