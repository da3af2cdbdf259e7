package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// MockGateway is a testify mock of the research gateway.  It satisfies the
// search and lookup ports of every application service.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Search(ctx context.Context, q research.SearchQuery) (*research.SearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*research.SearchResult), args.Error(1)
}

func (m *MockGateway) GetCourt(ctx context.Context, id string) (*research.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*research.Court), args.Error(1)
}

func (m *MockGateway) GetOpinion(ctx context.Context, id string) (*research.Opinion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*research.Opinion), args.Error(1)
}

func (m *MockGateway) GetOpinionCluster(ctx context.Context, id string) (*research.OpinionCluster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*research.OpinionCluster), args.Error(1)
}

func (m *MockGateway) GetDocket(ctx context.Context, id string) (*research.Docket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*research.Docket), args.Error(1)
}

func (m *MockGateway) GetJudge(ctx context.Context, id string) (*research.Judge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*research.Judge), args.Error(1)
}

func (m *MockGateway) ResolveCitation(ctx context.Context, text string) ([]research.CitationMatch, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]research.CitationMatch), args.Error(1)
}

// OfType matches a SearchQuery argument by resource type.
func OfType(rt research.ResourceType) interface{} {
	return mock.MatchedBy(func(q research.SearchQuery) bool { return q.Type == rt })
}
