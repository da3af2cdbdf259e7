package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalSpend-Research/internal/testutil"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

func TestService_SearchOpinionsNormalizes(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, research.SearchQuery{
		Query:      research.WildcardQuery,
		Type:       research.ResourceOpinion,
		FiledAfter: "2023-01-05",
	}).Return(&research.SearchResult{Count: 7, ResourceType: research.ResourceOpinion, Records: []research.Record{}}, nil)

	res, err := NewService(gw, nil).SearchOpinions(context.Background(), research.SearchQuery{FiledAfter: "2023-1-5"})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Count)
	gw.AssertExpectations(t)
}

func TestService_ForcesResourceType(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceRegistryRecord)).
		Return(research.EmptyResult(research.ResourceRegistryRecord), nil).Once()
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourcePerson)).
		Return(research.EmptyResult(research.ResourcePerson), nil).Once()
	svc := NewService(gw, nil)

	_, err := svc.SearchRegistryRecords(context.Background(), research.SearchQuery{Type: research.ResourcePerson})
	require.NoError(t, err)
	_, err = svc.SearchJudges(context.Background(), research.SearchQuery{Query: "sotomayor"})
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestService_PropagatesSearchFailure(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New(errors.CodeSearchFailure, "research search failed"))
	logger := testutil.NewMockLogger()

	res, err := NewService(gw, logger).SearchOpinions(context.Background(), research.SearchQuery{Query: "negligence"})
	assert.Nil(t, res)
	assert.True(t, errors.IsSearchFailure(err))
	assert.True(t, logger.HasMessage("error", "search failed"))
}

func TestService_InvalidQueryNeverReachesGateway(t *testing.T) {
	gw := new(testutil.MockGateway)

	_, err := NewService(gw, nil).SearchOpinions(context.Background(), research.SearchQuery{FiledBefore: "2023-02-30"})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidQuery))
	gw.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}
