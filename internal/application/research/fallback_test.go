package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/internal/testutil"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

type countingRecorder struct{ ops []string }

func (r *countingRecorder) RecordFallback(op string) { r.ops = append(r.ops, op) }

type panickingGateway struct{}

func (panickingGateway) Search(context.Context, research.SearchQuery) (*research.SearchResult, error) {
	panic("boom")
}

func TestFallback_PassesThroughSuccess(t *testing.T) {
	gw := new(testutil.MockGateway)
	want := &research.SearchResult{Count: 1, ResourceType: research.ResourceOpinion, Records: []research.Record{
		&research.OpinionRecord{ClusterID: "1"},
	}}
	gw.On("Search", mock.Anything, mock.Anything).Return(want, nil)
	rec := &countingRecorder{}

	res, note := NewFallback(gw, nil, rec).Search(context.Background(), "analytics", research.SearchQuery{Type: research.ResourceOpinion})
	assert.Nil(t, note)
	assert.Same(t, want, res)
	assert.Empty(t, rec.ops)
}

func TestFallback_DegradesOnSearchFailure(t *testing.T) {
	gw := new(testutil.MockGateway)
	cause := errors.New(errors.CodeSearchFailure, "research search failed").WithDetail("resource=registry-record status=503")
	gw.On("Search", mock.Anything, mock.Anything).Return(nil, cause)
	logger := testutil.NewMockLogger()
	rec := &countingRecorder{}

	res, note := NewFallback(gw, logger, rec).Search(context.Background(), "vendor_risk", research.SearchQuery{Type: research.ResourceRegistryRecord})

	require.NotNil(t, res)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, research.ResourceRegistryRecord, res.ResourceType)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)

	require.NotNil(t, note)
	assert.Equal(t, "vendor_risk", note.Operation)
	assert.Equal(t, research.ResourceRegistryRecord, note.Resource)
	assert.Contains(t, note.Reason, "status=503")

	assert.Equal(t, []string{"vendor_risk"}, rec.ops)

	warns := logger.MessagesAt(logging.LevelWarn)
	require.Len(t, warns, 1)
	op, _ := warns[0].Field(logging.FieldOperation)
	rt, _ := warns[0].Field(logging.FieldResource)
	logged, hasErr := warns[0].Field("error")
	assert.Equal(t, "vendor_risk", op)
	assert.Equal(t, "registry-record", rt)
	assert.True(t, hasErr)
	assert.Equal(t, cause.Error(), logged)
}

func TestFallback_NilResultDegrades(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, mock.Anything).Return(nil, nil)

	res, note := NewFallback(gw, nil, nil).Search(context.Background(), "analytics", research.SearchQuery{})
	require.NotNil(t, note)
	assert.Equal(t, research.ResourceOpinion, res.ResourceType)
	assert.Equal(t, research.ResourceOpinion, note.Resource)
}

func TestFallback_NilRecordsBecomeEmpty(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, mock.Anything).Return(&research.SearchResult{Count: 3, ResourceType: research.ResourcePerson}, nil)

	res, note := NewFallback(gw, nil, nil).Search(context.Background(), "judges", research.SearchQuery{Type: research.ResourcePerson})
	assert.Nil(t, note)
	assert.NotNil(t, res.Records)
	assert.Equal(t, 3, res.Count)
}

func TestFallback_RecoversPanic(t *testing.T) {
	rec := &countingRecorder{}
	var res *research.SearchResult
	var note *research.FailureNote
	assert.NotPanics(t, func() {
		res, note = NewFallback(panickingGateway{}, nil, rec).Search(context.Background(), "analytics", research.SearchQuery{})
	})
	require.NotNil(t, note)
	assert.Contains(t, note.Reason, "boom")
	assert.Equal(t, 0, res.Count)
	assert.Len(t, rec.ops, 1)
}

func TestFallback_LogsRequestID(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New(errors.CodeSearchFailure, "down"))
	logger := testutil.NewMockLogger()

	ctx := logging.WithRequestID(context.Background(), "req-42")
	NewFallback(gw, logger, nil).Search(ctx, "analytics", research.SearchQuery{})

	warns := logger.MessagesAt(logging.LevelWarn)
	require.Len(t, warns, 1)
	id, ok := warns[0].Field(logging.FieldRequestID)
	assert.True(t, ok)
	assert.Equal(t, "req-42", id)
}

func TestFallback_SearchAllSettlesEachBranch(t *testing.T) {
	gw := new(testutil.MockGateway)
	opinions := &research.SearchResult{Count: 2, ResourceType: research.ResourceOpinion, Records: []research.Record{}}
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceOpinion)).Return(opinions, nil)
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceRegistryRecord)).
		Return(nil, errors.New(errors.CodeSearchFailure, "research search failed"))
	rec := &countingRecorder{}

	results, notes := NewFallback(gw, nil, rec).SearchAll(context.Background(), "analytics",
		research.SearchQuery{Type: research.ResourceOpinion},
		research.SearchQuery{Type: research.ResourceRegistryRecord},
	)

	require.Len(t, results, 2)
	assert.Same(t, opinions, results[0])
	assert.Equal(t, research.ResourceRegistryRecord, results[1].ResourceType)
	assert.Equal(t, 0, results[1].Count)
	require.Len(t, notes, 1)
	assert.Equal(t, research.ResourceRegistryRecord, notes[0].Resource)
	assert.Equal(t, []string{"analytics"}, rec.ops)
}

func TestFallback_SearchAllNoQueries(t *testing.T) {
	results, notes := NewFallback(new(testutil.MockGateway), nil, nil).SearchAll(context.Background(), "analytics")
	assert.Empty(t, results)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}
