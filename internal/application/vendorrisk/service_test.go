package vendorrisk

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appresearch "github.com/turtacn/LegalSpend-Research/internal/application/research"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/internal/testutil"
	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

type recordingMetrics struct {
	fallbacks []string
	scores    []int
	degraded  []bool
}

func (m *recordingMetrics) RecordFallback(op string) { m.fallbacks = append(m.fallbacks, op) }

func (m *recordingMetrics) RecordRiskAssessment(score int, degraded bool) {
	m.scores = append(m.scores, score)
	m.degraded = append(m.degraded, degraded)
}

func counted(rt research.ResourceType, count int, records ...research.Record) *research.SearchResult {
	if records == nil {
		records = []research.Record{}
	}
	return &research.SearchResult{Count: count, ResourceType: rt, Records: records}
}

func stubCounts(gw *testutil.MockGateway, opinions, registry int) {
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceOpinion)).Return(counted(research.ResourceOpinion, opinions), nil)
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceRegistryRecord)).Return(counted(research.ResourceRegistryRecord, registry), nil)
}

func date(s string) research.Date {
	d, err := research.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAssessVendorRisk_CleanVendor(t *testing.T) {
	gw := new(testutil.MockGateway)
	stubCounts(gw, 0, 0)
	m := &recordingMetrics{}

	profile, err := NewService(gw, nil, m).AssessVendorRisk(context.Background(), "Acme Legal Services")
	require.NoError(t, err)

	assert.Equal(t, "Acme Legal Services", profile.VendorName)
	assert.Equal(t, 0, profile.RiskScore)
	assert.Equal(t, research.LegalExposure{}, profile.LegalExposure)
	assert.NotNil(t, profile.PracticeAreas)
	assert.Empty(t, profile.PracticeAreas)
	assert.NotNil(t, profile.Jurisdictions)
	assert.Nil(t, profile.AverageMetrics.DurationDays)
	assert.False(t, profile.Degraded)
	assert.Equal(t, []int{0}, m.scores)
}

func TestAssessVendorRisk_Scores(t *testing.T) {
	cases := []struct {
		opinions, registry, want int
	}{
		{0, 0, 0},
		{10, 15, 50},
		{30, 40, 100},
		{25, 35, 100},
		{1, 0, 2},
		{24, 25, 98},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d+%d", tc.opinions, tc.registry), func(t *testing.T) {
			gw := new(testutil.MockGateway)
			stubCounts(gw, tc.opinions, tc.registry)

			profile, err := NewService(gw, nil, nil).AssessVendorRisk(context.Background(), "Vendor")
			require.NoError(t, err)
			assert.Equal(t, tc.want, profile.RiskScore)
			assert.Equal(t, tc.opinions, profile.OpinionCount)
			assert.Equal(t, tc.registry, profile.RegistryCount)
			assert.Equal(t, tc.registry, profile.LegalExposure.ActiveLitigation)
		})
	}
}

func TestAssessVendorRisk_Deterministic(t *testing.T) {
	gw := new(testutil.MockGateway)
	stubCounts(gw, 7, 9)
	svc := NewService(gw, nil, nil)

	first, err := svc.AssessVendorRisk(context.Background(), "Vendor")
	require.NoError(t, err)
	second, err := svc.AssessVendorRisk(context.Background(), "Vendor")
	require.NoError(t, err)
	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, research.RiskScore(7, 9), first.RiskScore)
}

func TestAssessVendorRisk_PhraseQueries(t *testing.T) {
	gw := new(testutil.MockGateway)
	phrase := func(rt research.ResourceType) interface{} {
		return mock.MatchedBy(func(q research.SearchQuery) bool {
			return q.Type == rt && q.Query == `"Acme Legal Services"` && q.OrderBy == research.OrderDateFiledDesc
		})
	}
	gw.On("Search", mock.Anything, phrase(research.ResourceOpinion)).Return(counted(research.ResourceOpinion, 0), nil).Once()
	gw.On("Search", mock.Anything, phrase(research.ResourceRegistryRecord)).Return(counted(research.ResourceRegistryRecord, 0), nil).Once()

	_, err := NewService(gw, nil, nil).AssessVendorRisk(context.Background(), `  "Acme Legal Services" `)
	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestAssessVendorRisk_QueriesAreNormalized(t *testing.T) {
	gw := new(testutil.MockGateway)
	var mu sync.Mutex
	var sent []research.SearchQuery
	gw.On("Search", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, args.Get(1).(research.SearchQuery))
	}).Return(counted(research.ResourceOpinion, 0), nil)

	_, err := NewService(gw, nil, nil).AssessVendorRisk(context.Background(), "Acme")
	require.NoError(t, err)

	require.Len(t, sent, 2)
	for _, q := range sent {
		again, err := appresearch.Normalize(q)
		require.NoError(t, err)
		assert.Equal(t, q, again, "query for %s is not in canonical form", q.Type)
	}
}

func TestAssessVendorRisk_ExtractsSetsAndAverages(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceOpinion)).Return(counted(research.ResourceOpinion, 2,
		&research.OpinionRecord{ClusterID: "1", Court: "Ninth Circuit", SuitNature: "Contract"},
		&research.OpinionRecord{ClusterID: "2", CourtID: "ca2", SuitNature: "Securities"},
	), nil)
	gw.On("Search", mock.Anything, testutil.OfType(research.ResourceRegistryRecord)).Return(counted(research.ResourceRegistryRecord, 3,
		&research.RegistryRecord{DocketID: "10", Court: "Ninth Circuit", SuitNature: "Contract", DateFiled: date("2024-01-01"), DateTerminated: date("2024-01-31")},
		&research.RegistryRecord{DocketID: "11", Court: "D. Del.", DateFiled: date("2024-02-01"), DateTerminated: date("2024-02-11")},
		&research.RegistryRecord{DocketID: "12", Court: "D. Del.", SuitNature: "Patent", DateFiled: date("2024-03-01")},
	), nil)

	profile, err := NewService(gw, nil, nil).AssessVendorRisk(context.Background(), "Vendor")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Contract", "Securities", "Patent"}, profile.PracticeAreas)
	assert.ElementsMatch(t, []string{"Ninth Circuit", "ca2", "D. Del."}, profile.Jurisdictions)
	require.NotNil(t, profile.AverageMetrics.DurationDays)
	assert.InDelta(t, 20.0, *profile.AverageMetrics.DurationDays, 1e-9)
	assert.Equal(t, 2, profile.AverageMetrics.DurationN)
	assert.Nil(t, profile.AverageMetrics.Cost)
	assert.Nil(t, profile.AverageMetrics.SuccessRate)
	assert.Equal(t, 10, profile.RiskScore)
}

func TestAssessVendorRisk_UnreachableServiceDegrades(t *testing.T) {
	gw := new(testutil.MockGateway)
	gw.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New(errors.CodeSearchFailure, "research search failed"))
	m := &recordingMetrics{}
	logger := testutil.NewMockLogger()

	svc := NewService(gw, logger, m)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	profile, err := svc.AssessVendorRisk(context.Background(), "Acme Legal Services")
	require.NoError(t, err)

	assert.Equal(t, 0, profile.RiskScore)
	assert.Equal(t, research.LegalExposure{}, profile.LegalExposure)
	assert.True(t, profile.Degraded)
	assert.Len(t, profile.Failures, 2)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), profile.AssessedAt)
	assert.Equal(t, []string{operation, operation}, m.fallbacks)
	assert.Equal(t, []bool{true}, m.degraded)

	warns := logger.MessagesAt(logging.LevelWarn)
	require.Len(t, warns, 2)
	for _, w := range warns {
		op, _ := w.Field(logging.FieldOperation)
		assert.Equal(t, operation, op)
	}
	infos := logger.MessagesAt(logging.LevelInfo)
	require.Len(t, infos, 1)
	vendor, _ := infos[0].Field(logging.FieldVendor)
	assert.Equal(t, "Acme Legal Services", vendor)
}

func TestAssessVendorRisk_EmptyName(t *testing.T) {
	gw := new(testutil.MockGateway)
	for _, name := range []string{"", "   ", `""`} {
		_, err := NewService(gw, nil, nil).AssessVendorRisk(context.Background(), name)
		assert.True(t, errors.IsValidation(err), "name %q: %v", name, err)
	}
	gw.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestPhraseQuery(t *testing.T) {
	assert.Equal(t, `"Acme"`, PhraseQuery(" Acme "))
	assert.Equal(t, `"Acme Corp"`, PhraseQuery(`Acme" Corp`))
}
