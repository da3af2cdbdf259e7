package research

import "time"

// Timeframe is the look-back window of an analytics snapshot.
type Timeframe string

const (
	Timeframe1M Timeframe = "1m"
	Timeframe3M Timeframe = "3m"
	Timeframe6M Timeframe = "6m"
	Timeframe1Y Timeframe = "1y"

	DefaultTimeframe = Timeframe1Y
)

// Granularity is the period width of trend buckets.
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseTimeframe returns DefaultTimeframe for "" and false for unknown values.
func ParseTimeframe(s string) (Timeframe, bool) {
	switch tf := Timeframe(s); tf {
	case "":
		return DefaultTimeframe, true
	case Timeframe1M, Timeframe3M, Timeframe6M, Timeframe1Y:
		return tf, true
	}
	return "", false
}

// Range resolves the timeframe into an inclusive [start, end] date pair
// ending on the calendar date of now.  A start day past the end of its month
// is clamped to that month's last day, so 1m before March 31 is February 29.
func (t Timeframe) Range(now time.Time) (Date, Date) {
	end := NewDate(now)
	months := 12
	switch t {
	case Timeframe1M:
		months = 1
	case Timeframe3M:
		months = 3
	case Timeframe6M:
		months = 6
	}
	return NewDate(monthsBefore(end.Time, months)), end
}

func monthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// Granularity is weekly for one month and monthly otherwise.
func (t Timeframe) Granularity() Granularity {
	if t == Timeframe1M {
		return GranularityWeek
	}
	return GranularityMonth
}

// TrendBucket is the case volume of one period.  AverageDurationDays is the
// mean filed-to-terminated span of the bucket's records that carry both
// dates, or 0 when none do.
type TrendBucket struct {
	Period              string  `json:"period"`
	CaseCount           int     `json:"case_count"`
	AverageDurationDays float64 `json:"average_duration_days"`
}

// CourtShare is one entry of the top-court ranking.  Percentage is the share
// of the examined sample; ShareOfTotal is the same count over TotalCases.
type CourtShare struct {
	Court        string  `json:"court"`
	CaseCount    int     `json:"case_count"`
	Percentage   float64 `json:"percentage"`
	ShareOfTotal float64 `json:"share_of_total"`
}

// CaseTypeShare is one entry of the case-type distribution.  The two shares
// follow CourtShare.
type CaseTypeShare struct {
	CaseType     string  `json:"case_type"`
	CaseCount    int     `json:"case_count"`
	Percentage   float64 `json:"percentage"`
	ShareOfTotal float64 `json:"share_of_total"`
}

// CitedOpinion is one of the most cited opinion clusters.
type CitedOpinion struct {
	ClusterID     string `json:"cluster_id"`
	CaseName      string `json:"case_name"`
	Court         string `json:"court"`
	DateFiled     Date   `json:"date_filed"`
	CitationCount int    `json:"citation_count"`
}

// CitationTrendPoint is the citation total of the opinions filed in one
// period.
type CitationTrendPoint struct {
	Period    string `json:"period"`
	Citations int    `json:"citations"`
}

// CitationNetwork holds the most cited opinions and the citation trend.
type CitationNetwork struct {
	MostCited []CitedOpinion       `json:"most_cited"`
	Trend     []CitationTrendPoint `json:"citation_trend"`
}

// FailureNote records one branch that degraded to an empty result.
type FailureNote struct {
	Operation string       `json:"operation"`
	Resource  ResourceType `json:"resource"`
	Reason    string       `json:"reason"`
}

// LegalAnalyticsSnapshot is recomputed on every call.  Every slice is
// non-nil.  TotalCases is the match count reported by the service and
// SampleSize the number of records actually examined, at most one page per
// corpus.  Each share is reported twice: Percentage over SampleSize, which sums
// to 100, and ShareOfTotal over TotalCases, which understates every share
// whenever the service matched more records than one page holds.
type LegalAnalyticsSnapshot struct {
	Jurisdiction         string          `json:"jurisdiction,omitempty"`
	PracticeArea         string          `json:"practice_area,omitempty"`
	Timeframe            Timeframe       `json:"timeframe"`
	Granularity          Granularity     `json:"granularity"`
	Start                Date            `json:"start"`
	End                  Date            `json:"end"`
	TotalCases           int             `json:"total_cases"`
	SampleSize           int             `json:"sample_size"`
	RecentTrends         []TrendBucket   `json:"recent_trends"`
	TopCourts            []CourtShare    `json:"top_courts"`
	CaseTypeDistribution []CaseTypeShare `json:"case_type_distribution"`
	CitationNetwork      CitationNetwork `json:"citation_network"`
	Degraded             bool            `json:"degraded"`
	Failures             []FailureNote   `json:"failures"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// NewAnalyticsSnapshot returns a snapshot with every sequence allocated.
func NewAnalyticsSnapshot(tf Timeframe) *LegalAnalyticsSnapshot {
	return &LegalAnalyticsSnapshot{
		Timeframe:            tf,
		Granularity:          tf.Granularity(),
		RecentTrends:         []TrendBucket{},
		TopCourts:            []CourtShare{},
		CaseTypeDistribution: []CaseTypeShare{},
		CitationNetwork: CitationNetwork{
			MostCited: []CitedOpinion{},
			Trend:     []CitationTrendPoint{},
		},
		Failures: []FailureNote{},
	}
}
