package research

import "time"

// MaxRiskScore caps the composite score.
const MaxRiskScore = 100

// LegalExposure counts the litigation a vendor is exposed to.
// PastSettlements and RegulatoryActions require disposition classification
// of opinion text.  Until that exists they stay 0 and
// DispositionsClassified is false.
type LegalExposure struct {
	ActiveLitigation       int  `json:"active_litigation"`
	PastSettlements        int  `json:"past_settlements"`
	RegulatoryActions      int  `json:"regulatory_actions"`
	DispositionsClassified bool `json:"dispositions_classified"`
}

// AverageCaseMetrics averages case properties over the records that carry
// them.  A nil field means no record carried it.
type AverageCaseMetrics struct {
	DurationDays *float64 `json:"duration_days"`
	Cost         *float64 `json:"cost"`
	SuccessRate  *float64 `json:"success_rate"`
	DurationN    int      `json:"duration_sample"`
}

// VendorRiskProfile is the litigation-risk assessment of a named vendor.
// RiskScore is a pure function of OpinionCount and RegistryCount.
type VendorRiskProfile struct {
	VendorName     string             `json:"vendor_name"`
	RiskScore      int                `json:"risk_score"`
	OpinionCount   int                `json:"opinion_count"`
	RegistryCount  int                `json:"registry_count"`
	LegalExposure  LegalExposure      `json:"legal_exposure"`
	PracticeAreas  []string           `json:"practice_areas"`
	Jurisdictions  []string           `json:"jurisdictions"`
	AverageMetrics AverageCaseMetrics `json:"average_case_metrics"`
	Degraded       bool               `json:"degraded"`
	Failures       []FailureNote      `json:"failures"`
	AssessedAt     time.Time          `json:"assessed_at"`
}

// RiskScore is min(100, max(0, 2*(opinions+registry))).
func RiskScore(opinions, registry int) int {
	score := 2 * (opinions + registry)
	if score < 0 {
		return 0
	}
	if score > MaxRiskScore {
		return MaxRiskScore
	}
	return score
}
