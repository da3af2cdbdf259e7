package analytics

import (
	"math"
	"sort"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// OtherCaseType classifies records that carry no nature of suit.
const OtherCaseType = "Other"

// caseRecord is the corpus-independent view of one hit.
type caseRecord struct {
	filed      research.Date
	terminated research.Date
	court      string
	caseType   string
}

func collect(opinions []*research.OpinionRecord, dockets []*research.RegistryRecord) []caseRecord {
	out := make([]caseRecord, 0, len(opinions)+len(dockets))
	for _, o := range opinions {
		out = append(out, caseRecord{
			filed:    o.DateFiled,
			court:    courtLabel(o.Court, o.CourtID),
			caseType: caseTypeOf(o.SuitNature),
		})
	}
	for _, d := range dockets {
		out = append(out, caseRecord{
			filed:      d.DateFiled,
			terminated: d.DateTerminated,
			court:      courtLabel(d.Court, d.CourtID),
			caseType:   caseTypeOf(d.SuitNature),
		})
	}
	return out
}

func courtLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func caseTypeOf(suitNature string) string {
	if suitNature == "" {
		return OtherCaseType
	}
	return suitNature
}

// trends counts records per period.  It is empty when no record is dated.
func trends(records []caseRecord, periods []period, g research.Granularity) []research.TrendBucket {
	out := []research.TrendBucket{}
	if !anyDated(records) {
		return out
	}

	type acc struct {
		count int
		days  float64
		n     int
	}
	index := make(map[string]int, len(periods))
	accs := make([]acc, len(periods))
	for i, p := range periods {
		index[p.label] = i
	}
	for _, r := range records {
		if r.filed.IsZero() {
			continue
		}
		i, ok := index[labelOf(r.filed, g)]
		if !ok {
			continue
		}
		accs[i].count++
		if days, ok := r.filed.DaysUntil(r.terminated); ok {
			accs[i].days += days
			accs[i].n++
		}
	}

	for i, p := range periods {
		b := research.TrendBucket{Period: p.label, CaseCount: accs[i].count}
		if accs[i].n > 0 {
			b.AverageDurationDays = round2(accs[i].days / float64(accs[i].n))
		}
		out = append(out, b)
	}
	return out
}

func anyDated(records []caseRecord) bool {
	for _, r := range records {
		if !r.filed.IsZero() {
			return true
		}
	}
	return false
}

// tally is a frequency table ranked by count descending, then key ascending.
type tally struct {
	key   string
	count int
}

func rank(keys []string) []tally {
	counts := make(map[string]int)
	for _, k := range keys {
		if k != "" {
			counts[k]++
		}
	}
	out := make([]tally, 0, len(counts))
	for k, c := range counts {
		out = append(out, tally{key: k, count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

// topCourts ranks courts by frequency, keeping at most limit entries.
// Shares are of sample, so records without a court lower every share.
func topCourts(records []caseRecord, sample, total, limit int) []research.CourtShare {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.court
	}
	out := []research.CourtShare{}
	for _, t := range rank(keys) {
		if len(out) == limit {
			break
		}
		out = append(out, research.CourtShare{
			Court:        t.key,
			CaseCount:    t.count,
			Percentage:   percentage(t.count, sample),
			ShareOfTotal: percentage(t.count, total),
		})
	}
	return out
}

// caseTypes ranks every case type by frequency.
func caseTypes(records []caseRecord, sample, total int) []research.CaseTypeShare {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.caseType
	}
	out := []research.CaseTypeShare{}
	for _, t := range rank(keys) {
		out = append(out, research.CaseTypeShare{
			CaseType:     t.key,
			CaseCount:    t.count,
			Percentage:   percentage(t.count, sample),
			ShareOfTotal: percentage(t.count, total),
		})
	}
	return out
}

// citationNetwork keeps the limit most cited opinions and sums citations per
// filing period.  Uncited opinions are never listed as most cited.
func citationNetwork(opinions []*research.OpinionRecord, periods []period, g research.Granularity, limit int) research.CitationNetwork {
	net := research.CitationNetwork{
		MostCited: []research.CitedOpinion{},
		Trend:     []research.CitationTrendPoint{},
	}

	cited := make([]*research.OpinionRecord, 0, len(opinions))
	dated := false
	for _, o := range opinions {
		if o.CitationCount > 0 {
			cited = append(cited, o)
		}
		if !o.DateFiled.IsZero() {
			dated = true
		}
	}
	sort.SliceStable(cited, func(i, j int) bool {
		a, b := cited[i], cited[j]
		if a.CitationCount != b.CitationCount {
			return a.CitationCount > b.CitationCount
		}
		if !a.DateFiled.Equal(b.DateFiled.Time) {
			return a.DateFiled.After(b.DateFiled.Time)
		}
		return a.ClusterID < b.ClusterID
	})
	for _, o := range cited {
		if len(net.MostCited) == limit {
			break
		}
		net.MostCited = append(net.MostCited, research.CitedOpinion{
			ClusterID:     o.ClusterID,
			CaseName:      o.CaseName,
			Court:         courtLabel(o.Court, o.CourtID),
			DateFiled:     o.DateFiled,
			CitationCount: o.CitationCount,
		})
	}

	if !dated {
		return net
	}
	sums := make(map[string]int, len(periods))
	for _, o := range opinions {
		if !o.DateFiled.IsZero() {
			sums[labelOf(o.DateFiled, g)] += o.CitationCount
		}
	}
	for _, p := range periods {
		net.Trend = append(net.Trend, research.CitationTrendPoint{Period: p.label, Citations: sums[p.label]})
	}
	return net
}

func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(100 * float64(count) / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
