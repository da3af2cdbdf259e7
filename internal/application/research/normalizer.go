package research

import (
	"strings"

	"github.com/turtacn/LegalSpend-Research/pkg/errors"
	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// Normalize returns the canonical form of q:
//   - filed_after and filed_before are re-emitted as YYYY-MM-DD;
//   - an empty free-text query becomes the wildcard;
//   - an empty resource type becomes opinion.
//
// Text filters are trimmed and duplicate statuses are dropped.  Normalize is
// pure and idempotent.  Unparsable dates, unknown resource types and unknown
// statuses fail with CodeInvalidQuery.
func Normalize(q research.SearchQuery) (research.SearchQuery, error) {
	out := q.Clone()

	out.Query = strings.TrimSpace(out.Query)
	if out.Query == "" {
		out.Query = research.WildcardQuery
	}

	if out.Type == "" {
		out.Type = research.ResourceOpinion
	}
	if !out.Type.IsValid() {
		return research.SearchQuery{}, errors.Newf(errors.CodeInvalidQuery, "unknown resource type %q", string(out.Type))
	}

	out.Court = strings.TrimSpace(out.Court)
	out.Judge = strings.TrimSpace(out.Judge)
	out.CaseName = strings.TrimSpace(out.CaseName)
	out.DocketNumber = strings.TrimSpace(out.DocketNumber)
	out.Citation = strings.TrimSpace(out.Citation)
	out.OrderBy = strings.TrimSpace(out.OrderBy)

	after, err := canonicalDate("filed_after", out.FiledAfter)
	if err != nil {
		return research.SearchQuery{}, err
	}
	before, err := canonicalDate("filed_before", out.FiledBefore)
	if err != nil {
		return research.SearchQuery{}, err
	}
	if !after.IsZero() && !before.IsZero() && before.Before(after.Time) {
		return research.SearchQuery{}, errors.New(errors.CodeInvalidQuery, "filed_before precedes filed_after").
			WithDetail("filed_after=" + after.String() + " filed_before=" + before.String())
	}
	out.FiledAfter = after.String()
	out.FiledBefore = before.String()

	statuses, err := canonicalStatuses(out.Statuses)
	if err != nil {
		return research.SearchQuery{}, err
	}
	out.Statuses = statuses
	return out, nil
}

func canonicalDate(field, value string) (research.Date, error) {
	d, err := research.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return research.Date{}, errors.Wrap(err, errors.CodeInvalidQuery, field+" is not a valid date").
			WithDetail(field + "=" + value)
	}
	return d, nil
}

func canonicalStatuses(in []research.PrecedentialStatus) ([]research.PrecedentialStatus, error) {
	if len(in) == 0 {
		return nil, nil
	}
	seen := make(map[research.PrecedentialStatus]bool, len(in))
	out := make([]research.PrecedentialStatus, 0, len(in))
	for _, s := range in {
		if !s.IsValid() {
			return nil, errors.Newf(errors.CodeInvalidQuery, "unknown precedential status %q", string(s))
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out, nil
}
