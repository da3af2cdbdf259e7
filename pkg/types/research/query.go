package research

// WildcardQuery is the match-all free-text query.
const WildcardQuery = "*"

// SortOrder values understood by the search endpoint.
const (
	OrderScoreDesc     = "score desc"
	OrderDateFiledDesc = "dateFiled desc"
	OrderDateFiledAsc  = "dateFiled asc"
	OrderCitedDesc     = "citeCount desc"
)

// SearchQuery is a search request.  FiledAfter and FiledBefore hold
// YYYY-MM-DD strings once the query has been normalized.
type SearchQuery struct {
	Query        string               `json:"q,omitempty" form:"q"`
	Type         ResourceType         `json:"type,omitempty" form:"type"`
	Court        string               `json:"court,omitempty" form:"court"`
	Judge        string               `json:"judge,omitempty" form:"judge"`
	CaseName     string               `json:"case_name,omitempty" form:"case_name"`
	DocketNumber string               `json:"docket_number,omitempty" form:"docket_number"`
	Citation     string               `json:"citation,omitempty" form:"citation"`
	FiledAfter   string               `json:"filed_after,omitempty" form:"filed_after"`
	FiledBefore  string               `json:"filed_before,omitempty" form:"filed_before"`
	OrderBy      string               `json:"order_by,omitempty" form:"order_by"`
	Statuses     []PrecedentialStatus `json:"statuses,omitempty" form:"status"`
	Cursor       string               `json:"cursor,omitempty" form:"cursor"`
}

// Clone returns a copy that shares no slices with q.
func (q SearchQuery) Clone() SearchQuery {
	out := q
	if q.Statuses != nil {
		out.Statuses = append([]PrecedentialStatus(nil), q.Statuses...)
	}
	return out
}
