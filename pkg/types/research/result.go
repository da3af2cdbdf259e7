package research

// Record is one search hit.  The concrete type is fixed by the resource type
// of the query that produced it: *OpinionRecord, *RegistryRecord or
// *PersonRecord.
type Record interface {
	ResourceType() ResourceType
	RecordID() string
}

// OpinionRecord is an opinion-corpus hit, flattened at the cluster level.
type OpinionRecord struct {
	ClusterID     string             `json:"cluster_id"`
	CaseName      string             `json:"case_name"`
	Court         string             `json:"court"`
	CourtID       string             `json:"court_id"`
	DocketID      string             `json:"docket_id,omitempty"`
	DocketNumber  string             `json:"docket_number,omitempty"`
	DateFiled     Date               `json:"date_filed"`
	Judge         string             `json:"judge,omitempty"`
	SuitNature    string             `json:"suit_nature,omitempty"`
	Status        PrecedentialStatus `json:"status"`
	CitationCount int                `json:"citation_count"`
	Citations     []string           `json:"citations"`
	OpinionIDs    []string           `json:"opinion_ids"`
	Snippet       string             `json:"snippet,omitempty"`
	AbsoluteURL   string             `json:"absolute_url,omitempty"`
}

func (r *OpinionRecord) ResourceType() ResourceType { return ResourceOpinion }
func (r *OpinionRecord) RecordID() string           { return r.ClusterID }

// RegistryRecord is a docket-level hit from the registry corpus.
type RegistryRecord struct {
	DocketID       string `json:"docket_id"`
	CaseName       string `json:"case_name"`
	Court          string `json:"court"`
	CourtID        string `json:"court_id"`
	DocketNumber   string `json:"docket_number"`
	DateFiled      Date   `json:"date_filed"`
	DateTerminated Date   `json:"date_terminated"`
	SuitNature     string `json:"suit_nature,omitempty"`
	Cause          string `json:"cause,omitempty"`
	AssignedTo     string `json:"assigned_to,omitempty"`
	JuryDemand     string `json:"jury_demand,omitempty"`
	AbsoluteURL    string `json:"absolute_url,omitempty"`
}

func (r *RegistryRecord) ResourceType() ResourceType { return ResourceRegistryRecord }
func (r *RegistryRecord) RecordID() string           { return r.DocketID }

// PersonRecord is a judge hit from the people corpus.
type PersonRecord struct {
	PersonID    string   `json:"person_id"`
	Name        string   `json:"name"`
	Courts      []string `json:"courts"`
	Positions   []string `json:"positions"`
	Parties     []string `json:"political_affiliations"`
	DateOfBirth Date     `json:"date_of_birth"`
	AbsoluteURL string   `json:"absolute_url,omitempty"`
}

func (r *PersonRecord) ResourceType() ResourceType { return ResourcePerson }
func (r *PersonRecord) RecordID() string           { return r.PersonID }

// SearchResult is one page of search hits.  Count is the total match count
// reported by the service, not len(Records).
type SearchResult struct {
	Count          int          `json:"count"`
	NextCursor     string       `json:"next_cursor,omitempty"`
	PreviousCursor string       `json:"previous_cursor,omitempty"`
	ResourceType   ResourceType `json:"resource_type"`
	Records        []Record     `json:"records"`
}

// EmptyResult is the structurally valid zero-match page for t.
func EmptyResult(t ResourceType) *SearchResult {
	return &SearchResult{ResourceType: t, Records: []Record{}}
}

// HasMore reports whether a next page exists.
func (r *SearchResult) HasMore() bool { return r != nil && r.NextCursor != "" }

// Opinions returns the opinion hits of r.
func (r *SearchResult) Opinions() []*OpinionRecord {
	return recordsOf[*OpinionRecord](r)
}

// RegistryRecords returns the registry hits of r.
func (r *SearchResult) RegistryRecords() []*RegistryRecord {
	return recordsOf[*RegistryRecord](r)
}

// People returns the person hits of r.
func (r *SearchResult) People() []*PersonRecord {
	return recordsOf[*PersonRecord](r)
}

func recordsOf[T Record](r *SearchResult) []T {
	out := []T{}
	if r == nil {
		return out
	}
	for _, rec := range r.Records {
		if v, ok := rec.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
