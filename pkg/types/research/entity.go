// Package research defines the data model shared by the research gateway and
// the analytics and risk services.  All values are request-scoped and are
// never mutated after construction; references between entities are weak
// references by string id.
package research

import "time"

// Court is a court known to the research service.
type Court struct {
	ID                     string `json:"id"`
	FullName               string `json:"full_name"`
	ShortName              string `json:"short_name"`
	Jurisdiction           string `json:"jurisdiction"`
	Citation               string `json:"citation"`
	HasOpinionScraper      bool   `json:"has_opinion_scraper"`
	HasOralArgumentScraper bool   `json:"has_oral_argument_scraper"`
	InUse                  bool   `json:"in_use"`
	StartDate              Date   `json:"start_date"`
	EndDate                Date   `json:"end_date"`
}

// TextEncoding names one of the representations an opinion body may carry.
type TextEncoding string

const (
	TextPlain             TextEncoding = "plain_text"
	TextHTML              TextEncoding = "html"
	TextHTMLLawbox        TextEncoding = "html_lawbox"
	TextHTMLColumbia      TextEncoding = "html_columbia"
	TextHTMLWithCitations TextEncoding = "html_with_citations"
	TextXMLHarvard        TextEncoding = "xml_harvard"
)

// TextEncodings lists every encoding in preference order for display.
var TextEncodings = []TextEncoding{
	TextHTMLWithCitations, TextHTML, TextHTMLLawbox, TextHTMLColumbia, TextXMLHarvard, TextPlain,
}

// Opinion is a single judicial writing.  ClusterID is never empty.
type Opinion struct {
	ID             string                  `json:"id"`
	ClusterID      string                  `json:"cluster_id"`
	AuthorID       string                  `json:"author_id,omitempty"`
	AuthorName     string                  `json:"author_name,omitempty"`
	JoinedByIDs    []string                `json:"joined_by_ids"`
	JoinedByNames  string                  `json:"joined_by_names,omitempty"`
	Type           string                  `json:"type"`
	PerCuriam      bool                    `json:"per_curiam"`
	Texts          map[TextEncoding]string `json:"texts"`
	ExtractedByOCR bool                    `json:"extracted_by_ocr"`
	DateCreated    time.Time               `json:"date_created"`
	DateModified   time.Time               `json:"date_modified"`
}

// PreferredText returns the first non-empty body in TextEncodings order.
func (o *Opinion) PreferredText() (TextEncoding, string) {
	for _, enc := range TextEncodings {
		if body := o.Texts[enc]; body != "" {
			return enc, body
		}
	}
	return "", ""
}

// OpinionCluster groups the opinions issued together for one disposition.
// CitationCount is a point-in-time snapshot from the source.
type OpinionCluster struct {
	ID                     string             `json:"id"`
	DocketID               string             `json:"docket_id,omitempty"`
	CaseName               string             `json:"case_name"`
	CaseNameShort          string             `json:"case_name_short,omitempty"`
	CaseNameFull           string             `json:"case_name_full,omitempty"`
	Judges                 string             `json:"judges"`
	PanelIDs               []string           `json:"panel_ids"`
	DateFiled              Date               `json:"date_filed"`
	DateFiledIsApproximate bool               `json:"date_filed_is_approximate"`
	PrecedentialStatus     PrecedentialStatus `json:"precedential_status"`
	CitationCount          int                `json:"citation_count"`
	Citations              []string           `json:"citations"`
	Disposition            string             `json:"disposition,omitempty"`
	Syllabus               string             `json:"syllabus,omitempty"`
	SubOpinionIDs          []string           `json:"sub_opinion_ids"`
}

// Docket is the procedural record of a case within a court.  Every date is
// optional: a docket may describe an open or a historical matter.
type Docket struct {
	ID             string   `json:"id"`
	CourtID        string   `json:"court_id"`
	CaseName       string   `json:"case_name"`
	CaseNameShort  string   `json:"case_name_short,omitempty"`
	CaseNameFull   string   `json:"case_name_full,omitempty"`
	DocketNumber   string   `json:"docket_number"`
	DateFiled      Date     `json:"date_filed"`
	DateTerminated Date     `json:"date_terminated"`
	DateArgued     Date     `json:"date_argued"`
	NatureOfSuit   string   `json:"nature_of_suit,omitempty"`
	Cause          string   `json:"cause,omitempty"`
	AssignedTo     string   `json:"assigned_to,omitempty"`
	ClusterIDs     []string `json:"cluster_ids"`
}

// Open reports whether the docket has no termination date.
func (d *Docket) Open() bool { return d.DateTerminated.IsZero() }

// Judge is a person record.  Source records are frequently incomplete, so
// every field past ID may be empty.
type Judge struct {
	ID                    string                 `json:"id"`
	NameFirst             string                 `json:"name_first,omitempty"`
	NameMiddle            string                 `json:"name_middle,omitempty"`
	NameLast              string                 `json:"name_last,omitempty"`
	NameSuffix            string                 `json:"name_suffix,omitempty"`
	DateOfBirth           Date                   `json:"date_of_birth"`
	DateOfDeath           Date                   `json:"date_of_death"`
	BirthCity             string                 `json:"birth_city,omitempty"`
	BirthState            string                 `json:"birth_state,omitempty"`
	Gender                string                 `json:"gender,omitempty"`
	Positions             []Position             `json:"positions"`
	Educations            []Education            `json:"educations"`
	PoliticalAffiliations []PoliticalAffiliation `json:"political_affiliations"`
}

// FullName joins the non-empty name parts.
func (j *Judge) FullName() string {
	name := ""
	for _, part := range []string{j.NameFirst, j.NameMiddle, j.NameLast, j.NameSuffix} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// Position is a career position.  When the source only links the position,
// ID is the single populated field.
type Position struct {
	ID              string `json:"id"`
	CourtID         string `json:"court_id,omitempty"`
	PositionType    string `json:"position_type,omitempty"`
	JobTitle        string `json:"job_title,omitempty"`
	DateStart       Date   `json:"date_start"`
	DateTermination Date   `json:"date_termination"`
}

// Education is a degree record.
type Education struct {
	ID         string `json:"id"`
	School     string `json:"school,omitempty"`
	Degree     string `json:"degree,omitempty"`
	DegreeYear int    `json:"degree_year,omitempty"`
}

// PoliticalAffiliation is a party affiliation record.
type PoliticalAffiliation struct {
	ID        string `json:"id"`
	Party     string `json:"party,omitempty"`
	Source    string `json:"source,omitempty"`
	DateStart Date   `json:"date_start"`
}

// CitationMatch is one citation found by the citation lookup endpoint.
type CitationMatch struct {
	Citation   string   `json:"citation"`
	Normalized []string `json:"normalized_citations"`
	Status     int      `json:"status"`
	Message    string   `json:"error_message,omitempty"`
	ClusterIDs []string `json:"cluster_ids"`
}
