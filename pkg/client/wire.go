package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// flexID accepts a JSON number, a string id, or a resource URL such as
// "https://host/api/rest/v4/clusters/42/" and keeps the bare id.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(refID(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number, string or URL: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// refID returns the last path segment of a resource URL, or s unchanged.
func refID(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		return s
	}
	trimmed := strings.TrimRight(s, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func idsOf(in []flexID) []string {
	out := make([]string, 0, len(in))
	for _, id := range in {
		if id != "" {
			out = append(out, string(id))
		}
	}
	return out
}

// stringList accepts either a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
		} else {
			*l = stringList{s}
		}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or list: %w", err)
	}
	out := make(stringList, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			// list of numbers or objects: keep the raw token
			s = strings.Trim(string(item), `"`)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func (l stringList) slice() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

// ---------------------------------------------------------------------------
// search
// ---------------------------------------------------------------------------

type wireSearchPage struct {
	Count    *int              `json:"count"`
	Next     string            `json:"next"`
	Previous string            `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

type wireOpinionHit struct {
	ID      flexID `json:"id"`
	Snippet string `json:"snippet"`
}

type wireOpinionResult struct {
	ClusterID    flexID           `json:"cluster_id"`
	CaseName     string           `json:"caseName"`
	Court        string           `json:"court"`
	CourtID      string           `json:"court_id"`
	DocketID     flexID           `json:"docket_id"`
	DocketNumber string           `json:"docketNumber"`
	DateFiled    research.Date    `json:"dateFiled"`
	Judge        string           `json:"judge"`
	SuitNature   string           `json:"suitNature"`
	Status       string           `json:"status"`
	CiteCount    int              `json:"citeCount"`
	Citation     stringList       `json:"citation"`
	Opinions     []wireOpinionHit `json:"opinions"`
	Snippet      string           `json:"snippet"`
	AbsoluteURL  string           `json:"absolute_url"`
}

func (w *wireOpinionResult) record() (*research.OpinionRecord, error) {
	if w.ClusterID == "" {
		return nil, fmt.Errorf("opinion result %q has no cluster reference", w.CaseName)
	}
	rec := &research.OpinionRecord{
		ClusterID:     string(w.ClusterID),
		CaseName:      w.CaseName,
		Court:         w.Court,
		CourtID:       w.CourtID,
		DocketID:      string(w.DocketID),
		DocketNumber:  w.DocketNumber,
		DateFiled:     w.DateFiled,
		Judge:         w.Judge,
		SuitNature:    w.SuitNature,
		Status:        research.ParsePrecedentialStatus(w.Status),
		CitationCount: w.CiteCount,
		Citations:     w.Citation.slice(),
		OpinionIDs:    make([]string, 0, len(w.Opinions)),
		Snippet:       w.Snippet,
		AbsoluteURL:   w.AbsoluteURL,
	}
	for _, op := range w.Opinions {
		if op.ID != "" {
			rec.OpinionIDs = append(rec.OpinionIDs, string(op.ID))
		}
		if rec.Snippet == "" {
			rec.Snippet = op.Snippet
		}
	}
	return rec, nil
}

type wireRegistryResult struct {
	DocketID       flexID        `json:"docket_id"`
	CaseName       string        `json:"caseName"`
	Court          string        `json:"court"`
	CourtID        string        `json:"court_id"`
	DocketNumber   string        `json:"docketNumber"`
	DateFiled      research.Date `json:"dateFiled"`
	DateTerminated research.Date `json:"dateTerminated"`
	SuitNature     string        `json:"suitNature"`
	Cause          string        `json:"cause"`
	AssignedTo     string        `json:"assignedTo"`
	JuryDemand     string        `json:"juryDemand"`
	AbsoluteURL    string        `json:"docket_absolute_url"`
}

func (w *wireRegistryResult) record() (*research.RegistryRecord, error) {
	if w.DocketID == "" {
		return nil, fmt.Errorf("registry result %q has no docket id", w.CaseName)
	}
	return &research.RegistryRecord{
		DocketID:       string(w.DocketID),
		CaseName:       w.CaseName,
		Court:          w.Court,
		CourtID:        w.CourtID,
		DocketNumber:   w.DocketNumber,
		DateFiled:      w.DateFiled,
		DateTerminated: w.DateTerminated,
		SuitNature:     w.SuitNature,
		Cause:          w.Cause,
		AssignedTo:     w.AssignedTo,
		JuryDemand:     w.JuryDemand,
		AbsoluteURL:    w.AbsoluteURL,
	}, nil
}

type wirePersonResult struct {
	ID                   flexID        `json:"id"`
	Name                 string        `json:"name"`
	Court                stringList    `json:"court"`
	PositionType         stringList    `json:"position_type"`
	PoliticalAffiliation stringList    `json:"political_affiliation"`
	DOB                  research.Date `json:"dob"`
	AbsoluteURL          string        `json:"absolute_url"`
}

func (w *wirePersonResult) record() (*research.PersonRecord, error) {
	if w.ID == "" {
		return nil, fmt.Errorf("person result %q has no id", w.Name)
	}
	return &research.PersonRecord{
		PersonID:    string(w.ID),
		Name:        w.Name,
		Courts:      w.Court.slice(),
		Positions:   w.PositionType.slice(),
		Parties:     w.PoliticalAffiliation.slice(),
		DateOfBirth: w.DOB,
		AbsoluteURL: w.AbsoluteURL,
	}, nil
}

// decodeRecord decodes one element of results into the variant fixed by t.
func decodeRecord(t research.ResourceType, raw json.RawMessage) (research.Record, error) {
	switch t {
	case research.ResourceRegistryRecord:
		var w wireRegistryResult
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return w.record()
	case research.ResourcePerson:
		var w wirePersonResult
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return w.record()
	default:
		var w wireOpinionResult
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return w.record()
	}
}

// cursorOf extracts the opaque cursor from a next/previous page URL.
func cursorOf(pageURL string) string {
	if pageURL == "" {
		return ""
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	if c := q.Get("cursor"); c != "" {
		return c
	}
	return q.Get("page")
}

// ---------------------------------------------------------------------------
// entities
// ---------------------------------------------------------------------------

type wireCourt struct {
	ID                     string        `json:"id"`
	FullName               string        `json:"full_name"`
	ShortName              string        `json:"short_name"`
	Jurisdiction           string        `json:"jurisdiction"`
	CitationString         string        `json:"citation_string"`
	HasOpinionScraper      bool          `json:"has_opinion_scraper"`
	HasOralArgumentScraper bool          `json:"has_oral_argument_scraper"`
	InUse                  bool          `json:"in_use"`
	StartDate              research.Date `json:"start_date"`
	EndDate                research.Date `json:"end_date"`
}

func (w *wireCourt) model() *research.Court {
	return &research.Court{
		ID:                     w.ID,
		FullName:               w.FullName,
		ShortName:              w.ShortName,
		Jurisdiction:           w.Jurisdiction,
		Citation:               w.CitationString,
		HasOpinionScraper:      w.HasOpinionScraper,
		HasOralArgumentScraper: w.HasOralArgumentScraper,
		InUse:                  w.InUse,
		StartDate:              w.StartDate,
		EndDate:                w.EndDate,
	}
}

type wireOpinion struct {
	ID                flexID    `json:"id"`
	Cluster           flexID    `json:"cluster"`
	ClusterID         flexID    `json:"cluster_id"`
	Author            flexID    `json:"author"`
	AuthorID          flexID    `json:"author_id"`
	AuthorStr         string    `json:"author_str"`
	JoinedBy          []flexID  `json:"joined_by"`
	JoinedByStr       string    `json:"joined_by_str"`
	Type              string    `json:"type"`
	PerCuriam         bool      `json:"per_curiam"`
	PlainText         string    `json:"plain_text"`
	HTML              string    `json:"html"`
	HTMLLawbox        string    `json:"html_lawbox"`
	HTMLColumbia      string    `json:"html_columbia"`
	HTMLWithCitations string    `json:"html_with_citations"`
	XMLHarvard        string    `json:"xml_harvard"`
	ExtractedByOCR    bool      `json:"extracted_by_ocr"`
	DateCreated       time.Time `json:"date_created"`
	DateModified      time.Time `json:"date_modified"`
}

func (w *wireOpinion) model() (*research.Opinion, error) {
	cluster := firstNonEmpty(string(w.ClusterID), string(w.Cluster))
	if cluster == "" {
		return nil, fmt.Errorf("opinion %s has no cluster reference", w.ID)
	}
	texts := map[research.TextEncoding]string{}
	for enc, body := range map[research.TextEncoding]string{
		research.TextPlain:             w.PlainText,
		research.TextHTML:              w.HTML,
		research.TextHTMLLawbox:        w.HTMLLawbox,
		research.TextHTMLColumbia:      w.HTMLColumbia,
		research.TextHTMLWithCitations: w.HTMLWithCitations,
		research.TextXMLHarvard:        w.XMLHarvard,
	} {
		if body != "" {
			texts[enc] = body
		}
	}
	return &research.Opinion{
		ID:             string(w.ID),
		ClusterID:      cluster,
		AuthorID:       firstNonEmpty(string(w.AuthorID), string(w.Author)),
		AuthorName:     w.AuthorStr,
		JoinedByIDs:    idsOf(w.JoinedBy),
		JoinedByNames:  w.JoinedByStr,
		Type:           w.Type,
		PerCuriam:      w.PerCuriam,
		Texts:          texts,
		ExtractedByOCR: w.ExtractedByOCR,
		DateCreated:    w.DateCreated,
		DateModified:   w.DateModified,
	}, nil
}

type wireCitation struct {
	Volume   json.Number `json:"volume"`
	Reporter string      `json:"reporter"`
	Page     string      `json:"page"`
}

func (c wireCitation) String() string {
	return strings.TrimSpace(strings.Join([]string{c.Volume.String(), c.Reporter, c.Page}, " "))
}

type wireCluster struct {
	ID                     flexID         `json:"id"`
	Docket                 flexID         `json:"docket"`
	DocketID               flexID         `json:"docket_id"`
	CaseName               string         `json:"case_name"`
	CaseNameShort          string         `json:"case_name_short"`
	CaseNameFull           string         `json:"case_name_full"`
	Judges                 string         `json:"judges"`
	Panel                  []flexID       `json:"panel"`
	DateFiled              research.Date  `json:"date_filed"`
	DateFiledIsApproximate bool           `json:"date_filed_is_approximate"`
	PrecedentialStatus     string         `json:"precedential_status"`
	CitationCount          int            `json:"citation_count"`
	Citations              []wireCitation `json:"citations"`
	Disposition            string         `json:"disposition"`
	Syllabus               string         `json:"syllabus"`
	SubOpinions            []flexID       `json:"sub_opinions"`
}

func (w *wireCluster) model() *research.OpinionCluster {
	citations := make([]string, 0, len(w.Citations))
	for _, c := range w.Citations {
		if s := c.String(); s != "" {
			citations = append(citations, s)
		}
	}
	return &research.OpinionCluster{
		ID:                     string(w.ID),
		DocketID:               firstNonEmpty(string(w.DocketID), string(w.Docket)),
		CaseName:               w.CaseName,
		CaseNameShort:          w.CaseNameShort,
		CaseNameFull:           w.CaseNameFull,
		Judges:                 w.Judges,
		PanelIDs:               idsOf(w.Panel),
		DateFiled:              w.DateFiled,
		DateFiledIsApproximate: w.DateFiledIsApproximate,
		PrecedentialStatus:     research.ParsePrecedentialStatus(w.PrecedentialStatus),
		CitationCount:          w.CitationCount,
		Citations:              citations,
		Disposition:            w.Disposition,
		Syllabus:               w.Syllabus,
		SubOpinionIDs:          idsOf(w.SubOpinions),
	}
}

type wireDocket struct {
	ID            flexID        `json:"id"`
	Court         flexID        `json:"court"`
	CourtID       string        `json:"court_id"`
	CaseName      string        `json:"case_name"`
	CaseNameShort string        `json:"case_name_short"`
	CaseNameFull  string        `json:"case_name_full"`
	DocketNumber  string        `json:"docket_number"`
	DateFiled     research.Date `json:"date_filed"`
	DateTerm      research.Date `json:"date_terminated"`
	DateArgued    research.Date `json:"date_argued"`
	NatureOfSuit  string        `json:"nature_of_suit"`
	Cause         string        `json:"cause"`
	AssignedToStr string        `json:"assigned_to_str"`
	Clusters      []flexID      `json:"clusters"`
}

func (w *wireDocket) model() *research.Docket {
	return &research.Docket{
		ID:             string(w.ID),
		CourtID:        firstNonEmpty(w.CourtID, string(w.Court)),
		CaseName:       w.CaseName,
		CaseNameShort:  w.CaseNameShort,
		CaseNameFull:   w.CaseNameFull,
		DocketNumber:   w.DocketNumber,
		DateFiled:      w.DateFiled,
		DateTerminated: w.DateTerm,
		DateArgued:     w.DateArgued,
		NatureOfSuit:   w.NatureOfSuit,
		Cause:          w.Cause,
		AssignedTo:     w.AssignedToStr,
		ClusterIDs:     idsOf(w.Clusters),
	}
}

// linkedOr decodes either a bare resource link or an embedded object.
type linkedOr[T any] struct {
	id  string
	obj *T
}

func (l *linkedOr[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var id flexID
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		l.id = string(id)
		return nil
	}
	l.obj = new(T)
	return json.Unmarshal(data, l.obj)
}

type wireRef struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type wirePosition struct {
	ID              flexID        `json:"id"`
	Court           wireRef       `json:"court"`
	PositionType    string        `json:"position_type"`
	JobTitle        string        `json:"job_title"`
	DateStart       research.Date `json:"date_start"`
	DateTermination research.Date `json:"date_termination"`
}

type wireEducation struct {
	ID          flexID  `json:"id"`
	School      wireRef `json:"school"`
	DegreeLevel string  `json:"degree_level"`
	DegreeYear  int     `json:"degree_year"`
}

type wireAffiliation struct {
	ID             flexID        `json:"id"`
	PoliticalParty string        `json:"political_party"`
	Source         string        `json:"source"`
	DateStart      research.Date `json:"date_start"`
}

type wirePerson struct {
	ID                    flexID                      `json:"id"`
	NameFirst             string                      `json:"name_first"`
	NameMiddle            string                      `json:"name_middle"`
	NameLast              string                      `json:"name_last"`
	NameSuffix            string                      `json:"name_suffix"`
	DateDOB               research.Date               `json:"date_dob"`
	DateDOD               research.Date               `json:"date_dod"`
	DOBCity               string                      `json:"dob_city"`
	DOBState              string                      `json:"dob_state"`
	Gender                string                      `json:"gender"`
	Positions             []linkedOr[wirePosition]    `json:"positions"`
	Educations            []linkedOr[wireEducation]   `json:"educations"`
	PoliticalAffiliations []linkedOr[wireAffiliation] `json:"political_affiliations"`
}

func (w *wirePerson) model() *research.Judge {
	j := &research.Judge{
		ID:                    string(w.ID),
		NameFirst:             w.NameFirst,
		NameMiddle:            w.NameMiddle,
		NameLast:              w.NameLast,
		NameSuffix:            w.NameSuffix,
		DateOfBirth:           w.DateDOB,
		DateOfDeath:           w.DateDOD,
		BirthCity:             w.DOBCity,
		BirthState:            w.DOBState,
		Gender:                w.Gender,
		Positions:             make([]research.Position, 0, len(w.Positions)),
		Educations:            make([]research.Education, 0, len(w.Educations)),
		PoliticalAffiliations: make([]research.PoliticalAffiliation, 0, len(w.PoliticalAffiliations)),
	}
	for _, p := range w.Positions {
		if p.obj == nil {
			j.Positions = append(j.Positions, research.Position{ID: p.id})
			continue
		}
		j.Positions = append(j.Positions, research.Position{
			ID:              string(p.obj.ID),
			CourtID:         string(p.obj.Court.ID),
			PositionType:    p.obj.PositionType,
			JobTitle:        p.obj.JobTitle,
			DateStart:       p.obj.DateStart,
			DateTermination: p.obj.DateTermination,
		})
	}
	for _, e := range w.Educations {
		if e.obj == nil {
			j.Educations = append(j.Educations, research.Education{ID: e.id})
			continue
		}
		j.Educations = append(j.Educations, research.Education{
			ID:         string(e.obj.ID),
			School:     e.obj.School.Name,
			Degree:     e.obj.DegreeLevel,
			DegreeYear: e.obj.DegreeYear,
		})
	}
	for _, a := range w.PoliticalAffiliations {
		if a.obj == nil {
			j.PoliticalAffiliations = append(j.PoliticalAffiliations, research.PoliticalAffiliation{ID: a.id})
			continue
		}
		j.PoliticalAffiliations = append(j.PoliticalAffiliations, research.PoliticalAffiliation{
			ID:        string(a.obj.ID),
			Party:     a.obj.PoliticalParty,
			Source:    a.obj.Source,
			DateStart: a.obj.DateStart,
		})
	}
	return j
}

type wireCitationMatch struct {
	Citation            string     `json:"citation"`
	NormalizedCitations stringList `json:"normalized_citations"`
	Status              int        `json:"status"`
	ErrorMessage        string     `json:"error_message"`
	Clusters            []wireRef  `json:"clusters"`
}

func (w *wireCitationMatch) model() research.CitationMatch {
	m := research.CitationMatch{
		Citation:   w.Citation,
		Normalized: w.NormalizedCitations.slice(),
		Status:     w.Status,
		Message:    w.ErrorMessage,
		ClusterIDs: make([]string, 0, len(w.Clusters)),
	}
	for _, c := range w.Clusters {
		if c.ID != "" {
			m.ClusterIDs = append(m.ClusterIDs, string(c.ID))
		}
	}
	return m
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func itoa(i int) string { return strconv.Itoa(i) }
