package research

import "strings"

// ResourceType selects which search corpus a query targets.
type ResourceType string

const (
	ResourceOpinion        ResourceType = "opinion"
	ResourceRegistryRecord ResourceType = "registry-record"
	ResourcePerson         ResourceType = "person"
)

// IsValid reports whether r is a known resource type.
func (r ResourceType) IsValid() bool {
	switch r {
	case ResourceOpinion, ResourceRegistryRecord, ResourcePerson:
		return true
	}
	return false
}

// SearchCode is the value of the "type" parameter of the search endpoint.
func (r ResourceType) SearchCode() string {
	switch r {
	case ResourceRegistryRecord:
		return "r"
	case ResourcePerson:
		return "p"
	default:
		return "o"
	}
}

// PrecedentialStatus is the binding-authority class of an opinion cluster.
type PrecedentialStatus string

const (
	StatusPrecedential    PrecedentialStatus = "precedential"
	StatusNonPrecedential PrecedentialStatus = "non-precedential"
	StatusErrata          PrecedentialStatus = "errata"
	StatusSeparate        PrecedentialStatus = "separate"
	StatusInChambers      PrecedentialStatus = "in-chambers"
	StatusUnknown         PrecedentialStatus = "unknown"
)

// AllStatuses lists every precedential status.
var AllStatuses = []PrecedentialStatus{
	StatusPrecedential, StatusNonPrecedential, StatusErrata, StatusSeparate, StatusInChambers, StatusUnknown,
}

var statusSourceNames = map[PrecedentialStatus]string{
	StatusPrecedential:    "Published",
	StatusNonPrecedential: "Unpublished",
	StatusErrata:          "Errata",
	StatusSeparate:        "Separate",
	StatusInChambers:      "In-chambers",
	StatusUnknown:         "Unknown",
}

// IsValid reports whether s is a known status.
func (s PrecedentialStatus) IsValid() bool {
	_, ok := statusSourceNames[s]
	return ok
}

// SourceName is the label the research service uses for s.
func (s PrecedentialStatus) SourceName() string {
	if name, ok := statusSourceNames[s]; ok {
		return name
	}
	return statusSourceNames[StatusUnknown]
}

// FilterParam is the boolean search parameter that selects s.
func (s PrecedentialStatus) FilterParam() string {
	return "stat_" + s.SourceName()
}

// ParsePrecedentialStatus maps a source label ("Published",
// "Separate Opinion", "Unknown Status", ...) or a canonical value onto the
// enumeration.  Unrecognized labels map to StatusUnknown.
func ParsePrecedentialStatus(raw string) PrecedentialStatus {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "":
		return StatusUnknown
	case PrecedentialStatus(v).IsValid():
		return PrecedentialStatus(v)
	case v == "published":
		return StatusPrecedential
	case v == "unpublished":
		return StatusNonPrecedential
	case v == "errata":
		return StatusErrata
	case strings.HasPrefix(v, "separate"):
		return StatusSeparate
	case strings.HasPrefix(v, "in-chambers"), strings.HasPrefix(v, "in chambers"):
		return StatusInChambers
	}
	return StatusUnknown
}
