package model

// OpenEnd is the sentinel end date for an unbounded validity interval.
// ELI validity strings never use an empty end.
const OpenEnd = "9999-12-31"

// DocumentMetadata carries the scalar fields describing one statute.
// Absent fields stay empty strings; dates are normalized to YYYY-MM-DD.
type DocumentMetadata struct {
	LawID           string `json:"law_id"`
	LawName         string `json:"law_name"`            // Primary-language name
	LawNameAlt      string `json:"law_name_alt"`        // Secondary-language name
	LawNumber       string `json:"law_number"`          // Official number (e.g. 昭和25年法律第131号)
	EnactmentDate   string `json:"enactment_date"`      // YYYY-MM-DD
	EnforcementDate string `json:"enforcement_date,omitempty"`
	Version         string `json:"version"`             // Version identifier (e.g. 20240801)
	DateVersion     string `json:"date_version"`        // YYYY-MM-DD of the version
	ValidFrom       string `json:"valid_from"`          // Start of validity interval
	ValidUntil      string `json:"valid_until"`         // End of validity interval, OpenEnd when unbounded
	Publisher       string `json:"publisher"`
	PassedBy        string `json:"passed_by"`
	DocumentType    string `json:"document_type"`
}

// Valid returns the ELI validity interval string "<start>/<end>".
func (m DocumentMetadata) Valid() string {
	start := m.ValidFrom
	if start == "" {
		start = m.EnactmentDate
	}
	end := m.ValidUntil
	if end == "" {
		end = OpenEnd
	}
	return start + "/" + end
}

// StructuredDocument is the canonical intermediate representation:
// metadata plus the ordered bilingual article sequence. Built once per
// conversion run and treated as immutable afterwards.
type StructuredDocument struct {
	Metadata DocumentMetadata `json:"metadata"`
	Articles []Article        `json:"articles"`
}
