package cvrf

// Document is a monthly Security Update published by MSRC in the CVRF v2.0 JSON format.
// e.g. https://api.msrc.microsoft.com/cvrf/v2.0/cvrf/2021-Jan
//
// ProductTree is intentionally not modeled. Microsoft changes its shape from time to time
// and nothing here depends on it.
type Document struct {
	DocumentTitle     ValueField        `json:"DocumentTitle"`
	DocumentType      ValueField        `json:"DocumentType"`
	DocumentPublisher DocumentPublisher `json:"DocumentPublisher"`
	DocumentTracking  DocumentTracking  `json:"DocumentTracking"`
	DocumentNotes     []DocumentNote    `json:"DocumentNotes"`
	Vulnerability     []Vulnerability   `json:"Vulnerability"`
}

// ValueField wraps the {"Value": "..."} objects used all over the schema.
// Value is nil when MSRC omits it or sends null.
type ValueField struct {
	Value *string `json:"Value"`
}

// String returns the wrapped value, or an empty string if there is none.
func (v ValueField) String() string {
	if v.Value == nil {
		return ""
	}
	return *v.Value
}

type DocumentPublisher struct {
	ContactDetails   ValueField `json:"ContactDetails"`
	IssuingAuthority ValueField `json:"IssuingAuthority"`
	Type             int        `json:"Type"`
}

type DocumentTracking struct {
	Identification     Identification `json:"Identification"`
	Status             int            `json:"Status"`
	Version            string         `json:"Version"`
	RevisionHistory    []Revision     `json:"RevisionHistory"`
	InitialReleaseDate string         `json:"InitialReleaseDate"`
	CurrentReleaseDate string         `json:"CurrentReleaseDate"`
}

type Identification struct {
	ID    ValueField `json:"ID"`
	Alias ValueField `json:"Alias"`
}

type Revision struct {
	Number      string     `json:"Number"`
	Date        string     `json:"Date"`
	Description ValueField `json:"Description"`
}

type DocumentNote struct {
	Title    string `json:"Title"`
	Audience string `json:"Audience"`
	Type     int    `json:"Type"`
	Ordinal  string `json:"Ordinal"`
	Value    string `json:"Value"`
}

type Note struct {
	Title   string  `json:"Title"`
	Type    int     `json:"Type"`
	Ordinal string  `json:"Ordinal"`
	Value   *string `json:"Value"`
}

type Vulnerability struct {
	Title                  ValueField       `json:"Title"`
	Notes                  []Note           `json:"Notes"`
	DiscoveryDateSpecified bool             `json:"DiscoveryDateSpecified"`
	ReleaseDateSpecified   bool             `json:"ReleaseDateSpecified"`
	CVE                    string           `json:"CVE"`
	ProductStatuses        []ProductStatus  `json:"ProductStatuses"`
	Threats                []Threat         `json:"Threats"`
	CVSSScoreSets          []CVSSScoreSet   `json:"CVSSScoreSets"`
	Remediations           []Remediation    `json:"Remediations"`
	Acknowledgments        []Acknowledgment `json:"Acknowledgments"`
	Ordinal                string           `json:"Ordinal"`
	RevisionHistory        []Revision       `json:"RevisionHistory"`
}

type ProductStatus struct {
	ProductID []string `json:"ProductID"`
	Type      int      `json:"Type"`
}

type Threat struct {
	Description   *ValueField `json:"Description"`
	ProductID     []string    `json:"ProductID"`
	Type          int         `json:"Type"`
	DateSpecified bool        `json:"DateSpecified"`
}

type CVSSScoreSet struct {
	BaseScore     float64  `json:"BaseScore"`
	TemporalScore float64  `json:"TemporalScore"`
	Vector        string   `json:"Vector"`
	ProductID     []string `json:"ProductID"`
}

type Remediation struct {
	Description     ValueField     `json:"Description"`
	URL             *string        `json:"URL"`
	Supercedence    *string        `json:"Supercedence"`
	ProductID       []string       `json:"ProductID"`
	Type            int            `json:"Type"`
	DateSpecified   bool           `json:"DateSpecified"`
	AffectedFiles   []AffectedFile `json:"AffectedFiles"`
	RestartRequired *ValueField    `json:"RestartRequired"`
	SubType         *string        `json:"SubType"`
	FixedBuild      *string        `json:"FixedBuild"`
}

type AffectedFile struct {
	FileName         string `json:"FileName"`
	FileLastModified string `json:"FileLastModified"`
}

type Acknowledgment struct {
	Name []ValueField `json:"Name"`
	URL  []string     `json:"URL"`
}
