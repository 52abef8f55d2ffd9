package msrc

import (
	"strings"

	"github.com/samber/lo"

	"github.com/aquasecurity/patch-tuesday/cvrf"
)

// Threat and product status type codes used by MSRC.
const (
	threatImpact         = 0
	threatExploitability = 1
	threatSeverity       = 3

	productStatusKnownAffected = 3
)

const acknowledgementSeparator = ", "

// FromDocument normalizes every vulnerability of doc, keeping the document order.
func FromDocument(doc *cvrf.Document) []Vulnerability {
	return lo.Map(doc.Vulnerability, func(v cvrf.Vulnerability, _ int) Vulnerability {
		return FromCVRF(v)
	})
}

// FromCVRF flattens a CVRF vulnerability. Missing or malformed fields fall back to
// defaults instead of failing, as MSRC data is not consistent across releases.
func FromCVRF(v cvrf.Vulnerability) Vulnerability {
	severity, err := ParseSeverity(threatDescription(v.Threats, threatSeverity))
	if err != nil {
		severity = SeverityNone
	}

	var cvss *float64
	if len(v.CVSSScoreSets) > 0 {
		cvss = lo.ToPtr(v.CVSSScoreSets[0].BaseScore)
	}

	var description *string
	if note, ok := lo.Find(v.Notes, func(n cvrf.Note) bool { return n.Title == "Description" }); ok {
		description = note.Value
	}

	public, exploited := exploitability(threatDescription(v.Threats, threatExploitability))

	affected := []string{}
	if status, ok := lo.Find(v.ProductStatuses, func(s cvrf.ProductStatus) bool {
		return s.Type == productStatusKnownAffected
	}); ok && status.ProductID != nil {
		affected = status.ProductID
	}

	return Vulnerability{
		Title:            v.Title.String(),
		CVE:              v.CVE,
		Severity:         severity,
		CVSS:             cvss,
		Impact:           threatDescription(v.Threats, threatImpact),
		Description:      description,
		Acknowledgements: acknowledgements(v.Acknowledgments),
		Public:           public,
		Exploited:        exploited,
		AffectedProducts: affected,
	}
}

// threatDescription returns the description of the first threat of the given type.
func threatDescription(threats []cvrf.Threat, typ int) string {
	threat, ok := lo.Find(threats, func(t cvrf.Threat) bool { return t.Type == typ })
	if !ok || threat.Description == nil {
		return ""
	}
	return threat.Description.String()
}

// exploitability reads "Publicly Disclosed:No;Exploited:Yes;..." positionally.
// Entries such as "DOS:N/A" yield false for both.
func exploitability(s string) (public, exploited bool) {
	fields := strings.Split(s, ";")
	public = strings.Contains(fields[0], "Yes")
	if len(fields) > 1 {
		exploited = strings.Contains(fields[1], "Yes")
	}
	return public, exploited
}

// acknowledgements joins every contributor name. A single name without a value
// discards the whole list, while no names at all yield an empty string.
func acknowledgements(acks []cvrf.Acknowledgment) *string {
	names := lo.FlatMap(acks, func(a cvrf.Acknowledgment, _ int) []cvrf.ValueField {
		return a.Name
	})
	if lo.SomeBy(names, func(n cvrf.ValueField) bool { return n.Value == nil }) {
		return nil
	}
	joined := strings.Join(lo.Map(names, func(n cvrf.ValueField, _ int) string {
		return *n.Value
	}), acknowledgementSeparator)
	return &joined
}
