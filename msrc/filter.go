package msrc

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Filter narrows down a list of vulnerabilities. Zero values disable a criterion.
type Filter struct {
	Severity        *Severity
	Title           string
	Acknowledgement string
	Product         Product
}

// Apply returns the vulnerabilities matching every criterion of f, in input order.
func (f Filter) Apply(vulns []Vulnerability) []Vulnerability {
	if f.Severity != nil {
		vulns = BySeverity(vulns, *f.Severity)
	}
	if f.Title != "" {
		vulns = ByTitle(vulns, f.Title)
	}
	if f.Acknowledgement != "" {
		vulns = ByAcknowledgement(vulns, f.Acknowledgement)
	}
	if f.Product != "" {
		vulns = ByProduct(vulns, f.Product)
	}
	return vulns
}

func BySeverity(vulns []Vulnerability, severity Severity) []Vulnerability {
	return lo.Filter(vulns, func(v Vulnerability, _ int) bool {
		return v.Severity == severity
	})
}

// ByTitle keeps vulnerabilities whose title contains title, ignoring case.
func ByTitle(vulns []Vulnerability, title string) []Vulnerability {
	title = strings.ToLower(title)
	return lo.Filter(vulns, func(v Vulnerability, _ int) bool {
		return strings.Contains(strings.ToLower(v.Title), title)
	})
}

// ByAcknowledgement keeps vulnerabilities credited to ack, ignoring case.
// Vulnerabilities without acknowledgements never match.
func ByAcknowledgement(vulns []Vulnerability, ack string) []Vulnerability {
	ack = strings.ToLower(ack)
	return lo.Filter(vulns, func(v Vulnerability, _ int) bool {
		return v.Acknowledgements != nil && strings.Contains(strings.ToLower(*v.Acknowledgements), ack)
	})
}

// ByProduct keeps vulnerabilities affecting product. ProductAll keeps everything.
func ByProduct(vulns []Vulnerability, product Product) []Vulnerability {
	if product == ProductAll {
		return vulns
	}
	return lo.Filter(vulns, func(v Vulnerability, _ int) bool {
		return slices.Contains(v.AffectedProducts, string(product))
	})
}
