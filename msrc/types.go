package msrc

import (
	"strings"

	"golang.org/x/xerrors"
)

type Severity string

const (
	SeverityCritical  Severity = "Critical"
	SeverityImportant Severity = "Important"
	SeverityModerate  Severity = "Moderate"
	SeverityHigh      Severity = "High"
	SeverityMedium    Severity = "Medium"
	SeverityLow       Severity = "Low"
	SeverityNone      Severity = "None"
)

var severities = []Severity{
	SeverityCritical,
	SeverityImportant,
	SeverityModerate,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityNone,
}

// ParseSeverity parses a severity rating case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	for _, severity := range severities {
		if strings.EqualFold(strings.TrimSpace(s), string(severity)) {
			return severity, nil
		}
	}
	return SeverityNone, xerrors.Errorf("invalid severity: %q", s)
}

// Product is an MSRC product ID, e.g. "11569".
type Product string

// ProductAll disables product filtering.
const ProductAll Product = "All"

// products are the aliases accepted on the command line.
var products = map[string]Product{
	"Win10_1809_x64": "11569", // Windows 10 Version 1809 for x64-based Systems
	"Win11_22H2_x64": "12086", // Windows 11 Version 22H2 for x64-based Systems
}

// ParseProduct accepts "All", a known alias or any numeric product ID.
func ParseProduct(s string) (Product, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(ProductAll)) {
		return ProductAll, nil
	}
	for alias, id := range products {
		if strings.EqualFold(s, alias) {
			return id, nil
		}
	}
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return "", xerrors.Errorf("invalid product: %q", s)
	}
	return Product(s), nil
}

// Vulnerability is a CVE from a monthly Security Update, flattened from the CVRF document.
type Vulnerability struct {
	Title            string   `json:"title" yaml:"title"`
	CVE              string   `json:"cve" yaml:"cve"`
	Severity         Severity `json:"severity" yaml:"severity"`
	CVSS             *float64 `json:"cvss,omitempty" yaml:"cvss,omitempty"`
	Impact           string   `json:"impact" yaml:"impact"`
	Description      *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Acknowledgements *string  `json:"acknowledgements,omitempty" yaml:"acknowledgements,omitempty"`
	Public           bool     `json:"public" yaml:"public"`
	Exploited        bool     `json:"exploited" yaml:"exploited"`
	AffectedProducts []string `json:"affectedProducts" yaml:"affectedProducts"`
}
