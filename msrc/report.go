package msrc

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", xerrors.Errorf("unknown format: %q", s)
}

const separator = "--------"

// Write renders vulns to w in the given format.
func Write(w io.Writer, format Format, vulns []Vulnerability) error {
	if vulns == nil {
		vulns = []Vulnerability{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(vulns); err != nil {
			return xerrors.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		b, err := yaml.Marshal(vulns)
		if err != nil {
			return xerrors.Errorf("failed to encode YAML: %w", err)
		}
		if _, err = w.Write(b); err != nil {
			return xerrors.Errorf("failed to write YAML: %w", err)
		}
	case FormatText, "":
		for _, vuln := range vulns {
			if _, err := fmt.Fprintln(w, vuln.String()); err != nil {
				return xerrors.Errorf("failed to write %s: %w", vuln.CVE, err)
			}
		}
	default:
		return xerrors.Errorf("unknown format: %q", format)
	}
	return nil
}

// String renders the vulnerability as a human readable block terminated by a separator line.
func (v Vulnerability) String() string {
	var sb strings.Builder
	fmt.Fprintln(&sb, v.Title)
	fmt.Fprintln(&sb, v.CVE)
	fmt.Fprintf(&sb, "Severity: %s\n", v.Severity.display())
	if v.CVSS != nil {
		fmt.Fprintf(&sb, "CVSS: %s\n", strconv.FormatFloat(*v.CVSS, 'f', -1, 64))
	}
	fmt.Fprintf(&sb, "Impact: %s\n", v.Impact)
	if v.Description != nil {
		fmt.Fprintf(&sb, "Description: %s\n", htmlToText(*v.Description))
	}
	fmt.Fprintf(&sb, "Publicly Disclosed: %t\n", v.Public)
	fmt.Fprintf(&sb, "Exploited: %t\n", v.Exploited)
	if v.Acknowledgements != nil {
		fmt.Fprintf(&sb, "Acknowledgments: %s\n", *v.Acknowledgements)
	}
	sb.WriteString(separator)
	return sb.String()
}

// display leaves unrated vulnerabilities blank.
func (s Severity) display() string {
	if s == SeverityNone {
		return ""
	}
	return string(s)
}

// htmlToText strips the markup MSRC embeds in notes, e.g. "<p>...</p>".
// Block elements are separated by a single space.
func htmlToText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("p, li, div, br, h1, h2, h3, h4").AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
