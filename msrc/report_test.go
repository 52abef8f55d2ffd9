package msrc_test

import (
	"bytes"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/aquasecurity/patch-tuesday/msrc"
)

var reportVulns = []msrc.Vulnerability{
	{
		Title:            "Microsoft Defender Remote Code Execution Vulnerability",
		CVE:              "CVE-2021-1647",
		Severity:         msrc.SeverityCritical,
		CVSS:             lo.ToPtr(7.8),
		Impact:           "Remote Code Execution",
		Description:      lo.ToPtr("<p>A remote code execution vulnerability exists in <b>Microsoft Defender</b>.</p>"),
		Acknowledgements: lo.ToPtr("Bruce Lee, Chuck Norris"),
		Public:           false,
		Exploited:        true,
		AffectedProducts: []string{"11569"},
	},
	{
		Title:            "HTTP.sys Denial of Service Vulnerability",
		CVE:              "CVE-2021-1700",
		Severity:         msrc.SeverityNone,
		CVSS:             lo.ToPtr(7.0),
		AffectedProducts: []string{},
	},
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msrc.Write(&buf, msrc.FormatText, reportVulns))

	want := `Microsoft Defender Remote Code Execution Vulnerability
CVE-2021-1647
Severity: Critical
CVSS: 7.8
Impact: Remote Code Execution
Description: A remote code execution vulnerability exists in Microsoft Defender.
Publicly Disclosed: false
Exploited: true
Acknowledgments: Bruce Lee, Chuck Norris
--------
HTTP.sys Denial of Service Vulnerability
CVE-2021-1700
Severity: ` + `
CVSS: 7
Impact: ` + `
Publicly Disclosed: false
Exploited: false
--------
`
	assert.Equal(t, want, buf.String())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msrc.Write(&buf, msrc.FormatJSON, reportVulns[1:]))

	assert.JSONEq(t, `[
  {
    "title": "HTTP.sys Denial of Service Vulnerability",
    "cve": "CVE-2021-1700",
    "severity": "None",
    "cvss": 7,
    "impact": "",
    "public": false,
    "exploited": false,
    "affectedProducts": []
  }
]`, buf.String())
}

func TestWrite_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msrc.Write(&buf, msrc.FormatJSON, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msrc.Write(&buf, msrc.FormatYAML, reportVulns))

	var got []msrc.Vulnerability
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, reportVulns[0], got[0])
	assert.Equal(t, "CVE-2021-1700", got[1].CVE)
	assert.Equal(t, msrc.SeverityNone, got[1].Severity)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]msrc.Format{
		"text": msrc.FormatText,
		"JSON": msrc.FormatJSON,
		"yaml": msrc.FormatYAML,
	} {
		got, err := msrc.ParseFormat(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := msrc.ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown format: "xml"`)
}

func TestVulnerability_String(t *testing.T) {
	tests := []struct {
		name string
		vuln msrc.Vulnerability
		want []string
	}{
		{
			name: "paragraphs are separated",
			vuln: msrc.Vulnerability{
				CVE:         "CVE-2021-0001",
				Description: lo.ToPtr("<p>First paragraph.</p><p>Second <b>paragraph</b>.</p><ul><li>one</li><li>two</li></ul>"),
			},
			want: []string{"Description: First paragraph. Second paragraph. one two\n"},
		},
		{
			name: "empty acknowledgements",
			vuln: msrc.Vulnerability{
				CVE:              "CVE-2021-0002",
				Acknowledgements: lo.ToPtr(""),
			},
			want: []string{"Exploited: false\nAcknowledgments: \n--------"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.vuln.String()
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}
