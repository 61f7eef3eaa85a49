package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foiafix/pkg/diagnostics"
)

func sampleTable() *diagnostics.Table {
	return &diagnostics.Table{
		Title:   "Agencies",
		Headers: []string{"Abbrev from XML", "XML file"},
		Rows:    [][]string{{"D.O.J.", "doj.xml"}, {"R&D, Inc", "rd.xml"}},
	}
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, FormatCSV, sampleTable()))
	assert.Equal(t, "Abbrev from XML,XML file\nD.O.J.,doj.xml\n\"R&D, Inc\",rd.xml\n", buf.String())
}

func TestCSVFormatterMultipleTables(t *testing.T) {
	empty := &diagnostics.Table{Title: "Components", Headers: []string{"Agency"}}

	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, FormatCSV, sampleTable(), empty))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Agencies\nAbbrev from XML,XML file\n"))
	assert.Contains(t, out, "\n\nComponents\nAgency\n")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, FormatJSON, &diagnostics.Table{Title: "Empty", Headers: []string{"A"}}))
	assert.JSONEq(t, `[{"title":"Empty","headers":["A"],"rows":[]}]`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, FormatYAML, sampleTable()))
	assert.Contains(t, buf.String(), "title: Agencies")
	assert.Contains(t, buf.String(), "headers:")
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, FormatMarkdown, sampleTable()))
	assert.Contains(t, buf.String(), "## Agencies")
	assert.Contains(t, strings.ToLower(buf.String()), "abbrev from xml")
	assert.Contains(t, buf.String(), "D.O.J.")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, FormatTable, sampleTable()))
	assert.Contains(t, buf.String(), "Agencies")
	assert.Contains(t, buf.String(), "D.O.J.")
}

func TestStructSlice(t *testing.T) {
	type row struct {
		Year       string `json:"year"`
		AgencyName string `json:"agency_name"`
		Count      int
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatCSV).Format(&buf, []row{{"2008", "DOJ", 2}}))
	assert.Equal(t, "Year,Agency Name,Count\n2008,DOJ,2\n", buf.String())
}

func TestCSVRejectsUnsupported(t *testing.T) {
	err := NewFormatter(FormatCSV).Format(&bytes.Buffer{}, map[string]int{"a": 1})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "TABLE", "json", "yaml", "markdown", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("wide")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("JSON"))
}
