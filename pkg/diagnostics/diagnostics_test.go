package diagnostics_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foiafix/pkg/diagnostics"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/reconciler"
	"github.com/agentstation/foiafix/pkg/registry"
	"github.com/agentstation/foiafix/pkg/repair"
)

func testRegistry() *registry.Registry {
	return registry.New(
		[]registry.Agency{
			{Abbreviation: "DOJ", Name: "Department of Justice"},
			{Abbreviation: "FTC", Name: "Federal Trade Commission"},
			{Abbreviation: "USDA", Name: "Department of Agriculture"},
		},
		[]registry.Component{
			{Abbreviation: "FBI", Agency: "DOJ"},
			{Abbreviation: "OIP", Agency: "DOJ"},
			{Abbreviation: "FTC", Agency: "FTC"},
			{Abbreviation: "FS", Agency: "USDA"},
		},
	)
}

func reportXML(agency string, components ...string) *fstest.MapFile {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><iepd:FoiaAnnualReport xmlns:s="urn:s"><nc:Organization s:id="ORG0">`)
	fmt.Fprintf(&b, `<nc:OrganizationAbbreviationText>%s</nc:OrganizationAbbreviationText>`, agency)
	for i, c := range components {
		fmt.Fprintf(&b, `<nc:OrganizationSubUnit s:id="ORG%d"><nc:OrganizationAbbreviationText>%s</nc:OrganizationAbbreviationText></nc:OrganizationSubUnit>`, i+1, c)
	}
	b.WriteString(`</nc:Organization></iepd:FoiaAnnualReport>`)
	return &fstest.MapFile{Data: []byte(b.String())}
}

func TestCorpus(t *testing.T) {
	fsys := fstest.MapFS{
		"2009/usda.xml":  reportXML("USDA", "FS"),
		"2009/doj.xml":   reportXML("DOJ", "FBI"),
		"2009/notes.txt": {Data: []byte("ignored")},
		"2008/ftc.xml":   reportXML("FTC"),
		"scratch/a.xml":  reportXML("FTC"),
	}
	corpus := diagnostics.NewCorpus(fsys)

	years, err := corpus.Years()
	require.NoError(t, err)
	assert.Equal(t, []string{"2008", "2009"}, years)

	files, err := corpus.Files("2009")
	require.NoError(t, err)
	assert.Equal(t, []string{"doj.xml", "usda.xml"}, files)

	first, err := corpus.Report("2009", "doj.xml")
	require.NoError(t, err)
	second, err := corpus.Report("2009", "doj.xml")
	require.NoError(t, err)
	assert.Same(t, first, second)

	fresh, err := corpus.Open("2009", "doj.xml")
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)

	_, err = corpus.Files("2010")
	assert.Error(t, err)

	_, err = corpus.Files("09")
	assert.True(t, errors.IsValidationError(err))
}

func TestCorpusParseErrorNamesFile(t *testing.T) {
	corpus := diagnostics.NewCorpus(fstest.MapFS{
		"2008/bad.xml": {Data: []byte("<iepd:FoiaAnnualReport>")},
	})
	_, err := corpus.Report("2008", "bad.xml")
	require.Error(t, err)

	var parseErr *errors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "2008/bad.xml", parseErr.File)
}

func TestModelTracker(t *testing.T) {
	tracker := diagnostics.NewModelTracker()

	assert.Nil(t, tracker.Observe("2008", "DOJ", diagnostics.Decentralized))
	assert.Nil(t, tracker.Observe("2008", "FTC", diagnostics.Centralized))
	assert.Nil(t, tracker.Observe("2009", "FTC", diagnostics.Centralized))

	change := tracker.Observe("2009", "DOJ", diagnostics.Centralized)
	require.NotNil(t, change)
	assert.Equal(t, "In 2009 DOJ changed from decentralized to centralized.", change.String())

	tracker.Observe("2009", "DOJ", diagnostics.Centralized)

	assert.Len(t, tracker.Changes(), 1)
	assert.Equal(t, []diagnostics.Filing{{Year: "2009", Agency: "DOJ", Count: 2}}, tracker.MultipleFilings())

	table := tracker.ChangesTable()
	require.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"2009", "DOJ", "decentralized", "centralized", change.String()}, table.Rows[0])

	filings := tracker.FilingsTable()
	assert.Equal(t, [][]string{{"2009", "DOJ", "2"}}, filings.Rows)
}

func TestModelTrackerCentralizedToDecentralized(t *testing.T) {
	tracker := diagnostics.NewModelTracker()

	assert.Nil(t, tracker.Observe("2008", "XYZ", diagnostics.Centralized))
	change := tracker.Observe("2009", "XYZ", diagnostics.Decentralized)
	require.NotNil(t, change)

	require.Len(t, tracker.Changes(), 1)
	assert.Equal(t, "In 2009 XYZ changed from centralized to decentralized.", change.String())
	assert.Empty(t, tracker.MultipleFilings())
}

func TestStructureCheck(t *testing.T) {
	reg := testRegistry()

	assert.Nil(t, diagnostics.StructureCheck("2008", "ftc.xml", "FTC", true, reg))
	assert.Nil(t, diagnostics.StructureCheck("2008", "doj.xml", "DOJ", false, reg))

	m := diagnostics.StructureCheck("2008", "ftc.xml", "FTC", false, reg)
	require.NotNil(t, m)
	assert.Equal(t, diagnostics.Decentralized, m.Document)
	assert.Equal(t, diagnostics.Centralized, m.Registry)
	assert.Equal(t, errors.AnomalyDecentralizedMismatch, m.Anomaly().Kind)

	m = diagnostics.StructureCheck("2008", "doj.xml", "DOJ", true, reg)
	require.NotNil(t, m)
	assert.Equal(t, errors.AnomalyCentralizedMismatch, m.Anomaly().Kind)

	table := diagnostics.StructureTable([]diagnostics.StructureMismatch{*m})
	assert.Equal(t, [][]string{{"2008", "DOJ", "centralized", "decentralized", "doj.xml"}}, table.Rows)
}

func TestAudit(t *testing.T) {
	audit := diagnostics.NewAudit(testRegistry())
	assert.True(t, audit.Clean())

	audit.Add("doj.xml", &repair.Result{
		Agency: "DOJ",
		Unresolved: []*errors.UnresolvedAbbreviationError{
			{Raw: "F.B.I", Normalized: "F.B.I", Scope: "DOJ"},
			{Raw: "XYZ", Normalized: "XYZ", Scope: "DOJ"},
		},
		InvalidFixes: []*errors.InvalidFixError{{Scope: "DOJ", From: "EOUSA", To: "USAO"}},
	})
	audit.Add("bad.xml", &repair.Result{
		Unresolved: []*errors.UnresolvedAbbreviationError{
			{Raw: "D.O.J.", Normalized: "D.O.J.", Scope: errors.ScopeAgency},
		},
	})
	audit.Add("none.xml", nil)

	assert.False(t, audit.Clean())
	assert.Equal(t,
		[][]string{{"D.O.J.", "DOJ", "", "bad.xml"}},
		audit.AgencyTable().Rows)
	assert.Equal(t,
		[][]string{
			{"DOJ", "F.B.I", "FBI", "", "doj.xml"},
			{"DOJ", "XYZ", "", "", "doj.xml"},
		},
		audit.ComponentTable().Rows)
	assert.Equal(t,
		[][]string{{"DOJ", "EOUSA", "USAO", "doj.xml"}},
		audit.InvalidFixTable().Rows)
	assert.Len(t, audit.Tables(), 3)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"DOJ", "FBI", "OIP"}

	assert.Equal(t, "FBI", diagnostics.Suggest("FBI", candidates))
	assert.Equal(t, "FBI", diagnostics.Suggest("F.B.I.", candidates))
	assert.Equal(t, "", diagnostics.Suggest("ZZZ", candidates))
	assert.Equal(t, "", diagnostics.Suggest("FBI", nil))
	assert.Equal(t, "", diagnostics.Suggest("...", candidates))
}

func TestRegistryDuplicates(t *testing.T) {
	reg := registry.New(
		[]registry.Agency{{Abbreviation: "DOJ"}, {Abbreviation: "FTC"}},
		[]registry.Component{
			{Abbreviation: "OIP", Agency: "DOJ"},
			{Abbreviation: "FBI", Agency: "DOJ"},
			{Abbreviation: "OIP", Agency: "DOJ"},
			{Abbreviation: "FBI", Agency: "DOJ"},
			{Abbreviation: "FTC", Agency: "FTC"},
		},
	)

	table := diagnostics.RegistryDuplicates(reg)
	assert.Equal(t, 2, table.Len())
	for _, row := range table.Rows {
		assert.Equal(t, "DOJ", row[0])
		assert.Equal(t, "2", row[2])
	}

	assert.Equal(t,
		[]string{"There are duplicate components in DOJ: [FBI OIP]"},
		diagnostics.DuplicateMessages(reg))

	assert.True(t, diagnostics.RegistryDuplicates(testRegistry()).Empty())
}

func TestEndYears(t *testing.T) {
	fsys := fstest.MapFS{
		"2008/doj.xml": reportXML("DOJ", "FBI", "OIP", "ZZZ"),
		"2008/xyz.xml": reportXML("XYZ", "A"),
		"2009/doj.xml": reportXML("DOJ", "FBI"),
		"2010/doj.xml": reportXML("DOJ (Justice)", "FBI (Bureau)"),
		"2010/ftc.xml": reportXML("FTC", "OIP"),
	}
	rec, err := reconciler.New(testRegistry())
	require.NoError(t, err)

	rows, err := diagnostics.EndYears(context.Background(), diagnostics.NewCorpus(fsys), rec, "2008", "2011")
	require.NoError(t, err)

	assert.Equal(t, []diagnostics.EndYear{
		{XMLAgency: "DOJ", Agency: "DOJ", XMLComponent: "FBI", Component: "FBI", LastYear: "2010"},
		{XMLAgency: "DOJ", Agency: "DOJ", XMLComponent: "OIP", Component: "OIP", LastYear: "2008"},
		{XMLAgency: "DOJ", Agency: "DOJ", XMLComponent: "ZZZ", Component: diagnostics.Unknown, LastYear: "2008"},
		{XMLAgency: "XYZ", Agency: diagnostics.Unknown, XMLComponent: "A", Component: diagnostics.Unknown, LastYear: "2008"},
	}, rows)

	table := diagnostics.EndYearsTable(rows)
	assert.Equal(t, "Last year found", table.Headers[4])
	assert.Equal(t, 4, table.Len())
}

func TestEndYearsValidation(t *testing.T) {
	rec, err := reconciler.New(testRegistry())
	require.NoError(t, err)
	corpus := diagnostics.NewCorpus(fstest.MapFS{"2008/doj.xml": reportXML("DOJ")})
	ctx := context.Background()

	_, err = diagnostics.EndYears(ctx, corpus, rec, "2008", "2007")
	assert.True(t, errors.IsValidationError(err))

	_, err = diagnostics.EndYears(ctx, corpus, rec, "08", "2010")
	assert.True(t, errors.IsValidationError(err))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = diagnostics.EndYears(canceled, corpus, rec, "2008", "2008")
	assert.ErrorIs(t, err, context.Canceled)
}
