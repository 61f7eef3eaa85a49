package registry_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/registry"
)

func testRegistry() *registry.Registry {
	return registry.New(
		[]registry.Agency{
			{Abbreviation: "DOJ", Name: "Department of Justice"},
			{Abbreviation: "USDA", Name: "Department of Agriculture"},
			{Abbreviation: "FTC", Name: "Federal Trade Commission"},
		},
		[]registry.Component{
			{Abbreviation: "FBI", Agency: "DOJ", Name: "Federal Bureau of Investigation"},
			{Abbreviation: "OIP", Agency: "DOJ", Name: "Office of Information Policy"},
			{Abbreviation: "FBI", Agency: "DOJ", Name: "Federal Bureau of Investigation"},
			{Abbreviation: "R&amp;D", Agency: "USDA", Name: "Research &amp; Development"},
			{Abbreviation: "FTC", Agency: "FTC", Name: "Federal Trade Commission"},
		},
		registry.WithAgencyFixes(registry.AgencyFixes{"D.O.J.": "DOJ", "GONE": "NOPE"}),
		registry.WithComponentFixes(registry.ComponentFixes{
			"DOJ": {"F.B.I.": "FBI", "OLD": "MISSING"},
		}),
	)
}

func TestRegistryQueries(t *testing.T) {
	reg := testRegistry()

	assert.True(t, reg.AgencyExists("DOJ"))
	assert.False(t, reg.AgencyExists("doj"))
	assert.True(t, reg.ComponentExists("DOJ", "FBI"))
	assert.False(t, reg.ComponentExists("USDA", "FBI"))

	name, err := reg.AgencyName("USDA")
	require.NoError(t, err)
	assert.Equal(t, "Department of Agriculture", name)

	_, err = reg.AgencyName("XYZ")
	assert.True(t, errors.IsNotFound(err))

	compName, err := reg.ComponentName("DOJ", "OIP")
	require.NoError(t, err)
	assert.Equal(t, "Office of Information Policy", compName)

	assert.Equal(t, []string{"FBI", "OIP", "FBI"}, reg.ComponentsOf("DOJ"))
	assert.Empty(t, reg.ComponentsOf("XYZ"))
	assert.Len(t, reg.Agencies(), 3)
}

func TestRegistryDecodesEntities(t *testing.T) {
	reg := testRegistry()
	assert.True(t, reg.ComponentExists("USDA", "R&D"))

	name, err := reg.ComponentName("USDA", "R&D")
	require.NoError(t, err)
	assert.Equal(t, "Research & Development", name)
}

func TestRegistryFixes(t *testing.T) {
	reg := testRegistry()

	fixed, ok := reg.AgencyFix("D.O.J.")
	assert.True(t, ok)
	assert.Equal(t, "DOJ", fixed)

	_, ok = reg.AgencyFix("DOJ")
	assert.False(t, ok)

	fixed, ok = reg.ComponentFix("DOJ", "F.B.I.")
	assert.True(t, ok)
	assert.Equal(t, "FBI", fixed)

	_, ok = reg.ComponentFix("USDA", "F.B.I.")
	assert.False(t, ok)
}

func TestIsCentralized(t *testing.T) {
	reg := testRegistry()
	assert.True(t, reg.IsCentralized("FTC"))
	assert.False(t, reg.IsCentralized("DOJ"))
	assert.False(t, reg.IsCentralized("XYZ"))
}

func TestDuplicates(t *testing.T) {
	dupes := testRegistry().Duplicates()
	require.Len(t, dupes, 1)
	assert.Equal(t, "DOJ", dupes[0].Agency)
	assert.Equal(t, "FBI", dupes[0].Abbreviation)
	assert.Equal(t, 2, dupes[0].Count)
	assert.ErrorIs(t, dupes[0], errors.ErrDuplicateEntry)
}

func TestInvalidFixes(t *testing.T) {
	invalid := testRegistry().InvalidFixes()
	require.Len(t, invalid, 2)
	assert.Equal(t, &errors.InvalidFixError{Scope: errors.ScopeAgency, From: "GONE", To: "NOPE"}, invalid[0])
	assert.Equal(t, &errors.InvalidFixError{Scope: "DOJ", From: "OLD", To: "MISSING"}, invalid[1])
}

func TestLoad(t *testing.T) {
	t.Run("json export layout", func(t *testing.T) {
		fsys := fstest.MapFS{
			"drupal-agencies.json": &fstest.MapFile{Data: []byte(`[
				{"field_agency_abbreviation": "DOJ", "name": "Department of Justice"}
			]`)},
			"drupal-agency-components.json": &fstest.MapFile{Data: []byte(`[
				{"field_agency_comp_abbreviation": "OJP", "field_agency_abbreviation": "DOJ", "title": "Office of Justice Programs"},
				{"field_agency_comp_abbreviation": "A&amp;B", "field_agency_abbreviation": "DOJ", "title": "Arts – Bureau\/Office of O&#039;Neil"}
			]`)},
			"xml-agency-fixes.json": &fstest.MapFile{Data: []byte(`{"JUSTICE": "DOJ"}`)},
			"xml-agency-component-fixes.json": &fstest.MapFile{Data: []byte(`{"DOJ": {"O.J.P.": "OJP"}}`)},
		}

		reg, err := registry.Load(fsys)
		require.NoError(t, err)
		assert.True(t, reg.AgencyExists("DOJ"))
		assert.True(t, reg.ComponentExists("DOJ", "A&B"))

		name, err := reg.ComponentName("DOJ", "A&B")
		require.NoError(t, err)
		assert.Equal(t, "Arts – Bureau/Office of O'Neil", name)

		fixed, ok := reg.AgencyFix("JUSTICE")
		assert.True(t, ok)
		assert.Equal(t, "DOJ", fixed)

		fixed, ok = reg.ComponentFix("DOJ", "O.J.P.")
		assert.True(t, ok)
		assert.Equal(t, "OJP", fixed)
	})

	t.Run("yaml tables without fixes", func(t *testing.T) {
		fsys := fstest.MapFS{
			"agencies.yaml": &fstest.MapFile{Data: []byte("- abbreviation: FTC\n  name: Federal Trade Commission\n")},
			"agency-components.yaml": &fstest.MapFile{Data: []byte("- abbreviation: FTC\n  agency: FTC\n  name: Federal Trade Commission\n")},
		}

		reg, err := registry.Load(fsys)
		require.NoError(t, err)
		assert.True(t, reg.IsCentralized("FTC"))
		_, ok := reg.AgencyFix("FTC")
		assert.False(t, ok)
	})

	t.Run("missing agencies table", func(t *testing.T) {
		_, err := registry.Load(fstest.MapFS{})
		require.Error(t, err)
		var ioErr *errors.IOError
		assert.True(t, errors.As(err, &ioErr))
	})

	t.Run("malformed json", func(t *testing.T) {
		fsys := fstest.MapFS{
			"agencies.json": &fstest.MapFile{Data: []byte(`{not json`)},
		}
		_, err := registry.Load(fsys)
		var parseErr *errors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "json", parseErr.Format)
	})
}
