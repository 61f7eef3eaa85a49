package reconciler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/reconciler"
	"github.com/agentstation/foiafix/pkg/registry"
)

func testRegistry() *registry.Registry {
	return registry.New(
		[]registry.Agency{
			{Abbreviation: "DOJ", Name: "Department of Justice"},
			{Abbreviation: "USDA", Name: "Department of Agriculture"},
		},
		[]registry.Component{
			{Abbreviation: "FBI", Agency: "DOJ"},
			{Abbreviation: "OIP", Agency: "DOJ"},
			{Abbreviation: "R&D", Agency: "USDA"},
		},
		registry.WithAgencyFixes(registry.AgencyFixes{
			"JUSTICE":  "DOJ",
			"AG":       "AGRICULTURE",
			" USDA-X ": "USDA",
		}),
		registry.WithComponentFixes(registry.ComponentFixes{
			"DOJ": {"F.B.I.": "FBI", "GHOST": "NOPE"},
		}),
	)
}

func newReconciler(t *testing.T, opts ...reconciler.Option) *reconciler.Reconciler {
	t.Helper()
	rec, err := reconciler.New(testRegistry(), opts...)
	require.NoError(t, err)
	return rec
}

func TestResolveAgency(t *testing.T) {
	rec := newReconciler(t)

	tests := []struct {
		name      string
		raw       string
		canonical string
		method    reconciler.Method
	}{
		{"exact", "DOJ", "DOJ", reconciler.MethodExact},
		{"whitespace", " DOJ ", "DOJ", reconciler.MethodNormalized},
		{"qualifier", "DOJ (Formerly JUS)", "DOJ", reconciler.MethodNormalized},
		{"fix", "JUSTICE", "DOJ", reconciler.MethodFix},
		{"fix after normalize", " JUSTICE ", "DOJ", reconciler.MethodFix},
		{"fix on raw key", " USDA-X ", "USDA", reconciler.MethodFix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := rec.ResolveAgency(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, res.Canonical)
			assert.Equal(t, tt.method, res.Method)
			assert.Equal(t, tt.raw, res.Raw)
			assert.Equal(t, errors.ScopeAgency, res.Scope)
		})
	}
}

func TestResolveAgencyCanonicalIsFixedPoint(t *testing.T) {
	rec := newReconciler(t)
	for _, agency := range testRegistry().Agencies() {
		res, err := rec.ResolveAgency(agency.Abbreviation)
		require.NoError(t, err)
		assert.Equal(t, agency.Abbreviation, res.Canonical)
		assert.False(t, res.Changed())
	}
}

func TestResolveAgencyErrors(t *testing.T) {
	rec := newReconciler(t)

	t.Run("invalid fix", func(t *testing.T) {
		_, err := rec.ResolveAgency("AG")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidFix(err))

		var fixErr *errors.InvalidFixError
		require.True(t, errors.As(err, &fixErr))
		assert.Equal(t, "AG", fixErr.From)
		assert.Equal(t, "AGRICULTURE", fixErr.To)
	})

	t.Run("unresolved", func(t *testing.T) {
		_, err := rec.ResolveAgency(" XYZ (Old) ")
		require.Error(t, err)
		assert.True(t, errors.IsUnresolved(err))

		var unresolved *errors.UnresolvedAbbreviationError
		require.True(t, errors.As(err, &unresolved))
		assert.Equal(t, " XYZ (Old) ", unresolved.Raw)
		assert.Equal(t, "XYZ", unresolved.Normalized)
		assert.Equal(t, errors.ScopeAgency, unresolved.Scope)
	})
}

func TestResolveComponent(t *testing.T) {
	rec := newReconciler(t)

	res, err := rec.ResolveComponent("FBI", "DOJ")
	require.NoError(t, err)
	assert.Equal(t, "FBI", res.Canonical)
	assert.Equal(t, reconciler.MethodExact, res.Method)

	res, err = rec.ResolveComponent("R&amp;D", "USDA")
	require.NoError(t, err)
	assert.Equal(t, "R&D", res.Canonical)
	assert.Equal(t, reconciler.MethodNormalized, res.Method)
	assert.True(t, res.Changed())

	res, err = rec.ResolveComponent("F.B.I.", "DOJ")
	require.NoError(t, err)
	assert.Equal(t, "FBI", res.Canonical)
	assert.Equal(t, reconciler.MethodFix, res.Method)

	_, err = rec.ResolveComponent("FBI", "USDA")
	var unresolved *errors.UnresolvedAbbreviationError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "USDA", unresolved.Scope)

	_, err = rec.ResolveComponent("F.B.I.", "USDA")
	assert.True(t, errors.IsUnresolved(err))

	_, err = rec.ResolveComponent("GHOST", "DOJ")
	assert.True(t, errors.IsInvalidFix(err))
}

func TestCache(t *testing.T) {
	rec := newReconciler(t, reconciler.WithCache(time.Minute))

	for range 3 {
		res, err := rec.ResolveComponent("F.B.I.", "DOJ")
		require.NoError(t, err)
		assert.Equal(t, "FBI", res.Canonical)
	}
	_, err := rec.ResolveAgency("XYZ")
	require.Error(t, err)
	_, err = rec.ResolveAgency("XYZ")
	require.Error(t, err)

	stats := rec.CacheStats()
	assert.Equal(t, 1, stats.ItemCount)
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 3, stats.Misses)
}

func TestCacheScopesAreSeparate(t *testing.T) {
	rec := newReconciler(t, reconciler.WithCache(0))

	_, err := rec.ResolveComponent("FBI", "DOJ")
	require.NoError(t, err)
	_, err = rec.ResolveComponent("FBI", "USDA")
	assert.True(t, errors.IsUnresolved(err))
}

func TestNewValidation(t *testing.T) {
	_, err := reconciler.New(nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(testRegistry(), reconciler.WithCache(-time.Second))
	assert.True(t, errors.IsValidationError(err))

	rec := newReconciler(t)
	assert.Zero(t, rec.CacheStats())
}
