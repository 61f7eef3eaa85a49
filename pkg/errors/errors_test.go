package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/foiafix/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "agency", ID: "DOJ"}
		assert.Equal(t, `agency "DOJ" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup: %w", pkgerrors.NewNotFoundError("agency", "XYZ"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestUnresolvedAbbreviationError(t *testing.T) {
	t.Run("agency scope", func(t *testing.T) {
		err := &pkgerrors.UnresolvedAbbreviationError{Raw: " DOJJ ", Normalized: "DOJJ", Scope: pkgerrors.ScopeAgency}
		assert.Contains(t, err.Error(), "agency abbreviation")
		assert.Contains(t, err.Error(), "DOJJ")
		assert.True(t, pkgerrors.IsUnresolved(err))
		assert.False(t, pkgerrors.IsInvalidFix(err))
	})

	t.Run("component scope", func(t *testing.T) {
		err := &pkgerrors.UnresolvedAbbreviationError{Raw: "FBII", Normalized: "FBII", Scope: "DOJ"}
		assert.Contains(t, err.Error(), "not found in DOJ")
	})

	t.Run("errors.As", func(t *testing.T) {
		var target *pkgerrors.UnresolvedAbbreviationError
		err := pkgerrors.WrapDocument("doj.xml", "agency", &pkgerrors.UnresolvedAbbreviationError{Raw: "X", Scope: "agency"})
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "X", target.Raw)
	})
}

func TestInvalidFixError(t *testing.T) {
	err := &pkgerrors.InvalidFixError{Scope: "DOJ", From: "Fed Bureau", To: "FBX"}
	assert.Contains(t, err.Error(), `"Fed Bureau" => "FBX"`)
	assert.True(t, pkgerrors.IsInvalidFix(err))
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidFix))
}

func TestWarningKinds(t *testing.T) {
	anomaly := &pkgerrors.StructuralAnomalyError{Agency: "DOJ", Kind: pkgerrors.AnomalySelfComponent, Message: "component matches agency"}
	assert.True(t, pkgerrors.IsStructuralAnomaly(anomaly))
	assert.Equal(t, "agency DOJ: component matches agency", anomaly.Error())

	long := &pkgerrors.FieldTooLongError{Field: "foia:OtherDenialReasonDescriptionText", Length: 300, Limit: 255}
	assert.True(t, errors.Is(long, pkgerrors.ErrFieldTooLong))
	assert.Contains(t, long.Error(), "300 characters (limit 255)")

	dup := &pkgerrors.DuplicateRegistryEntryError{Agency: "DOJ", Abbreviation: "FBI", Count: 2}
	assert.True(t, errors.Is(dup, pkgerrors.ErrDuplicateEntry))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("year", "20x8", "must be a four digit year")
	assert.Equal(t, "validation failed for field year: must be a four digit year", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))

	bare := &pkgerrors.ValidationError{Message: "bad"}
	assert.Equal(t, "validation failed: bad", bare.Error())
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("boom")

	assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
	assert.Nil(t, pkgerrors.WrapParse("xml", "x", nil))
	assert.Nil(t, pkgerrors.WrapDocument("x", "", nil))

	ioErr := pkgerrors.WrapIO("read", "input/2008/doj.xml", base)
	assert.ErrorIs(t, ioErr, base)
	assert.Contains(t, ioErr.Error(), "read of input/2008/doj.xml")

	parseErr := pkgerrors.WrapParse("json", "agencies.json", base)
	assert.ErrorIs(t, parseErr, base)
	assert.Contains(t, parseErr.Error(), "json file agencies.json")

	docErr := pkgerrors.WrapDocument("doj.xml", "agency", base)
	assert.Equal(t, "doj.xml: failed at agency: boom", docErr.Error())
	assert.Equal(t, "doj.xml: boom", pkgerrors.WrapDocument("doj.xml", "", base).Error())

	cfg := pkgerrors.NewConfigError("registry", "directory missing", base)
	assert.ErrorIs(t, cfg, base)
	assert.Equal(t, "configuration error in registry: directory missing", cfg.Error())
}
