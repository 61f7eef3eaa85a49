package abbrev_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/foiafix/pkg/abbrev"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain", "DOJ", "DOJ"},
		{"surrounding whitespace", " DOJ ", "DOJ"},
		{"formerly qualifier", "ABC (Formerly XYZ)", "ABC"},
		{"single word qualifier", "OIG (USDA)", "OIG"},
		{"escaped ampersand", "R&amp;D", "R&D"},
		{"double escaped ampersand", "R&amp;amp;D", "R&D"},
		{"unwrapped second word kept", "FBI HQ", "FBI HQ"},
		{"parenthesized second word drops the rest", "ABC (X) Y", "ABC"},
		{"parenthesis in third word kept", "ABC X (Y)", "ABC X (Y)"},
		{"open parenthesis only kept", "ABC (X Y", "ABC (X Y"},
		{"case preserved", "OfficeOfX", "OfficeOfX"},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, abbrev.Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", " DOJ ", "ABC (Formerly XYZ)", "ABC (X) Y", "R&amp;D", "R&amp;amp;D",
		"A (B) (C)", "  X  (Y)  ", "&amp;&amp;", "FBI HQ",
	}
	for _, in := range inputs {
		once := abbrev.Normalize(in)
		assert.Equal(t, once, abbrev.Normalize(once), "input %q", in)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "R&amp;D", abbrev.Escape("R&D"))
	assert.Equal(t, "R&D", abbrev.Normalize(abbrev.Escape("R&D")))
}
