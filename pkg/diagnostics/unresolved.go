package diagnostics

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/registry"
	"github.com/agentstation/foiafix/pkg/repair"
)

// Registry is the set of registry queries diagnostics read.
type Registry interface {
	Agencies() []registry.Agency
	ComponentsOf(agency string) []string
	IsCentralized(agency string) bool
	Duplicates() []*errors.DuplicateRegistryEntryError
}

// UnresolvedRow is one abbreviation that matched nothing in the registry.
type UnresolvedRow struct {
	// Agency is the canonical agency for component rows, empty for agency rows.
	Agency     string
	Raw        string
	Normalized string
	Suggestion string
	File       string
}

// InvalidFixRow is a curated fix whose target is not registered.
type InvalidFixRow struct {
	Scope string
	From  string
	To    string
	File  string
}

// Audit collects abbreviation problems across the documents of a year.
type Audit struct {
	reg        Registry
	agencies   []UnresolvedRow
	components []UnresolvedRow
	invalid    []InvalidFixRow
}

// NewAudit creates an Audit that suggests replacements from reg.
func NewAudit(reg Registry) *Audit {
	return &Audit{reg: reg}
}

// Add records the problems found while auditing file. It accepts the partial
// Result of a failed document.
func (a *Audit) Add(file string, res *repair.Result) {
	if res == nil {
		return
	}
	for _, u := range res.Unresolved {
		row := UnresolvedRow{Raw: u.Raw, Normalized: u.Normalized, File: file}
		if u.Scope == errors.ScopeAgency {
			row.Suggestion = Suggest(u.Normalized, a.agencyAbbreviations())
			a.agencies = append(a.agencies, row)
			continue
		}
		row.Agency = u.Scope
		row.Suggestion = Suggest(u.Normalized, a.reg.ComponentsOf(u.Scope))
		a.components = append(a.components, row)
	}
	for _, f := range res.InvalidFixes {
		a.invalid = append(a.invalid, InvalidFixRow{Scope: f.Scope, From: f.From, To: f.To, File: file})
	}
}

// Clean reports whether nothing was collected.
func (a *Audit) Clean() bool {
	return len(a.agencies) == 0 && len(a.components) == 0 && len(a.invalid) == 0
}

// UnresolvedAgencies returns the agency rows in the order they were found.
func (a *Audit) UnresolvedAgencies() []UnresolvedRow {
	return a.agencies
}

// UnresolvedComponents returns the component rows in the order they were found.
func (a *Audit) UnresolvedComponents() []UnresolvedRow {
	return a.components
}

// InvalidFixes returns the invalid fix rows.
func (a *Audit) InvalidFixes() []InvalidFixRow {
	return a.invalid
}

// AgencyTable renders the unresolved agencies. "Needs to be created" is left
// blank for the reviewer.
func (a *Audit) AgencyTable() *Table {
	t := &Table{
		Title:   "Agencies",
		Headers: []string{"Abbrev from XML", "Abbrev in registry", "Needs to be created", "XML file"},
	}
	for _, r := range a.agencies {
		t.append(r.Raw, r.Suggestion, "", r.File)
	}
	return t
}

// ComponentTable renders the unresolved components.
func (a *Audit) ComponentTable() *Table {
	t := &Table{
		Title:   "Components",
		Headers: []string{"Agency", "Abbrev from XML", "Abbrev in registry", "Needs to be created", "XML file"},
	}
	for _, r := range a.components {
		t.append(r.Agency, r.Raw, r.Suggestion, "", r.File)
	}
	return t
}

// InvalidFixTable renders fixes that point at unregistered abbreviations.
func (a *Audit) InvalidFixTable() *Table {
	t := &Table{
		Title:   "Invalid fixes",
		Headers: []string{"Scope", "From", "To", "XML file"},
	}
	for _, r := range a.invalid {
		t.append(r.Scope, r.From, r.To, r.File)
	}
	return t
}

// Tables returns every audit table, empty ones included.
func (a *Audit) Tables() []*Table {
	return []*Table{a.AgencyTable(), a.ComponentTable(), a.InvalidFixTable()}
}

func (a *Audit) agencyAbbreviations() []string {
	agencies := a.reg.Agencies()
	out := make([]string, 0, len(agencies))
	for _, ag := range agencies {
		out = append(out, ag.Abbreviation)
	}
	return out
}

// Suggest returns the candidate that best fuzzy-matches raw, or "" when none
// does. Punctuation in raw is ignored on a second attempt so "F.B.I." can
// still match "FBI".
func Suggest(raw string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	for _, pattern := range []string{raw, alphanumeric(raw)} {
		if pattern == "" {
			continue
		}
		if matches := fuzzy.Find(pattern, candidates); len(matches) > 0 {
			return matches[0].Str
		}
	}
	return ""
}

func alphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
