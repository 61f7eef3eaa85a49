// Package registry provides the canonical agency and component reference
// tables that report abbreviations are reconciled against, together with the
// curated fix tables for known misspellings.
//
// A Registry is immutable after construction and safe for concurrent reads.
package registry

import (
	"html"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/foiafix/pkg/errors"
)

// Agency is a top-level filing agency.
type Agency struct {
	Abbreviation string `json:"field_agency_abbreviation" yaml:"abbreviation"`
	Name         string `json:"name" yaml:"name"`
}

// Component is a reporting subdivision of an agency.
type Component struct {
	Abbreviation string `json:"field_agency_comp_abbreviation" yaml:"abbreviation"`
	Agency       string `json:"field_agency_abbreviation" yaml:"agency"`
	Name         string `json:"title" yaml:"name"`
}

// AgencyFixes maps a raw agency abbreviation to its canonical form.
type AgencyFixes map[string]string

// ComponentFixes maps canonical agency => raw component => canonical component.
type ComponentFixes map[string]map[string]string

// Registry answers exact-match queries over the reference tables.
type Registry struct {
	agencies       []Agency
	agencyIndex    map[string]int
	byAgency       map[string][]Component
	agencyFixes    AgencyFixes
	componentFixes ComponentFixes
}

// Option configures a Registry.
type Option func(*Registry)

// WithAgencyFixes sets the agency-level fix table.
func WithAgencyFixes(fixes AgencyFixes) Option {
	return func(r *Registry) {
		for raw, canonical := range fixes {
			r.agencyFixes[raw] = clean(canonical)
		}
	}
}

// WithComponentFixes sets the per-agency component fix table.
func WithComponentFixes(fixes ComponentFixes) Option {
	return func(r *Registry) {
		for agency, table := range fixes {
			scoped := make(map[string]string, len(table))
			for raw, canonical := range table {
				scoped[raw] = clean(canonical)
			}
			r.componentFixes[clean(agency)] = scoped
		}
	}
}

// New builds a Registry from already decoded tables. Text fields are
// unescaped and NFC normalized so lookups behave as plain exact matches.
func New(agencies []Agency, components []Component, opts ...Option) *Registry {
	r := &Registry{
		agencies:       make([]Agency, 0, len(agencies)),
		agencyIndex:    make(map[string]int, len(agencies)),
		byAgency:       make(map[string][]Component),
		agencyFixes:    make(AgencyFixes),
		componentFixes: make(ComponentFixes),
	}

	for _, a := range agencies {
		a.Abbreviation = clean(a.Abbreviation)
		a.Name = clean(a.Name)
		if _, ok := r.agencyIndex[a.Abbreviation]; ok {
			continue
		}
		r.agencyIndex[a.Abbreviation] = len(r.agencies)
		r.agencies = append(r.agencies, a)
	}

	for _, c := range components {
		c.Abbreviation = clean(c.Abbreviation)
		c.Agency = clean(c.Agency)
		c.Name = clean(c.Name)
		r.byAgency[c.Agency] = append(r.byAgency[c.Agency], c)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// clean strips HTML entity artifacts left by the CMS export.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(html.UnescapeString(s)))
}

// AgencyExists reports whether abbrev is a canonical agency abbreviation.
func (r *Registry) AgencyExists(abbrev string) bool {
	_, ok := r.agencyIndex[abbrev]
	return ok
}

// ComponentExists reports whether component is registered under agency.
func (r *Registry) ComponentExists(agency, component string) bool {
	for _, c := range r.byAgency[agency] {
		if c.Abbreviation == component {
			return true
		}
	}
	return false
}

// AgencyName returns the display name for a canonical agency abbreviation.
func (r *Registry) AgencyName(abbrev string) (string, error) {
	i, ok := r.agencyIndex[abbrev]
	if !ok {
		return "", errors.NewNotFoundError("agency", abbrev)
	}
	return r.agencies[i].Name, nil
}

// ComponentName returns the display name of a component within an agency.
func (r *Registry) ComponentName(agency, component string) (string, error) {
	for _, c := range r.byAgency[agency] {
		if c.Abbreviation == component {
			return c.Name, nil
		}
	}
	return "", errors.NewNotFoundError("component", agency+"/"+component)
}

// ComponentsOf returns the component abbreviations registered for agency in
// registry order. Duplicates are preserved.
func (r *Registry) ComponentsOf(agency string) []string {
	comps := r.byAgency[agency]
	out := make([]string, 0, len(comps))
	for _, c := range comps {
		out = append(out, c.Abbreviation)
	}
	return out
}

// AgencyFix returns the curated canonical form for a raw agency abbreviation.
func (r *Registry) AgencyFix(raw string) (string, bool) {
	fixed, ok := r.agencyFixes[raw]
	return fixed, ok
}

// ComponentFix returns the curated canonical form for a raw component
// abbreviation within agency.
func (r *Registry) ComponentFix(agency, raw string) (string, bool) {
	table, ok := r.componentFixes[agency]
	if !ok {
		return "", false
	}
	fixed, ok := table[raw]
	return fixed, ok
}

// IsCentralized reports whether the agency's only registered component is
// the agency itself.
func (r *Registry) IsCentralized(agency string) bool {
	comps := r.byAgency[agency]
	return len(comps) == 1 && comps[0].Abbreviation == agency
}

// Agencies returns all agencies in registry order.
func (r *Registry) Agencies() []Agency {
	return slices.Clone(r.agencies)
}

// Duplicates lists component abbreviations registered more than once for the
// same agency, ordered by agency then first appearance.
func (r *Registry) Duplicates() []*errors.DuplicateRegistryEntryError {
	var dupes []*errors.DuplicateRegistryEntryError
	for _, agency := range r.componentAgencies() {
		counts := make(map[string]int)
		var order []string
		for _, c := range r.byAgency[agency] {
			if counts[c.Abbreviation] == 0 {
				order = append(order, c.Abbreviation)
			}
			counts[c.Abbreviation]++
		}
		for _, abbrev := range order {
			if counts[abbrev] > 1 {
				dupes = append(dupes, &errors.DuplicateRegistryEntryError{
					Agency:       agency,
					Abbreviation: abbrev,
					Count:        counts[abbrev],
				})
			}
		}
	}
	return dupes
}

// InvalidFixes checks every fix table entry and returns those whose target is
// not itself registered.
func (r *Registry) InvalidFixes() []*errors.InvalidFixError {
	var invalid []*errors.InvalidFixError
	for _, raw := range sortedKeys(r.agencyFixes) {
		if to := r.agencyFixes[raw]; !r.AgencyExists(to) {
			invalid = append(invalid, &errors.InvalidFixError{Scope: errors.ScopeAgency, From: raw, To: to})
		}
	}
	for _, agency := range sortedKeys(r.componentFixes) {
		table := r.componentFixes[agency]
		for _, raw := range sortedKeys(table) {
			if to := table[raw]; !r.ComponentExists(agency, to) {
				invalid = append(invalid, &errors.InvalidFixError{Scope: agency, From: raw, To: to})
			}
		}
	}
	return invalid
}

// componentAgencies returns agencies that have components, registered
// agencies first in registry order, then any orphans sorted.
func (r *Registry) componentAgencies() []string {
	seen := make(map[string]bool, len(r.byAgency))
	var out []string
	for _, a := range r.agencies {
		if _, ok := r.byAgency[a.Abbreviation]; ok {
			out = append(out, a.Abbreviation)
			seen[a.Abbreviation] = true
		}
	}
	var orphans []string
	for agency := range r.byAgency {
		if !seen[agency] {
			orphans = append(orphans, agency)
		}
	}
	slices.Sort(orphans)
	return append(out, orphans...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
