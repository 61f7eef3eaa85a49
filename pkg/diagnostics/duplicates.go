package diagnostics

import (
	"fmt"
	"slices"
	"strconv"
)

// RegistryDuplicates renders component abbreviations listed more than once
// for the same agency.
func RegistryDuplicates(reg Registry) *Table {
	t := &Table{
		Title:   "Duplicate registry components",
		Headers: []string{"Agency", "Component", "Count"},
	}
	for _, d := range reg.Duplicates() {
		t.append(d.Agency, d.Abbreviation, strconv.Itoa(d.Count))
	}
	return t
}

// DuplicateMessages groups duplicates per agency into one line each, in the
// order the registry reports them.
func DuplicateMessages(reg Registry) []string {
	var (
		order []string
		byAg  = make(map[string][]string)
	)
	for _, d := range reg.Duplicates() {
		if _, ok := byAg[d.Agency]; !ok {
			order = append(order, d.Agency)
		}
		byAg[d.Agency] = append(byAg[d.Agency], d.Abbreviation)
	}

	out := make([]string, 0, len(order))
	for _, agency := range order {
		comps := byAg[agency]
		slices.Sort(comps)
		out = append(out, fmt.Sprintf("There are duplicate components in %s: %v", agency, comps))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
