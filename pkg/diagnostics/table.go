// Package diagnostics builds read-only review reports over repaired or
// audited documents and the registry: unresolved abbreviations, organization
// model mismatches and flips, registry duplicates and component end years.
//
// Nothing here mutates a document. Every report is rendered as a Table so the
// command layer can print it as CSV, a terminal table, JSON, YAML or Markdown.
package diagnostics

// Table is a titled grid of strings.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

func (t *Table) append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
