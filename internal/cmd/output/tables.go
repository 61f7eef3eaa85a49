package output

import (
	"io"

	"github.com/agentstation/foiafix/pkg/diagnostics"
)

// FromTable converts a diagnostics table.
func FromTable(t *diagnostics.Table) Data {
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return Data{Title: t.Title, Headers: t.Headers, Rows: rows}
}

// FromTables converts diagnostics tables in order.
func FromTables(tables ...*diagnostics.Table) []Data {
	out := make([]Data, 0, len(tables))
	for _, t := range tables {
		out = append(out, FromTable(t))
	}
	return out
}

// WriteTables writes diagnostics tables in the given format.
func WriteTables(w io.Writer, format Format, tables ...*diagnostics.Table) error {
	return NewFormatter(format).Format(w, FromTables(tables...))
}
