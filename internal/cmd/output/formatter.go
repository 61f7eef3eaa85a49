// Package output provides formatters for command output.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format types for output.
type Format string

const (
	// FormatCSV represents comma separated output, one record per row.
	FormatCSV Format = "csv"
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents Markdown table output format.
	FormatMarkdown Format = "markdown"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &CSVFormatter{}
	}
}

// Data represents one titled table.
type Data struct {
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// CSVFormatter outputs comma separated records. When more than one table is
// written, each is preceded by a one-field title record and separated by a
// blank line.
type CSVFormatter struct{}

// Format outputs data as CSV.
func (f *CSVFormatter) Format(w io.Writer, data any) error {
	tables, ok := toData(data)
	if !ok {
		return fmt.Errorf("cannot write %T as csv", data)
	}

	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		cw := csv.NewWriter(w)
		if len(tables) > 1 && t.Title != "" {
			if err := cw.Write([]string{t.Title}); err != nil {
				return err
			}
		}
		if len(t.Headers) > 0 {
			if err := cw.Write(t.Headers); err != nil {
				return err
			}
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			return err
		}
	}
	return nil
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	tables, ok := toData(data)
	if !ok {
		// Fall back to JSON for non-table data
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if t.Title != "" {
			fmt.Fprintln(w, t.Title)
		}
		if err := f.formatTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	table := tablewriter.NewTable(w)

	if len(data.Headers) > 0 {
		// Convert headers to []any for the new API
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// MarkdownFormatter outputs a level 2 heading and a Markdown table per table.
type MarkdownFormatter struct{}

// Format outputs data as Markdown.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	tables, ok := toData(data)
	if !ok {
		return fmt.Errorf("cannot write %T as markdown", data)
	}

	doc := md.NewMarkdown(w)
	for _, t := range tables {
		if t.Title != "" {
			doc.H2(t.Title)
		}
		doc.Table(md.TableSet{
			Header: t.Headers,
			Rows:   t.Rows,
		})
	}
	return doc.Build()
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	// Use explicit format if provided
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Pipes and redirects get CSV so reports can go straight to a file
	return FormatCSV
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatCSV, FormatTable, FormatJSON, FormatYAML, FormatMarkdown, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: csv, table, json, yaml, markdown", s)
	}
}

// toData converts the supported inputs to tables: Data, []Data, or a slice of
// structs whose fields become columns.
func toData(data any) ([]Data, bool) {
	switch v := data.(type) {
	case Data:
		return []Data{v}, true
	case *Data:
		return []Data{*v}, true
	case []Data:
		return v, true
	}
	if d := structSliceToData(reflect.ValueOf(data)); d != nil {
		return []Data{*d}, true
	}
	return nil, false
}

// structSliceToData converts a slice of structs to Data.
func structSliceToData(v reflect.Value) *Data {
	if v.Kind() != reflect.Slice {
		return nil
	}
	elemType := v.Type().Elem()
	if elemType.Kind() != reflect.Struct {
		return nil
	}

	caser := cases.Title(language.English)

	// Extract field names as headers
	var headers []string
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		// Use json tag if available, otherwise field name
		if jsonTag := field.Tag.Get("json"); jsonTag != "" && jsonTag != "-" {
			// Remove options like ,omitempty
			if idx := strings.Index(jsonTag, ","); idx > 0 {
				jsonTag = jsonTag[:idx]
			}
			headers = append(headers, caser.String(strings.ReplaceAll(jsonTag, "_", " ")))
		} else {
			headers = append(headers, field.Name)
		}
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		row := make([]string, 0, elem.NumField())
		for j := 0; j < elem.NumField(); j++ {
			row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
		}
		rows = append(rows, row)
	}

	return &Data{
		Headers: headers,
		Rows:    rows,
	}
}
