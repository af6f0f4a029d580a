// Package output renders command results as aligned tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sigs.k8s.io/yaml"
)

// Format selects how results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts a format name; empty means table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// Table is the tabular form of a result. A table without headers prints its
// rows only, which suits key/value detail views.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Details builds a two-column key/value table from alternating pairs.
func Details(pairs ...string) Table {
	var t Table
	for i := 0; i+1 < len(pairs); i += 2 {
		t.AddRow(pairs[i]+":", pairs[i+1])
	}
	return t
}

type Printer struct {
	w      io.Writer
	format Format
}

func New(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

func (p *Printer) Format() Format {
	return p.format
}

// Print renders v. In table mode the table callback supplies what is shown;
// JSON and YAML serialize v itself.
func (p *Printer) Print(v any, table func() Table) error {
	switch p.format {
	case FormatJSON:
		return p.json(v)
	case FormatYAML:
		return p.yaml(v)
	default:
		return p.table(table())
	}
}

// Message prints a one-line outcome, or {"message": ...} in the structured
// formats.
func (p *Printer) Message(msg string) error {
	if p.format == FormatTable {
		_, err := fmt.Fprintln(p.w, msg)
		return err
	}
	return p.Print(struct {
		Message string `json:"message"`
	}{msg}, nil)
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (p *Printer) yaml(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = p.w.Write(data)
	return err
}

func (p *Printer) table(t Table) error {
	if len(t.Headers) > 0 && len(t.Rows) == 0 {
		_, err := fmt.Fprintln(p.w, "No results.")
		return err
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
		rule := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			rule[i] = strings.Repeat("-", len([]rune(h)))
		}
		fmt.Fprintln(w, strings.Join(rule, "\t"))
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = oneLine(c)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

// oneLine keeps multi-line values from breaking table alignment.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}
