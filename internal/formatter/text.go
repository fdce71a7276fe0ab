package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemasheet/internal/schema"
)

// Formatter writes a schema snapshot as an outline
type Formatter interface {
	Format(s *schema.Snapshot) error
}

// New returns the formatter for format, "text" or "markdown"
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(w), nil
	case "markdown", "md":
		return NewMarkdownFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported print format: %s", format)
	}
}

// TextFormatter formats a snapshot as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes every table, then every view
func (f *TextFormatter) Format(s *schema.Snapshot) error {
	for i, table := range s.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		f.formatTable(table)
	}

	if len(s.Views) > 0 {
		if len(s.Tables) > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		for _, view := range s.Views {
			_, _ = fmt.Fprintf(f.writer, "VIEW %s%s\n", view.Ref.Name, comment(view.Comment))
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(table schema.Table) {
	// Table header with primary key
	pkStr := ""
	if pk := primaryKey(table); len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s%s\n", table.Ref.Name, pkStr, comment(table.Comment))

	for _, col := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", f.formatColumn(col))
	}

	// Indexes
	if len(table.Indexes) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  INDEXES:")
		for _, idx := range table.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = " UNIQUE"
			}
			_, _ = fmt.Fprintf(f.writer, "    %s (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
	}
}

func (f *TextFormatter) formatColumn(col schema.Column) string {
	parts := []string{col.Name + ":", col.DisplayType}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.ForeignKey != nil {
		parts = append(parts, "→ "+col.ForeignKey.String())
	}
	if col.Comment != "" {
		parts = append(parts, "-- "+col.Comment)
	}

	return strings.Join(parts, " ")
}

func primaryKey(table schema.Table) []string {
	var pk []string
	for _, col := range table.Columns {
		if col.IsPrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	return pk
}

func comment(c string) string {
	if c == "" {
		return ""
	}
	return " -- " + c
}
