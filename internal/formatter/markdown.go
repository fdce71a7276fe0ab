package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemasheet/internal/schema"
)

// MarkdownFormatter formats a snapshot as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the snapshot in markdown format
func (f *MarkdownFormatter) Format(s *schema.Snapshot) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Schema")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range s.Tables {
		f.formatTable(table)
	}

	if len(s.Views) > 0 {
		_, _ = fmt.Fprintln(f.writer, "## Views")
		_, _ = fmt.Fprintln(f.writer)
		for _, view := range s.Views {
			if view.Comment != "" {
				_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", view.Ref.Name, view.Comment)
			} else {
				_, _ = fmt.Fprintf(f.writer, "- **%s**\n", view.Ref.Name)
			}
		}
		_, _ = fmt.Fprintln(f.writer)
	}
	return nil
}

func (f *MarkdownFormatter) formatTable(table schema.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Ref.Name)
	if table.Comment != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", table.Comment)
	}

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)

	for _, col := range table.Columns {
		constraintStr := f.formatConstraints(col)
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name, col.DisplayType, constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, col.DisplayType)
		}
	}
	_, _ = fmt.Fprintln(f.writer)

	if len(table.Indexes) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### Indexes")
		_, _ = fmt.Fprintln(f.writer)
		for _, idx := range table.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = " (unique)"
			}
			_, _ = fmt.Fprintf(f.writer, "- %s: %s%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
		_, _ = fmt.Fprintln(f.writer)
	}
}

func (f *MarkdownFormatter) formatConstraints(col schema.Column) string {
	var constraints []string

	if col.IsPrimaryKey {
		constraints = append(constraints, "PK")
	}
	if !col.Nullable {
		constraints = append(constraints, "not null")
	}
	if col.ForeignKey != nil {
		constraints = append(constraints, "FK → "+col.ForeignKey.String())
	}
	if col.Comment != "" {
		constraints = append(constraints, col.Comment)
	}

	return strings.Join(constraints, ", ")
}
