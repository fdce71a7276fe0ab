package document

import (
	"fmt"

	"github.com/tordrt/schemasheet/internal/layout"
	"github.com/tordrt/schemasheet/internal/navigation"
	"github.com/tordrt/schemasheet/internal/style"
)

type cellKey struct {
	row, col int
}

// Render writes every sheet of doc in workbook order: values, styles,
// row heights, links and finally the column widths, which are the widest
// any block asked for in that column.
func Render(w Writer, doc *layout.Document, r *style.Renderer) error {
	linksBySheet := make(map[string][]navigation.Link)
	for _, l := range navigation.Links(doc) {
		linksBySheet[l.From.Sheet] = append(linksBySheet[l.From.Sheet], l)
	}

	for _, sheet := range doc.Sheets() {
		if err := renderSheet(w, sheet, linksBySheet[sheet.Name], r); err != nil {
			return fmt.Errorf("failed to render sheet %s: %w", sheet.Name, err)
		}
	}
	return nil
}

func renderSheet(w Writer, sheet layout.Sheet, links []navigation.Link, r *style.Renderer) error {
	if err := w.AddSheet(sheet.Name); err != nil {
		return err
	}

	styles := make(map[cellKey]style.Style)
	widths := make(map[int]float64)

	for _, block := range sheet.Blocks {
		grid := block.Values()
		for i, values := range grid {
			for j, v := range values {
				if err := w.SetValue(sheet.Name, block.StartRow+i, block.StartCol+j, v); err != nil {
					return err
				}
			}
		}

		res := r.Render(style.Region{StartRow: block.StartRow, StartCol: block.StartCol, Values: grid})
		for _, c := range res.Cells {
			styles[cellKey{c.Row, c.Col}] = c.Style
			if err := w.SetStyle(sheet.Name, c.Row, c.Col, c.Style); err != nil {
				return err
			}
		}
		for row, h := range res.RowHeights {
			if err := w.SetRowHeight(sheet.Name, row, h); err != nil {
				return err
			}
		}
		for col, width := range res.ColumnWidths {
			widths[col] = max(widths[col], width)
		}
	}

	for _, l := range links {
		key := cellKey{l.From.Row, l.From.Col}
		linkStyle := r.BackLink()
		if base, ok := styles[key]; ok {
			linkStyle = r.Link(base)
		} else if err := w.SetValue(sheet.Name, l.From.Row, l.From.Col, l.Display); err != nil {
			return err
		}
		if err := w.SetLink(sheet.Name, l.From.Row, l.From.Col, l.To); err != nil {
			return err
		}
		if err := w.SetStyle(sheet.Name, l.From.Row, l.From.Col, linkStyle); err != nil {
			return err
		}
	}

	for col, width := range widths {
		if err := w.SetColumnWidth(sheet.Name, col, width); err != nil {
			return err
		}
	}
	return nil
}
