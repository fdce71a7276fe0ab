// Package document turns a layout plan into an xlsx workbook.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/tordrt/schemasheet/internal/errs"
	"github.com/tordrt/schemasheet/internal/navigation"
	"github.com/tordrt/schemasheet/internal/style"
)

// Writer is the write-only workbook port. Rows and columns are 1-based.
// Nothing is ever read back: every decision is made from the plan.
type Writer interface {
	AddSheet(name string) error
	SetValue(sheet string, row, col int, value string) error
	SetStyle(sheet string, row, col int, s style.Style) error
	SetLink(sheet string, row, col int, to navigation.Target) error
	SetColumnWidth(sheet string, col int, width float64) error
	SetRowHeight(sheet string, row int, height float64) error
	Save(path string) error
	Close() error
}

// ExcelWriter writes workbooks with excelize
type ExcelWriter struct {
	file   *excelize.File
	sheets int
	styles map[style.Style]int
}

// NewExcelWriter creates an empty workbook
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{
		file:   excelize.NewFile(),
		styles: make(map[style.Style]int),
	}
}

// AddSheet appends a worksheet. The first call renames the default sheet
// excelize creates.
func (w *ExcelWriter) AddSheet(name string) error {
	if w.sheets == 0 {
		first := w.file.GetSheetName(0)
		if err := w.file.SetSheetName(first, name); err != nil {
			return fmt.Errorf("failed to name sheet %s: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", name, err)
	}
	w.sheets++
	return nil
}

// SetValue writes a string cell, cutting it to the xlsx cell limit
func (w *ExcelWriter) SetValue(sheet string, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellStr(sheet, cell, truncateCell(value))
}

// SetStyle applies s to one cell, registering each distinct style once
func (w *ExcelWriter) SetStyle(sheet string, row, col int, s style.Style) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	id, ok := w.styles[s]
	if !ok {
		id, err = w.file.NewStyle(toExcelStyle(s))
		if err != nil {
			return fmt.Errorf("failed to register style: %w", err)
		}
		w.styles[s] = id
	}
	return w.file.SetCellStyle(sheet, cell, cell, id)
}

// SetLink makes a cell jump to another cell of the same workbook
func (w *ExcelWriter) SetLink(sheet string, row, col int, to navigation.Target) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	location, err := Location(to)
	if err != nil {
		return err
	}
	return w.file.SetCellHyperLink(sheet, cell, location, "Location")
}

// SetColumnWidth sets the width of one column
func (w *ExcelWriter) SetColumnWidth(sheet string, col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, name, name, width)
}

// SetRowHeight sets the height of one row
func (w *ExcelWriter) SetRowHeight(sheet string, row int, height float64) error {
	return w.file.SetRowHeight(sheet, row, height)
}

// Save writes the workbook next to path and renames it into place, so a
// failed run never leaves a partial file behind. A permission failure
// means the target is held open by another program.
func (w *ExcelWriter) Save(path string) error {
	w.file.SetActiveSheet(0)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".schemasheet-*.tmp")
	if err != nil {
		return writeError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := w.file.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return writeError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return writeError(path, err)
	}
	return nil
}

// Close releases the workbook; it does not save it
func (w *ExcelWriter) Close() error {
	return w.file.Close()
}

// Location renders a target as an xlsx internal reference such as 'Orders'!A1
func Location(to navigation.Target) (string, error) {
	cell, err := excelize.CoordinatesToCellName(to.Col, to.Row)
	if err != nil {
		return "", err
	}
	return "'" + strings.ReplaceAll(to.Sheet, "'", "''") + "'!" + cell, nil
}

func writeError(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return errs.OutputLocked(path, err)
	}
	return fmt.Errorf("failed to write %s: %w", path, err)
}

func truncateCell(v string) string {
	if utf8.RuneCountInString(v) <= excelize.TotalCellChars {
		return v
	}
	return string([]rune(v)[:excelize.TotalCellChars])
}

var borderStyles = map[string]int{
	"thin":   1,
	"medium": 2,
	"dashed": 3,
	"dotted": 4,
	"thick":  5,
	"double": 6,
}

func toExcelStyle(s style.Style) *excelize.Style {
	es := &excelize.Style{
		Font: &excelize.Font{
			Bold:  s.Font.Bold,
			Color: s.Font.Color,
			Size:  s.Font.Size,
		},
		Alignment: &excelize.Alignment{
			Horizontal: s.HAlign,
			Vertical:   s.VAlign,
		},
	}
	if s.Font.Underline {
		es.Font.Underline = "single"
	}
	if s.Fill != "" {
		es.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Fill}}
	}
	if b, ok := borderStyles[s.Border]; ok {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			es.Border = append(es.Border, excelize.Border{Type: side, Color: "000000", Style: b})
		}
	}
	return es
}
