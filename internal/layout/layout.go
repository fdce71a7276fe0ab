// Package layout decides where every block of the workbook goes.
//
// Plan is a pure function of the snapshot: block start rows are computed
// from the lengths of the data they hold, never from what has already been
// written, so planning the same snapshot twice yields identical coordinates.
package layout

import (
	"strings"

	"github.com/tordrt/schemasheet/internal/errs"
	"github.com/tordrt/schemasheet/internal/schema"
)

// Fixed sheet names and positions
const (
	ContentsSheet = "Contents"
	ViewsSheet    = "Views"
	// HistorySheet is reserved by Excel for change tracking
	HistorySheet = "History"

	BackLinkText = "Back to contents"
	BackLinkRow  = 1
	BackLinkCol  = 1

	// ContentsBlockStart is the header row of the contents list
	ContentsBlockStart = 1
	// ColumnBlockStart is the header row of the column block on entity sheets
	ColumnBlockStart = 3
	// IndexBlockGap is the number of blank rows between column and index blocks
	IndexBlockGap = 2

	// ContentsNameCol is the contents column that carries the links
	ContentsNameCol = 2
)

// EntryKind labels a contents row
type EntryKind string

const (
	EntryTable EntryKind = "Table"
	EntryView  EntryKind = "View"
)

// BlockKind names the logical table a block holds
type BlockKind string

const (
	BlockContents BlockKind = "contents"
	BlockColumns  BlockKind = "columns"
	BlockIndexes  BlockKind = "indexes"
	BlockViews    BlockKind = "views"
)

var (
	contentsHeader = []string{"Kind", "Name", "Description"}
	columnHeader   = []string{"Table", "Column", "Data Type", "Nullable", "PK", "FK", "FK Reference", "Description"}
	viewHeader     = []string{"View", "Description", "Definition"}
)

// Block is a rectangular region: one header row followed by data rows
type Block struct {
	Kind     BlockKind
	StartRow int
	StartCol int
	Header   []string
	Rows     [][]string
}

// Height is the number of rows the block occupies, header included
func (b Block) Height() int {
	return 1 + len(b.Rows)
}

// EndRow is the last row the block occupies
func (b Block) EndRow() int {
	return b.StartRow + b.Height() - 1
}

// Values returns header and data rows as one grid
func (b Block) Values() [][]string {
	grid := make([][]string, 0, b.Height())
	grid = append(grid, b.Header)
	return append(grid, b.Rows...)
}

// Sheet is one planned worksheet
type Sheet struct {
	Name     string
	BackLink bool
	Blocks   []Block
}

// Entry is one contents row and the place it points at
type Entry struct {
	Kind        EntryKind
	Name        string
	ContentsRow int
	TargetSheet string
	TargetRow   int
}

// Document is the complete, ordered workbook plan
type Document struct {
	Contents Sheet
	Entries  []Entry
	Tables   []Sheet
	Views    *Sheet
}

// Sheets returns every planned sheet in workbook order
func (d *Document) Sheets() []Sheet {
	sheets := make([]Sheet, 0, len(d.Tables)+2)
	sheets = append(sheets, d.Contents)
	sheets = append(sheets, d.Tables...)
	if d.Views != nil {
		sheets = append(sheets, *d.Views)
	}
	return sheets
}

// Plan lays out the whole workbook for s
func Plan(s *schema.Snapshot) (*Document, error) {
	namer := NewNamer(ContentsSheet, ViewsSheet, HistorySheet)
	doc := &Document{}

	contents := Block{
		Kind:     BlockContents,
		StartRow: ContentsBlockStart,
		StartCol: 1,
		Header:   contentsHeader,
	}

	for _, table := range s.Tables {
		name, err := namer.Assign(table.Ref.Name)
		if err != nil {
			return nil, err
		}
		sheet, err := PlanTable(name, table)
		if err != nil {
			return nil, err
		}
		doc.Tables = append(doc.Tables, sheet)

		contents.Rows = append(contents.Rows, []string{string(EntryTable), table.Ref.Name, table.Comment})
		doc.Entries = append(doc.Entries, Entry{
			Kind:        EntryTable,
			Name:        table.Ref.Name,
			ContentsRow: contents.EndRow(),
			TargetSheet: name,
			TargetRow:   BackLinkRow,
		})
	}

	if len(s.Views) > 0 {
		views := PlanViews(s.Views)
		doc.Views = &views

		block := views.Blocks[0]
		for i, view := range s.Views {
			contents.Rows = append(contents.Rows, []string{string(EntryView), view.Ref.Name, view.Comment})
			doc.Entries = append(doc.Entries, Entry{
				Kind:        EntryView,
				Name:        view.Ref.Name,
				ContentsRow: contents.EndRow(),
				TargetSheet: views.Name,
				TargetRow:   block.StartRow + 1 + i,
			})
		}
	}

	doc.Contents = Sheet{Name: ContentsSheet, Blocks: []Block{contents}}
	return doc, nil
}

// PlanTable lays out one table sheet: back link, gap row, column block and,
// when the table has indexes, an index block IndexBlockGap rows below.
func PlanTable(sheetName string, table schema.Table) (Sheet, error) {
	if len(table.Columns) == 0 {
		return Sheet{}, errs.Layout("table %s reports no columns", table.Ref)
	}

	columns := Block{
		Kind:     BlockColumns,
		StartRow: ColumnBlockStart,
		StartCol: 1,
		Header:   columnHeader,
		Rows:     make([][]string, 0, len(table.Columns)),
	}
	for _, col := range table.Columns {
		ref := ""
		if col.ForeignKey != nil {
			ref = col.ForeignKey.String()
		}
		columns.Rows = append(columns.Rows, []string{
			table.Ref.Name,
			col.Name,
			col.DisplayType,
			yn(col.Nullable),
			yn(col.IsPrimaryKey),
			yn(col.IsForeignKey()),
			ref,
			col.Comment,
		})
	}

	sheet := Sheet{Name: sheetName, BackLink: true, Blocks: []Block{columns}}
	if len(table.Indexes) > 0 {
		sheet.Blocks = append(sheet.Blocks, indexBlock(columns.StartRow+columns.Height()+IndexBlockGap, table.Indexes))
	}
	return sheet, nil
}

// indexBlock renders the PK and Type columns only when the dialect
// reported them for at least one index.
func indexBlock(startRow int, indexes []schema.Index) Block {
	var withPK, withKind bool
	for _, idx := range indexes {
		withPK = withPK || idx.IsPrimaryKey != nil
		withKind = withKind || idx.Kind != ""
	}

	header := []string{"Index", "Columns", "Unique"}
	if withPK {
		header = append(header, "PK")
	}
	if withKind {
		header = append(header, "Type")
	}

	block := Block{
		Kind:     BlockIndexes,
		StartRow: startRow,
		StartCol: 1,
		Header:   header,
		Rows:     make([][]string, 0, len(indexes)),
	}
	for _, idx := range indexes {
		row := []string{idx.Name, strings.Join(idx.Columns, ", "), yn(idx.IsUnique)}
		if withPK {
			pk := ""
			if idx.IsPrimaryKey != nil {
				pk = yn(*idx.IsPrimaryKey)
			}
			row = append(row, pk)
		}
		if withKind {
			row = append(row, idx.Kind)
		}
		block.Rows = append(block.Rows, row)
	}
	return block
}

// PlanViews lays out the shared Views sheet with the same back link and
// block offset as table sheets.
func PlanViews(views []schema.View) Sheet {
	block := Block{
		Kind:     BlockViews,
		StartRow: ColumnBlockStart,
		StartCol: 1,
		Header:   viewHeader,
		Rows:     make([][]string, 0, len(views)),
	}
	for _, v := range views {
		block.Rows = append(block.Rows, []string{v.Ref.Name, v.Comment, v.Definition})
	}
	return Sheet{Name: ViewsSheet, BackLink: true, Blocks: []Block{block}}
}

func yn(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
