// Package style computes the visual formatting of a placed block of cells.
//
// Render is a pure function of the region and the configuration: it never
// looks at what the values mean, so the same routine styles column, index,
// view and contents blocks.
package style

import "unicode/utf8"

// Font describes a cell font
type Font struct {
	Bold      bool    `yaml:"bold"`
	Underline bool    `yaml:"underline"`
	Color     string  `yaml:"color"`
	Size      float64 `yaml:"size"`
}

// Config holds every styling constant of the workbook
type Config struct {
	HeaderFill      string  `yaml:"header_fill"`
	HeaderFont      Font    `yaml:"header_font"`
	BorderStyle     string  `yaml:"border_style"` // thin, medium, thick, dashed, dotted, double, none
	StripeFill      string  `yaml:"stripe_fill"`
	LinkFont        Font    `yaml:"link_font"`
	MaxColumnWidth  int     `yaml:"max_column_width"`
	ColumnPadding   int     `yaml:"column_padding"`
	HeaderRowHeight float64 `yaml:"header_row_height"`
	DataRowHeight   float64 `yaml:"data_row_height"`
}

// DefaultConfig returns the stock look: blue header, grey stripes, thin borders
func DefaultConfig() Config {
	return Config{
		HeaderFill:      "4472C4",
		HeaderFont:      Font{Bold: true, Color: "FFFFFF", Size: 11},
		BorderStyle:     "thin",
		StripeFill:      "F2F2F2",
		LinkFont:        Font{Underline: true, Color: "0563C1"},
		MaxColumnWidth:  50,
		ColumnPadding:   2,
		HeaderRowHeight: 25,
		DataRowHeight:   20,
	}
}

// Style is the complete formatting of one cell. It is comparable so
// writers can cache one registered style per distinct value.
type Style struct {
	Fill   string
	Font   Font
	Border string
	HAlign string
	VAlign string
}

// Region is a block of values whose first row is the header
type Region struct {
	StartRow int
	StartCol int
	Values   [][]string
}

// CellStyle assigns a style to one cell
type CellStyle struct {
	Row   int
	Col   int
	Style Style
}

// Result is everything Render decided for a region
type Result struct {
	Cells        []CellStyle
	ColumnWidths map[int]float64
	RowHeights   map[int]float64
}

// Renderer applies one Config to any number of regions
type Renderer struct {
	cfg Config
}

// NewRenderer creates a renderer for cfg
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Config returns the renderer configuration
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render styles a region. Every cell gets a border; the header row gets the
// header fill and font; data rows on even sheet rows get the stripe fill.
// Striping follows absolute row numbers, not the position inside the region.
func (r *Renderer) Render(region Region) Result {
	res := Result{
		ColumnWidths: make(map[int]float64),
		RowHeights:   make(map[int]float64),
	}
	if len(region.Values) == 0 {
		return res
	}

	widest := make(map[int]int)
	for i, values := range region.Values {
		row := region.StartRow + i
		for j, v := range values {
			col := region.StartCol + j
			res.Cells = append(res.Cells, CellStyle{Row: row, Col: col, Style: r.cellStyle(i == 0, row)})
			widest[col] = max(widest[col], utf8.RuneCountInString(v))
		}
		if i == 0 {
			res.RowHeights[row] = r.cfg.HeaderRowHeight
		} else {
			res.RowHeights[row] = r.cfg.DataRowHeight
		}
	}

	for col, n := range widest {
		res.ColumnWidths[col] = float64(min(n, r.cfg.MaxColumnWidth) + r.cfg.ColumnPadding)
	}
	return res
}

func (r *Renderer) cellStyle(header bool, row int) Style {
	if header {
		return Style{
			Fill:   r.cfg.HeaderFill,
			Font:   r.cfg.HeaderFont,
			Border: r.cfg.BorderStyle,
			HAlign: "center",
			VAlign: "center",
		}
	}

	s := Style{Border: r.cfg.BorderStyle, HAlign: "left", VAlign: "center"}
	if row%2 == 0 {
		s.Fill = r.cfg.StripeFill
	}
	return s
}

// Link returns base restyled as a hyperlink, keeping its fill and border
func (r *Renderer) Link(base Style) Style {
	base.Font = r.cfg.LinkFont
	return base
}

// BackLink is the style of the A1 "back to contents" cell
func (r *Renderer) BackLink() Style {
	return Style{Font: r.cfg.LinkFont, HAlign: "left", VAlign: "center"}
}
