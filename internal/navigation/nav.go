// Package navigation derives the in-workbook hyperlinks from a layout plan.
package navigation

import (
	"github.com/tordrt/schemasheet/internal/layout"
)

// Target is a cell inside the workbook
type Target struct {
	Sheet string
	Row   int
	Col   int
}

// Link is a cell that jumps to Target when clicked
type Link struct {
	From    Target
	Display string
	To      Target
}

// Contents is where every back link points
var Contents = Target{Sheet: layout.ContentsSheet, Row: 1, Col: 1}

// Links returns every link of doc: one per contents entry, then one back
// link per entity sheet, in sheet order.
func Links(doc *layout.Document) []Link {
	links := make([]Link, 0, len(doc.Entries)+len(doc.Tables)+1)
	links = append(links, EntryLinks(doc)...)
	links = append(links, BackLinks(doc)...)
	return links
}

// EntryLinks maps each contents name cell to the entity it lists. A table
// entry lands on A1 of its own sheet; a view entry lands on its row of the
// Views sheet.
func EntryLinks(doc *layout.Document) []Link {
	links := make([]Link, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		links = append(links, Link{
			From:    Target{Sheet: doc.Contents.Name, Row: e.ContentsRow, Col: layout.ContentsNameCol},
			Display: e.Name,
			To:      Target{Sheet: e.TargetSheet, Row: e.TargetRow, Col: 1},
		})
	}
	return links
}

// BackLinks places the A1 return link on every sheet that asks for one
func BackLinks(doc *layout.Document) []Link {
	var links []Link
	for _, sheet := range doc.Sheets() {
		if !sheet.BackLink {
			continue
		}
		links = append(links, Link{
			From:    Target{Sheet: sheet.Name, Row: layout.BackLinkRow, Col: layout.BackLinkCol},
			Display: layout.BackLinkText,
			To:      Contents,
		})
	}
	return links
}
