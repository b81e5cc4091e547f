package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RowKind distinguishes body rows from footer aggregate rows.
type RowKind int

const (
	BodyRow RowKind = iota
	FooterRow
)

// CapturedCell is one table cell with its semantic stat tag. The tag comes
// from the cell's data-stat attribute and survives header renames, so mapping
// keys off it rather than column position.
type CapturedCell struct {
	Stat string
	Text string
}

// CapturedRow is one table row. Footer rows carry pre-computed totals and
// take precedence over body rows when a team aggregate is wanted.
type CapturedRow struct {
	Kind  RowKind
	Cells []CapturedCell
}

// RawTableCapture is the faithful, unmapped snapshot of one stats table.
type RawTableCapture struct {
	ID   string
	Rows []CapturedRow
}

// Cell returns the cell with the given stat tag, or false if the row has none
func (r CapturedRow) Cell(stat string) (CapturedCell, bool) {
	for _, c := range r.Cells {
		if c.Stat == stat {
			return c, true
		}
	}
	return CapturedCell{}, false
}

// CaptureTables snapshots every <table> in the document that carries an id,
// preserving document order. Each cell keeps its data-stat attribute and
// trimmed text; header-only rows are skipped.
func CaptureTables(doc *goquery.Document) []RawTableCapture {
	var captures []RawTableCapture

	doc.Find("table[id]").Each(func(_ int, table *goquery.Selection) {
		id, _ := table.Attr("id")
		capture := RawTableCapture{ID: id}

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			if row, ok := captureRow(tr, BodyRow); ok {
				capture.Rows = append(capture.Rows, row)
			}
		})
		table.Find("tfoot tr").Each(func(_ int, tr *goquery.Selection) {
			if row, ok := captureRow(tr, FooterRow); ok {
				capture.Rows = append(capture.Rows, row)
			}
		})

		captures = append(captures, capture)
	})

	return captures
}

func captureRow(tr *goquery.Selection, kind RowKind) (CapturedRow, bool) {
	row := CapturedRow{Kind: kind}

	tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		stat, _ := cell.Attr("data-stat")
		row.Cells = append(row.Cells, CapturedCell{
			Stat: stat,
			Text: strings.TrimSpace(cell.Text()),
		})
	})

	if len(row.Cells) == 0 {
		return CapturedRow{}, false
	}
	return row, true
}
