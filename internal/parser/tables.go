package parser

import (
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/pdfqa/internal/document"
)

// columnTolerance is how far apart, in PDF points, two run start positions
// may be and still count as the same column.
const columnTolerance = 3.0

// rowTolerance is the largest baseline difference, in points, between
// glyphs on the same row.
const rowTolerance = 2.0

// glyph is one positioned piece of text from a page content stream.
type glyph struct {
	X, Y, W  float64
	FontSize float64
	S        string
}

// textRun is a piece of text shown at a position on a row.
type textRun struct {
	X float64
	S string
}

// textRow is one line of a page, top to bottom order.
type textRow struct {
	Y    float64
	Runs []textRun
}

// detectTables finds runs of consecutive rows whose text runs line up in at
// least two columns. Each such run of two or more rows becomes a table.
func detectTables(page int, rows []textRow) []document.Table {
	var tables []document.Table
	var current [][]string
	var prev []textRun

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, document.Table{Page: page, Rows: current})
		}
		current = nil
		prev = nil
	}

	for _, row := range rows {
		runs := nonEmptyRuns(row.Runs)
		if len(runs) < 2 {
			flush()
			continue
		}
		if prev != nil && alignedColumns(prev, runs) < 2 {
			flush()
		}
		current = append(current, cells(runs))
		prev = runs
	}
	flush()

	return tables
}

func nonEmptyRuns(runs []textRun) []textRun {
	out := make([]textRun, 0, len(runs))
	for _, r := range runs {
		if strings.TrimSpace(r.S) != "" {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// alignedColumns counts runs in b that start at the same X as some run in a.
func alignedColumns(a, b []textRun) int {
	n := 0
	for _, rb := range b {
		for _, ra := range a {
			if math.Abs(ra.X-rb.X) <= columnTolerance {
				n++
				break
			}
		}
	}
	return n
}

func cells(runs []textRun) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = strings.TrimSpace(r.S)
	}
	return out
}

// rowsFromGlyphs groups glyphs into rows by baseline, top of page first,
// and merges horizontally adjacent glyphs into runs. A gap wider than half
// the font size starts a new run.
func rowsFromGlyphs(glyphs []glyph) []textRow {
	type line struct {
		y      float64
		glyphs []glyph
	}
	var lines []*line

	for _, g := range glyphs {
		var target *line
		for _, l := range lines {
			if math.Abs(l.y-g.Y) <= rowTolerance {
				target = l
				break
			}
		}
		if target == nil {
			target = &line{y: g.Y}
			lines = append(lines, target)
		}
		target.glyphs = append(target.glyphs, g)
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	rows := make([]textRow, 0, len(lines))
	for _, l := range lines {
		sort.SliceStable(l.glyphs, func(i, j int) bool { return l.glyphs[i].X < l.glyphs[j].X })

		row := textRow{Y: l.y}
		var sb strings.Builder
		var start, end float64
		for i, g := range l.glyphs {
			if i > 0 && g.X-end > gapLimit(g) {
				row.Runs = append(row.Runs, textRun{X: start, S: sb.String()})
				sb.Reset()
			}
			if sb.Len() == 0 {
				start = g.X
			}
			sb.WriteString(g.S)
			end = math.Max(end, g.X+math.Max(g.W, 0))
		}
		if sb.Len() > 0 {
			row.Runs = append(row.Runs, textRun{X: start, S: sb.String()})
		}
		rows = append(rows, row)
	}
	return rows
}

func gapLimit(g glyph) float64 {
	if g.FontSize > 0 {
		return g.FontSize / 2
	}
	return 3
}
