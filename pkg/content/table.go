package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is an HTML table flattened into a header and data rows.
// Every row, header included, has exactly NumColumns cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// NumColumns returns the table width
func (t *Table) NumColumns() int {
	if len(t.Header) > 0 {
		return len(t.Header)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Column returns the values of column i, top to bottom, excluding the header
func (t *Table) Column(i int) []string {
	if i < 0 || i >= t.NumColumns() {
		return nil
	}
	col := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		col[r] = row[i]
	}
	return col
}

// Empty reports whether the table has no data rows
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ExtractTables parses every <table> in the page, in document order
func ExtractTables(htmlContent string) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables []*Table
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		tables = append(tables, parseTable(s))
	})
	return tables, nil
}

// ExtractFirstTable returns the first table of the page, or nil when there is none
func ExtractFirstTable(htmlContent string) (*Table, error) {
	tables, err := ExtractTables(htmlContent)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}
	return tables[0], nil
}

type cell struct {
	text    string
	header  bool
	colspan int
	rowspan int
}

// parseTable reads thead, tbody and tfoot rows (in that order), expands
// colspan/rowspan, and takes the header from thead or, when the table has
// none, from the leading rows made only of <th> cells.
func parseTable(table *goquery.Selection) *Table {
	headRows := readRows(table.ChildrenFiltered("thead").ChildrenFiltered("tr"))
	bodyRows := readRows(table.ChildrenFiltered("tbody").ChildrenFiltered("tr"))
	bodyRows = append(bodyRows, readRows(table.ChildrenFiltered("tr"))...)
	footRows := readRows(table.ChildrenFiltered("tfoot").ChildrenFiltered("tr"))

	if len(headRows) == 0 {
		for len(bodyRows) > 0 && allHeaderCells(bodyRows[0]) {
			headRows = append(headRows, bodyRows[0])
			bodyRows = bodyRows[1:]
		}
	}

	all := make([][]cell, 0, len(headRows)+len(bodyRows)+len(footRows))
	all = append(all, headRows...)
	all = append(all, bodyRows...)
	all = append(all, footRows...)

	grid := expandSpans(all)

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	for i := range grid {
		grid[i] = pad(grid[i], width)
	}

	t := &Table{Rows: grid[len(headRows):]}
	if len(headRows) > 0 {
		t.Header = mergeHeader(grid[:len(headRows)], width)
	}
	return t
}

func readRows(rows *goquery.Selection) [][]cell {
	var out [][]cell
	rows.Each(func(_ int, tr *goquery.Selection) {
		var cells []cell
		tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cell{
				text:    strings.Join(strings.Fields(td.Text()), " "),
				header:  goquery.NodeName(td) == "th",
				colspan: spanAttr(td, "colspan"),
				rowspan: spanAttr(td, "rowspan"),
			})
		})
		if len(cells) > 0 {
			out = append(out, cells)
		}
	})
	return out
}

func spanAttr(s *goquery.Selection, name string) int {
	v, ok := s.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	// HTML caps spans at 1000 columns.
	if n > 1000 {
		return 1000
	}
	return n
}

func allHeaderCells(row []cell) bool {
	for _, c := range row {
		if !c.header {
			return false
		}
	}
	return len(row) > 0
}

// expandSpans lays cells out on a grid, copying spanned values into every
// slot they cover. Rowspans never extend past the last row.
func expandSpans(rows [][]cell) [][]string {
	grid := make([][]string, len(rows))
	filled := make([][]bool, len(rows))

	set := func(r, c int, v string) {
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], "")
			filled[r] = append(filled[r], false)
		}
		grid[r][c] = v
		filled[r][c] = true
	}
	taken := func(r, c int) bool {
		return c < len(filled[r]) && filled[r][c]
	}

	for r, row := range rows {
		col := 0
		for _, cl := range row {
			for taken(r, col) {
				col++
			}
			for dr := 0; dr < cl.rowspan && r+dr < len(rows); dr++ {
				for dc := 0; dc < cl.colspan; dc++ {
					set(r+dr, col+dc, cl.text)
				}
			}
			col += cl.colspan
		}
	}

	return grid
}

func pad(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

// mergeHeader collapses stacked header rows into one label per column.
func mergeHeader(rows [][]string, width int) []string {
	if len(rows) == 1 {
		return rows[0]
	}
	header := make([]string, width)
	for c := 0; c < width; c++ {
		var parts []string
		for _, row := range rows {
			v := row[c]
			if v == "" || (len(parts) > 0 && parts[len(parts)-1] == v) {
				continue
			}
			parts = append(parts, v)
		}
		header[c] = strings.Join(parts, " ")
	}
	return header
}
