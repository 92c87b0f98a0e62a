package indexsummary

import (
	"fmt"
	"io"

	"marketview-backend/lib/scrapers/marketwatch"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// RenderText writes the whole summary as a sequence of text tables.
func (s Summary) RenderText(out io.Writer) {
	fmt.Fprintf(out, "Index: %s\n\n", s.Index)

	t := newTable(out)
	t.AppendHeader(table.Row{"Sector", "Stocks"})
	for _, c := range s.SectorCounts {
		t.AppendRow(table.Row{c.Sector, c.Stocks})
	}
	t.Render()
	fmt.Fprintln(out)

	RenderBundle(out, marketwatch.Bundle{
		Performance: s.Performance,
		Gainers:     s.Gainers,
		Decliners:   s.Decliners,
	})
}

// RenderBundle writes the scraped metric tables as text tables.
func RenderBundle(out io.Writer, bundle marketwatch.Bundle) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Period", "Change"})
	for _, label := range bundle.Performance.Labels() {
		value, _ := bundle.Performance.Get(label)
		t.AppendRow(table.Row{label, value})
	}
	t.Render()
	fmt.Fprintln(out)

	renderStockTable(out, bundle.Gainers)
	fmt.Fprintln(out)
	renderStockTable(out, bundle.Decliners)
}

func renderStockTable(out io.Writer, tbl marketwatch.Table) {
	t := newTable(out)

	header := make(table.Row, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, cells := range tbl.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		t.AppendRow(row)
	}
	t.Render()
}
