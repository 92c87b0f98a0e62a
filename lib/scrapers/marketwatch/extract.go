package marketwatch

import (
	"marketview-backend/lib/htmlutil"
	"marketview-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Table is a strict rectangular table of strings, every row has exactly
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// PeriodMap maps a period label (e.g. "5 Day") to its value (e.g. "+1.2%").
// Labels keep document order; a duplicate label keeps its original position
// but takes the later value.
type PeriodMap struct {
	labels []string
	values map[string]string
}

func (m PeriodMap) Len() int {
	return len(m.labels)
}

func (m PeriodMap) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

func (m PeriodMap) Get(label string) (string, bool) {
	value, ok := m.values[label]
	return value, ok
}

func (m *PeriodMap) set(label, value string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	if _, seen := m.values[label]; !seen {
		m.labels = append(m.labels, label)
	}
	m.values[label] = value
}

// extractTable converts a located container into a Table. Row 0 is the
// header; every row's rendered text is split on line breaks with blank
// fragments dropped. A data row whose fragment count disagrees with the
// header fails instead of being padded or truncated.
func extractTable(metric Metric, container *goquery.Selection) (Table, error) {
	rows := container.Find("tr")
	if rows.Length() == 0 {
		return Table{}, &StructureMismatchError{
			Metric: metric,
			Reason: "no table rows",
		}
	}

	var table Table
	var rowErr error
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		fields := textutil.SplitFields(htmlutil.GetText(row.Nodes[0]))

		if i == 0 {
			if len(fields) == 0 {
				rowErr = &StructureMismatchError{
					Metric: metric,
					Reason: "header row has no fields",
				}
				return false
			}
			table.Columns = fields
			return true
		}

		if len(fields) != len(table.Columns) {
			rowErr = &MalformedRowError{
				Metric: metric,
				Row:    i,
				Want:   len(table.Columns),
				Got:    len(fields),
			}
			return false
		}
		table.Rows = append(table.Rows, fields)
		return true
	})
	if rowErr != nil {
		return Table{}, rowErr
	}

	return table, nil
}

// extractPeriods reads the container's cells in document order as
// alternating label/value pairs.
func extractPeriods(metric Metric, container *goquery.Selection) (PeriodMap, error) {
	cells := container.Find("td")
	if cells.Length() == 0 {
		return PeriodMap{}, &StructureMismatchError{
			Metric: metric,
			Reason: "no table cells",
		}
	}
	if cells.Length()%2 != 0 {
		return PeriodMap{}, &StructureMismatchError{
			Metric: metric,
			Reason: "odd cell count, a label has no value",
		}
	}

	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, textutil.StripLineBreaks(htmlutil.GetText(cell.Nodes[0])))
	})

	var periods PeriodMap
	for i := 0; i < len(texts); i += 2 {
		periods.set(texts[i], texts[i+1])
	}
	return periods, nil
}
