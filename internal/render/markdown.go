// Package render converts EIA tabular payloads into Markdown tables.
package render

import (
	"fmt"
	"strings"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
)

// NoResults is the fixed message returned for an empty record list.
const NoResults = "No data found for this query. The API returned an empty result set."

// Table renders records as a Markdown table. The header takes field
// names in the order first encountered; missing fields render as empty
// cells. An empty record list yields NoResults, never an empty table.
func Table(records []model.Record) string {
	return TableWithTotal(records, -1)
}

// TableWithTotal prefixes the table with the API-reported total when it
// exceeds the rendered row count, signalling that the result is paginated.
func TableWithTotal(records []model.Record, total int64) string {
	if len(records) == 0 {
		return NoResults
	}

	columns := columnOrder(records)

	var b strings.Builder
	if total > int64(len(records)) {
		fmt.Fprintf(&b, "Total matching records: %d (showing %d)\n\n", total, len(records))
	}

	b.WriteString("| ")
	b.WriteString(strings.Join(columns, " | "))
	b.WriteString(" |\n|")
	for range columns {
		b.WriteString("---|")
	}
	b.WriteByte('\n')

	for _, rec := range records {
		b.WriteString("| ")
		for i, col := range columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(cell(rec.Value(col)))
		}
		b.WriteString(" |\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// field names in order of first appearance across all records
func columnOrder(records []model.Record) []string {
	seen := map[string]struct{}{}
	var columns []string
	for _, rec := range records {
		for _, col := range rec.Keys() {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			columns = append(columns, col)
		}
	}
	return columns
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	// pipes and newlines would break the table
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
