// Package format renders tabular query results as Arabic prose.
package format

import (
	"fmt"
	"strings"

	"github.com/rawihq/rawi/internal/database"
)

// Fixed Arabic phrases for the two response shapes.
const (
	// NoResults is returned for an empty (or failed) query.
	NoResults = "لم أجد أي نتائج لهذا الاستعلام."

	// resultsHeader opens a non-empty response.
	resultsHeader = "وجدت النتائج التالية:"
)

// Apology is the generic failure message used by the interactive surfaces.
const Apology = "عذراً، حدث خطأ أثناء معالجة طلبك."

// Response turns a query result into the Arabic answer text. Each row becomes
// one line of "column: value" pairs joined with ", ", columns in result order.
func Response(result database.Result) string {
	if result.Empty() {
		return NoResults
	}

	var sb strings.Builder
	sb.WriteString(resultsHeader + "\n")
	for _, row := range result.Rows {
		pairs := make([]string, len(row))
		for i, value := range row {
			pairs[i] = fmt.Sprintf("%v: %v", result.Columns[i], value)
		}
		sb.WriteString(strings.Join(pairs, ", ") + "\n")
	}
	return sb.String()
}
