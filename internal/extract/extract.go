// Package extract pulls a single SQL statement out of raw model output.
//
// Models are prompted to answer with a fenced ```sql block, but they do not
// always comply. The extraction chain degrades gracefully: fenced block
// first, then a bare SELECT statement, then the whole response as-is so that
// execution (not extraction) reports the failure.
package extract

import (
	"regexp"
	"strings"
)

var (
	fencedSQL  = regexp.MustCompile("(?is)```sql\\s*(.*?)\\s*```")
	selectSpan = regexp.MustCompile(`(?is)SELECT.*?;`)
)

// SQL extracts one SQL statement from raw model output. The result is always
// non-empty for non-empty input; it may still be invalid SQL.
func SQL(response string) string {
	if m := fencedSQL.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := selectSpan.FindString(response); m != "" {
		return strings.TrimSpace(m)
	}
	return strings.TrimSpace(response)
}
