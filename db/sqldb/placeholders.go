package sqldb

import (
	"strconv"
	"strings"
)

// RebindPositional converts `?` placeholders to numbered `$N` form for
// dialects that require it. Quoted literals are not handled; keep string
// literals out of raw statements and pass them as parameters.
func RebindPositional(query string) string {
	if !strings.ContainsRune(query, '?') {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
