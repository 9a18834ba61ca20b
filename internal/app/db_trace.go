package app

import (
	"regexp"
	"strings"
)

// Statements attached to spans are flattened to one line and capped so a
// bulk upsert cannot blow up the trace payload.
const tracedQueryLimit = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	flat := collapseWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > tracedQueryLimit {
		return flat[:tracedQueryLimit] + "..."
	}
	return flat
}
