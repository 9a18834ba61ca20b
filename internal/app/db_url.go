package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes unless the URL
// already pins a value. Sonic-decoded []byte columns misbehave with binary
// results over lib/pq prepared statements.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	params := parsed.Query()
	if params.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	params.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = params.Encode()

	return parsed.String()
}

// dbNameFromURL extracts the database name from either a postgres:// URL or
// a key=value DSN, for span attribution only.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if value, ok := strings.CutPrefix(token, "dbname="); ok {
			if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
				return name
			}
		}
	}

	return ""
}
