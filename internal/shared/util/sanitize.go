package util

import (
	"html"
	"strings"
)

// CleanInput trims surrounding whitespace and HTML-escapes the result.
func CleanInput(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
