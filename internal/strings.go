package internal

import (
	"regexp"
	"strings"
)

var (
	colonSpacing = regexp.MustCompile(`:\s+`)
	layout       = strings.NewReplacer("\n", "", "\r", "", "\t", "")
)

// CompactJSON strips the layout of a hand-indented JSON literal so it reads
// like a marshalled body.
func CompactJSON(s string) string {
	return strings.TrimSpace(colonSpacing.ReplaceAllString(layout.Replace(s), ":"))
}

// IsBlank reports whether s holds only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
