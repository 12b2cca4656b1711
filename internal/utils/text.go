package utils

import (
	"regexp"
	"strings"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

var (
	headingMarker = regexp.MustCompile(`(?m)^#+\s`)
	lineBreak     = regexp.MustCompile(`<br\s*/?>`)
)

// PlainText turns generated markdown into text fit for the clipboard.
func PlainText(markdown string) string {
	text := headingMarker.ReplaceAllString(markdown, "")
	text = lineBreak.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
