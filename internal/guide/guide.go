package guide

import (
	_ "embed"
	"strings"
)

//go:embed workflows.md
var workflows string

// Workflows returns the workflow guide as markdown.
func Workflows() string {
	return strings.TrimSpace(workflows)
}
