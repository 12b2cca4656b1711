package guide

import (
	"strings"
	"testing"
)

func TestWorkflows(t *testing.T) {
	doc := Workflows()

	if !strings.HasPrefix(doc, "# SkillScribe Workflow Guide") {
		t.Fatalf("unexpected heading: %q", doc[:40])
	}

	if got := strings.Count(doc, "### Workflow "); got != 7 {
		t.Fatalf("expected 7 workflows, got %d", got)
	}

	for _, part := range []string{"Defer to Victor", "import-cvs", "export --output"} {
		if !strings.Contains(doc, part) {
			t.Fatalf("expected guide to mention %q", part)
		}
	}
}
