package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.correspond/pkg/bank"
	"digital.vasic.correspond/pkg/fact"
)

// MarkdownReporter renders case results as Markdown, with the
// failure facts of each failed assertion in a code block.
type MarkdownReporter struct {
	now func() time.Time
}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{now: time.Now}
}

// GenerateReport renders one case.
func (r *MarkdownReporter) GenerateReport(
	result *bank.CaseResult,
) ([]byte, error) {
	var b bytes.Buffer
	writeCase(&b, result)
	return b.Bytes(), nil
}

// GenerateSummary renders a table of all cases followed by the
// details of failed ones.
func (r *MarkdownReporter) GenerateSummary(
	results []*bank.CaseResult,
) ([]byte, error) {
	s := BuildSummary(results, r.now())

	var b bytes.Buffer
	b.WriteString("# Assertion Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Cases:** %d passed, %d failed (%.1f%%)\n\n",
		s.PassedCases, s.FailedCases, s.PassRate*100)

	b.WriteString("| Case | Status | Assertions |\n")
	b.WriteString("|------|--------|------------|\n")
	for _, c := range s.Cases {
		fmt.Fprintf(&b, "| %s | %s | %d/%d |\n",
			escapeCell(c.ID), status(c.Passed),
			c.AssertionsPassed, c.AssertionsTotal)
	}

	for _, res := range results {
		if !res.Passed {
			b.WriteString("\n")
			writeCase(&b, res)
		}
	}
	return b.Bytes(), nil
}

// WriteReport writes a Markdown report to the specified writer.
func (r *MarkdownReporter) WriteReport(
	w io.Writer,
	result *bank.CaseResult,
) error {
	return writeReport(r, w, result)
}

func writeCase(b *bytes.Buffer, res *bank.CaseResult) {
	title := res.ID
	if res.Name != "" {
		title = res.Name + " (" + res.ID + ")"
	}
	fmt.Fprintf(b, "## %s: %s\n\n", title, status(res.Passed))

	for _, a := range res.Results {
		fmt.Fprintf(b, "- `%s` on `%s`: %s", a.Type, a.Target, status(a.Passed))
		if a.Cause != "" {
			fmt.Fprintf(b, " (%s)", a.Cause)
		}
		b.WriteString("\n")
		if a.Passed {
			continue
		}
		text := a.Message
		if len(a.Facts) > 0 {
			text = fact.Render(a.Facts)
		}
		b.WriteString("\n```\n" + text + "\n```\n\n")
	}
}

func status(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
