package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.correspond/pkg/bank"
)

// JSONReporter generates JSON reports from case results.
type JSONReporter struct {
	pretty bool
	now    func() time.Time
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty, now: time.Now}
}

// GenerateReport creates a JSON report for a single case result.
func (r *JSONReporter) GenerateReport(
	result *bank.CaseResult,
) ([]byte, error) {
	return r.marshal(result)
}

type jsonSummary struct {
	*Summary
	Results []*bank.CaseResult `json:"results"`
}

// GenerateSummary creates a JSON summary of all case results,
// including the full results.
func (r *JSONReporter) GenerateSummary(
	results []*bank.CaseResult,
) ([]byte, error) {
	return r.marshal(jsonSummary{
		Summary: BuildSummary(results, r.now()),
		Results: results,
	})
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	result *bank.CaseResult,
) error {
	return writeReport(r, w, result)
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
