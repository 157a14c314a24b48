// Package report renders case results produced by the bank
// package.
package report

import (
	"io"

	"digital.vasic.correspond/pkg/bank"
)

// Reporter defines the interface for generating case reports.
type Reporter interface {
	// GenerateReport creates a report for a single case result.
	GenerateReport(result *bank.CaseResult) ([]byte, error)

	// GenerateSummary creates a report covering all results.
	GenerateSummary(results []*bank.CaseResult) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *bank.CaseResult) error
}

func writeReport(r Reporter, w io.Writer, result *bank.CaseResult) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
