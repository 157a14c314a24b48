package report

import (
	"time"

	"digital.vasic.correspond/pkg/bank"
)

// Summary aggregates a run of cases.
type Summary struct {
	GeneratedAt      time.Time     `json:"generated_at"`
	Cases            []CaseSummary `json:"cases"`
	TotalCases       int           `json:"total_cases"`
	PassedCases      int           `json:"passed_cases"`
	FailedCases      int           `json:"failed_cases"`
	AssertionsPassed int           `json:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total"`
	PassRate         float64       `json:"pass_rate"`
}

// CaseSummary represents a summary of a single case.
type CaseSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Passed           bool   `json:"passed"`
	AssertionsPassed int    `json:"assertions_passed"`
	AssertionsTotal  int    `json:"assertions_total"`
}

// BuildSummary creates a summary from case results.
func BuildSummary(results []*bank.CaseResult, now time.Time) *Summary {
	summary := &Summary{
		GeneratedAt: now,
		Cases:       make([]CaseSummary, 0, len(results)),
	}

	for _, r := range results {
		cs := CaseSummary{
			ID:              r.ID,
			Name:            r.Name,
			Passed:          r.Passed,
			AssertionsTotal: len(r.Results),
		}
		for _, a := range r.Results {
			if a.Passed {
				cs.AssertionsPassed++
			}
		}

		summary.Cases = append(summary.Cases, cs)
		summary.TotalCases++
		summary.AssertionsPassed += cs.AssertionsPassed
		summary.AssertionsTotal += cs.AssertionsTotal
		if r.Passed {
			summary.PassedCases++
		} else {
			summary.FailedCases++
		}
	}

	if summary.TotalCases > 0 {
		summary.PassRate =
			float64(summary.PassedCases) /
				float64(summary.TotalCases)
	}

	return summary
}
