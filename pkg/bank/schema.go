package bank

import "digital.vasic.correspond/pkg/assertion"

// SuiteFile represents the structure of a suite file, in JSON or
// YAML.
type SuiteFile struct {
	Version  string         `json:"version" yaml:"version"`
	Name     string         `json:"name" yaml:"name"`
	Cases    []Case         `json:"cases" yaml:"cases"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Case is a named set of values and the assertions that must hold
// for them.
type Case struct {
	ID          string                 `json:"id" yaml:"id"`
	Name        string                 `json:"name" yaml:"name"`
	Category    string                 `json:"category,omitempty" yaml:"category,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Values      map[string]any         `json:"values" yaml:"values"`
	Assertions  []assertion.Definition `json:"assertions" yaml:"assertions"`
}

// CaseResult is the outcome of running one case.
type CaseResult struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Passed  bool               `json:"passed"`
	Results []assertion.Result `json:"results"`
}
