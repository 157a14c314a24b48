// Package bank loads suites of assertion cases from JSON or YAML
// files and runs them through an assertion engine.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"digital.vasic.correspond/pkg/assertion"
)

// Bank manages collections of cases loaded from files.
type Bank struct {
	mu      sync.RWMutex
	cases   map[string]*Case
	order   []string
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{
		cases: make(map[string]*Case),
	}
}

// readSuite decodes a suite file by extension.
func readSuite(path string) (SuiteFile, error) {
	var file SuiteFile

	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read suite file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return file, fmt.Errorf(
			"suite file %s: unsupported extension %q", path, filepath.Ext(path),
		)
	}
	if err != nil {
		return file, fmt.Errorf("parse suite file %s: %w", path, err)
	}
	return file, nil
}

// LoadFile loads cases from a .json, .yaml or .yml file. A case
// with an ID already in the bank replaces it.
func (b *Bank) LoadFile(path string) error {
	file, err := readSuite(path)
	if err != nil {
		return err
	}

	for i := range file.Cases {
		if file.Cases[i].ID == "" {
			return fmt.Errorf("case at index %d in %s has no ID", i, path)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range file.Cases {
		c := &file.Cases[i]
		if _, exists := b.cases[c.ID]; !exists {
			b.order = append(b.order, c.ID)
		}
		b.cases[c.ID] = c
	}
	b.sources = append(b.sources, path)
	return nil
}

// LoadDir loads all suite files from a directory in name order.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := b.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a case by ID.
func (b *Bank) Get(id string) (*Case, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.cases[id]
	return c, ok
}

// All returns all loaded cases in load order.
func (b *Bank) All() []*Case {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]*Case, 0, len(b.order))
	for _, id := range b.order {
		result = append(result, b.cases[id])
	}
	return result
}

// ByCategory returns cases filtered by category.
func (b *Bank) ByCategory(category string) []*Case {
	var result []*Case
	for _, c := range b.All() {
		if c.Category == category {
			result = append(result, c)
		}
	}
	return result
}

// Count returns the number of loaded cases.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cases)
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}

// Run evaluates one case. It passes only if every assertion
// passed.
func Run(engine assertion.Engine, c *Case) *CaseResult {
	results := engine.EvaluateAll(c.Assertions, c.Values)
	passed := true
	for _, r := range results {
		passed = passed && r.Passed
	}
	return &CaseResult{
		ID:      c.ID,
		Name:    c.Name,
		Passed:  passed,
		Results: results,
	}
}

// RunAll evaluates every case in load order.
func (b *Bank) RunAll(engine assertion.Engine) []*CaseResult {
	cases := b.All()
	results := make([]*CaseResult, 0, len(cases))
	for _, c := range cases {
		results = append(results, Run(engine, c))
	}
	return results
}
