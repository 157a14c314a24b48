package bank

import (
	"fmt"

	"digital.vasic.correspond/pkg/assertion"
)

// ValidationError represents a validation issue found in a suite
// file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("cases[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates a suite file structure and returns all
// errors found. When engine is non-nil, assertion types and
// correspondence names are checked against it.
func ValidateFile(path string, engine *assertion.DefaultEngine) []ValidationError {
	file, err := readSuite(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}

	var errs []ValidationError
	if file.Version == "" {
		errs = append(errs, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}

	ids := make(map[string]bool)
	for i, c := range file.Cases {
		switch {
		case c.ID == "":
			errs = append(errs, ValidationError{
				Field: "id", Message: "case ID is required", Index: i,
			})
		case ids[c.ID]:
			errs = append(errs, ValidationError{
				Field: "id", Message: fmt.Sprintf("duplicate ID: %s", c.ID), Index: i,
			})
		default:
			ids[c.ID] = true
		}

		if c.Name == "" {
			errs = append(errs, ValidationError{
				Field: "name", Message: "case name is required", Index: i,
			})
		}
		if len(c.Assertions) == 0 {
			errs = append(errs, ValidationError{
				Field: "assertions", Message: "at least one assertion is required", Index: i,
			})
		}
		for j, a := range c.Assertions {
			errs = append(errs, validateAssertion(i, j, a, c.Values, engine)...)
		}
	}

	return errs
}

func validateAssertion(
	caseIndex, index int,
	a assertion.Definition,
	values map[string]any,
	engine *assertion.DefaultEngine,
) []ValidationError {
	var errs []ValidationError
	field := func(name string) string {
		return fmt.Sprintf("assertions[%d].%s", index, name)
	}

	if a.Type == "" {
		errs = append(errs, ValidationError{
			Field: field("type"), Message: "assertion type is required", Index: caseIndex,
		})
	} else if engine != nil && !engine.HasEvaluator(a.Type) {
		errs = append(errs, ValidationError{
			Field:   field("type"),
			Message: fmt.Sprintf("unknown assertion type: %s", a.Type),
			Index:   caseIndex,
		})
	}

	if _, ok := values[a.Target]; !ok {
		errs = append(errs, ValidationError{
			Field:   field("target"),
			Message: fmt.Sprintf("target not found in values: %s", a.Target),
			Index:   caseIndex,
		})
	}

	if engine != nil {
		if _, err := engine.Correspondence(a.Correspondence); err != nil {
			errs = append(errs, ValidationError{
				Field: field("correspondence"), Message: err.Error(), Index: caseIndex,
			})
		}
	}
	return errs
}
