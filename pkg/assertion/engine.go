package assertion

import (
	"errors"
	"fmt"
	"sync"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/fact"
	"digital.vasic.correspond/pkg/logging"
	"digital.vasic.correspond/pkg/matching"
	"digital.vasic.correspond/pkg/metrics"
)

// Sentinel errors returned by this package.
var (
	// ErrUnknownCorrespondence is returned when a definition names
	// a correspondence that is not registered.
	ErrUnknownCorrespondence = errors.New("assertion: unknown correspondence")

	// ErrShape is returned when a value does not have the shape
	// an assertion type requires.
	ErrShape = errors.New("assertion: value has the wrong shape")
)

// Engine defines the interface for assertion evaluation engines.
type Engine interface {
	// Evaluate checks a single assertion against the given
	// value.
	Evaluate(assertion Definition, value any) Result

	// EvaluateAll checks multiple assertions against a map of
	// named values. Each assertion's Target field is used as
	// the key into the values map.
	EvaluateAll(
		assertions []Definition,
		values map[string]any,
	) []Result

	// Register adds a custom evaluator for the given assertion
	// type. Returns an error if the type is already registered.
	Register(assertionType string, evaluator Evaluator) error

	// RegisterCorrespondence adds a named correspondence factory.
	// Returns an error if the name is already registered.
	RegisterCorrespondence(name string, factory Factory) error
}

// Option configures a DefaultEngine.
type Option func(*DefaultEngine)

// WithLogger sets the logger passed to every matching run.
func WithLogger(logger logging.Logger) Option {
	return func(e *DefaultEngine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics sink for assertions and matching
// runs.
func WithMetrics(m metrics.MatchMetrics) Option {
	return func(e *DefaultEngine) {
		e.metrics = m
	}
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu              sync.RWMutex
	evaluators      map[string]Evaluator
	correspondences map[string]Factory
	logger          logging.Logger
	metrics         metrics.MatchMetrics
}

// NewEngine creates a DefaultEngine with the built-in evaluators
// and correspondences pre-registered.
func NewEngine(opts ...Option) *DefaultEngine {
	e := &DefaultEngine{
		evaluators:      make(map[string]Evaluator),
		correspondences: make(map[string]Factory),
		logger:          logging.NullLogger{},
		metrics:         metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registerDefaults()
	e.registerCorrespondences()
	return e
}

// Register adds a custom evaluator for the given assertion type.
// Returns an error if the type is already registered.
func (e *DefaultEngine) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[assertionType]; exists {
		return fmt.Errorf(
			"assertion type already registered: %s",
			assertionType,
		)
	}

	e.evaluators[assertionType] = evaluator
	return nil
}

// RegisterCorrespondence adds a named correspondence factory.
func (e *DefaultEngine) RegisterCorrespondence(
	name string,
	factory Factory,
) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.correspondences[name]; exists {
		return fmt.Errorf(
			"correspondence already registered: %s", name,
		)
	}

	e.correspondences[name] = factory
	return nil
}

// Correspondence resolves a "name[:arg]" reference.
func (e *DefaultEngine) Correspondence(
	ref string,
) (correspondence.Correspondence[any, any], error) {
	name, arg := ParseCorrespondence(ref)

	e.mu.RLock()
	factory, exists := e.correspondences[name]
	e.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCorrespondence, name)
	}
	c, err := factory(arg)
	if err != nil {
		return nil, fmt.Errorf("correspondence %s: %w", name, err)
	}
	return c, nil
}

// Evaluate runs a single assertion against the provided value.
func (e *DefaultEngine) Evaluate(
	assertion Definition,
	value any,
) Result {
	result := e.evaluate(assertion, value)
	e.metrics.RecordAssertion(assertion.Type, result.Passed)
	return result
}

func (e *DefaultEngine) evaluate(
	assertion Definition,
	value any,
) Result {
	base := Result{
		Type:     assertion.Type,
		Target:   assertion.Target,
		Expected: assertion.Value,
		Actual:   value,
	}

	e.mu.RLock()
	evaluator, exists := e.evaluators[assertion.Type]
	e.mu.RUnlock()

	if !exists {
		base.Message = fmt.Sprintf(
			"unknown assertion type: %s",
			assertion.Type,
		)
		return base
	}

	c, err := e.Correspondence(assertion.Correspondence)
	if err != nil {
		base.Message = err.Error()
		return base
	}

	outcome, err := evaluator(Call{
		Definition:     assertion,
		Actual:         value,
		Correspondence: c,
		Options: []matching.Option{
			matching.WithLogger(e.logger.WithFields(
				logging.StringField("target", assertion.Target),
				logging.StringField("type", assertion.Type),
			)),
			matching.WithMetrics(e.metrics),
		},
	})
	if err != nil {
		base.Message = err.Error()
		return base
	}

	base.Passed = outcome.Passed
	base.Facts = outcome.Facts
	if outcome.Passed {
		base.Message = fmt.Sprintf(
			"%s contains exactly the expected elements", assertion.Target,
		)
		return base
	}

	base.Cause = outcome.Cause.String()
	base.Message = outcome.Message()
	if assertion.Message != "" {
		base.Message = assertion.Message + "\n" + base.Message
		base.Facts = append([]fact.Fact{fact.Simple(assertion.Message)}, base.Facts...)
	}
	return base
}

// EvaluateAll runs multiple assertions against a map of named
// values. Each assertion's Target field is used as the key into
// the values map. If a target is missing, the assertion fails.
func (e *DefaultEngine) EvaluateAll(
	assertions []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(assertions))

	for _, a := range assertions {
		value, exists := values[a.Target]
		if !exists {
			e.metrics.RecordAssertion(a.Type, false)
			results = append(results, Result{
				Type:   a.Type,
				Target: a.Target,
				Passed: false,
				Message: fmt.Sprintf(
					"target not found: %s", a.Target,
				),
			})
			continue
		}

		results = append(results, e.Evaluate(a, value))
	}

	return results
}

// HasEvaluator returns true if the given assertion type has a
// registered evaluator.
func (e *DefaultEngine) HasEvaluator(
	assertionType string,
) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[assertionType]
	return exists
}

// HasCorrespondence returns true if name is a registered
// correspondence.
func (e *DefaultEngine) HasCorrespondence(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.correspondences[name]
	return exists
}
