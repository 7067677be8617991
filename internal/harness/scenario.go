package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Queries lists CUE query fixture files. Relative paths are resolved
	// against the scenario file's directory by LoadScenario.
	Queries []string `yaml:"queries,omitempty"`

	// Prefixes are declared before any term is built, so terms and cast
	// targets may use prefixed names.
	Prefixes map[string]string `yaml:"prefixes,omitempty"`

	// Bindings bind variables to values before the steps run.
	Bindings map[string]Term `yaml:"bindings,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions check properties over the whole trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Term is a literal description, for example {integer: 7} or
// {string: "chat", lang: fr}.
type Term map[string]any

// Step applies one operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Args are the literal operands.
	Args []Term `yaml:"args,omitempty"`

	// Flags modify compare: "nocase" and "xquery".
	Flags []string `yaml:"flags,omitempty"`

	// To is the cast target datatype, as a URI or prefixed name.
	To string `yaml:"to,omitempty"`

	// Query names a query fixture for the algebra operation.
	Query string `yaml:"query,omitempty"`

	// Expect is checked against the outcome. If nil, the outcome is only
	// recorded.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step. Exactly one field is set.
type Expect struct {
	// Result is the rendered result.
	Result *string `yaml:"result,omitempty"`

	// Error is the expected error code (FORMAT, TYPE, CAST, QNAME or
	// TRANSLATE).
	Error string `yaml:"error,omitempty"`
}

// Assertion checks a property over the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op is the counted operation (step_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of steps (step_count).
	Count int `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpCompare = "compare"
	OpEquals  = "equals"
	OpEBV     = "ebv"
	OpCast    = "cast"
	OpPrint   = "print"
	OpAlgebra = "algebra"
)

// Assertion type constants.
const (
	AssertAntisymmetric    = "antisymmetric"
	AssertEqualsConsistent = "equals_consistent"
	AssertStepCount        = "step_count"
)

// opArity is the number of terms each literal operation takes.
var opArity = map[string]int{
	OpCompare: 2,
	OpEquals:  2,
	OpEBV:     1,
	OpCast:    1,
	OpPrint:   1,
	OpAlgebra: 0,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// Query paths are resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving query paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve query paths relative to base path BEFORE validation
	for i, p := range scenario.Queries {
		if !filepath.IsAbs(p) && basePath != "" {
			scenario.Queries[i] = filepath.Join(basePath, p)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for _, p := range s.Queries {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("query file not found: %s", p)
		}
	}

	hasAlgebra := false
	for i, step := range s.Steps {
		arity, ok := opArity[step.Op]
		if !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if len(step.Args) != arity {
			return fmt.Errorf("steps[%d]: %s takes %d args, got %d", i, step.Op, arity, len(step.Args))
		}
		if step.Op == OpCast && step.To == "" {
			return fmt.Errorf("steps[%d]: to is required for cast", i)
		}
		if step.Op == OpAlgebra {
			hasAlgebra = true
			if step.Query == "" {
				return fmt.Errorf("steps[%d]: query is required for algebra", i)
			}
		}
		for _, flag := range step.Flags {
			if step.Op != OpCompare {
				return fmt.Errorf("steps[%d]: flags only apply to compare", i)
			}
			if flag != "nocase" && flag != "xquery" {
				return fmt.Errorf("steps[%d]: unknown flag %q", i, flag)
			}
		}
		if e := step.Expect; e != nil && (e.Result == nil) == (e.Error == "") {
			return fmt.Errorf("steps[%d].expect: exactly one of result or error is required", i)
		}
	}

	if hasAlgebra && len(s.Queries) == 0 {
		return fmt.Errorf("queries list is required for algebra steps")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertAntisymmetric, AssertEqualsConsistent:
	case AssertStepCount:
		if _, ok := opArity[a.Op]; !ok {
			return fmt.Errorf("assertions[%d]: step_count needs a known op, got %q", index, a.Op)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for step_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
