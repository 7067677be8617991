package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/sparqlcore/internal/algebra"
	"github.com/roach88/sparqlcore/internal/compiler"
	"github.com/roach88/sparqlcore/internal/literal"
	"github.com/roach88/sparqlcore/internal/query"
)

// ErrorCodeTranslate marks a step whose algebra translation failed.
const ErrorCodeTranslate = "TRANSLATE"

// Harness is the test execution engine. It owns a scratch query that
// holds the scenario's prefixes and variables.
type Harness struct {
	cue     *cue.Context
	queries map[string]cue.Value
	scratch *query.Query
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Load the query fixtures
//  2. Declare prefixes and bind variables
//  3. Execute steps, checking each expect clause
//  4. Evaluate assertions against the trace
//
// Expectation and assertion failures are reported in the result. An error
// is returned only when the scenario itself cannot be executed.
func Run(scenario *Scenario) (*Result, error) {
	h, err := newHarness(scenario)
	if err != nil {
		return nil, err
	}
	defer h.close()

	result := NewResult()
	for i, step := range scenario.Steps {
		event, err := h.runStep(step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		result.AddEvent(event)
		if msg := checkExpect(step, event); msg != "" {
			result.AddError(fmt.Sprintf("steps[%d] (%s): %s", i, step.Op, msg))
		}
	}

	for _, msg := range h.evaluateAssertions(scenario, result) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"steps", len(result.Trace),
		"pass", result.Pass)
	return result, nil
}

func newHarness(scenario *Scenario) (*Harness, error) {
	h := &Harness{
		cue:     cuecontext.New(),
		queries: make(map[string]cue.Value),
		scratch: query.New(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	for _, path := range scenario.Queries {
		if err := h.loadQueries(path); err != nil {
			h.close()
			return nil, err
		}
	}

	for _, prefix := range sortedKeys(scenario.Prefixes) {
		h.scratch.DeclarePrefix(prefix, literal.URI(scenario.Prefixes[prefix]))
	}

	for _, name := range sortedKeys(scenario.Bindings) {
		l, err := h.term(scenario.Bindings[name], "bindings."+name)
		if err != nil {
			h.close()
			return nil, err
		}
		h.scratch.Variable(name).Bind(l)
	}
	return h, nil
}

// close releases the scenario bindings and the scratch query. Each bound
// literal is owned by the harness, not by its variable.
func (h *Harness) close() {
	for _, v := range h.scratch.Variables() {
		if l := v.Value; l != nil {
			v.Bind(nil)
			l.Free()
		}
	}
	h.scratch.Free()
}

// loadQueries compiles one CUE file and indexes its query.<name> structs.
func (h *Harness) loadQueries(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read query file: %w", err)
	}
	v := h.cue.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fmt.Errorf("compile %s: %w", path, err)
	}

	queriesVal := v.LookupPath(cue.ParsePath("query"))
	if !queriesVal.Exists() {
		return fmt.Errorf("%s: no query definitions", path)
	}
	iter, err := queriesVal.Fields()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for iter.Next() {
		name := iter.Label()
		if _, dup := h.queries[name]; dup {
			return fmt.Errorf("%s: duplicate query %q", path, name)
		}
		h.queries[name] = iter.Value()
	}
	return nil
}

// term builds a literal from t, expanding any prefixed name against the
// scenario prefixes.
func (h *Harness) term(t Term, field string) (*literal.Literal, error) {
	v := h.cue.Encode(map[string]any(t))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	l, err := compiler.CompileTerm(h.scratch, v, field)
	if err != nil {
		return nil, err
	}
	if literal.HasQName(l) {
		if err := literal.ExpandQName(l, h.scratch); err != nil {
			l.Free()
			return nil, fmt.Errorf("%s: %w", field, err)
		}
	}
	return l, nil
}

func (h *Harness) terms(step Step) ([]*literal.Literal, error) {
	lits := make([]*literal.Literal, 0, len(step.Args))
	for i, t := range step.Args {
		l, err := h.term(t, fmt.Sprintf("args[%d]", i))
		if err != nil {
			freeAll(lits)
			return nil, err
		}
		lits = append(lits, l)
	}
	return lits, nil
}

func (h *Harness) runStep(step Step) (TraceEvent, error) {
	event := TraceEvent{Op: step.Op, Flags: step.Flags}

	if step.Op == OpAlgebra {
		event.Query = step.Query
		return event, h.runAlgebra(step, &event)
	}

	lits, err := h.terms(step)
	if err != nil {
		return event, err
	}
	defer freeAll(lits)

	for _, l := range lits {
		event.Args = append(event.Args, l.String())
	}

	switch step.Op {
	case OpCompare:
		c, err := literal.Compare(lits[0], lits[1], compareFlags(step.Flags))
		if err != nil {
			event.Error = errorCode(err)
			break
		}
		event.Result = strconv.Itoa(sign(c))

	case OpEquals:
		event.Result = strconv.FormatBool(literal.Equals(lits[0], lits[1]))

	case OpEBV:
		event.Result = strconv.FormatBool(literal.EBV(lits[0]))

	case OpCast:
		to, err := h.resolveDatatype(step.To)
		if err != nil {
			return event, err
		}
		event.To = string(to)
		cast, err := literal.Cast(lits[0], to)
		if err != nil {
			event.Error = errorCode(err)
			break
		}
		event.Result = cast.String()
		cast.Free()

	case OpPrint:
		event.Result = lits[0].String()

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}
	return event, nil
}

func (h *Harness) runAlgebra(step Step, event *TraceEvent) error {
	v, ok := h.queries[step.Query]
	if !ok {
		return fmt.Errorf("unknown query %q", step.Query)
	}
	q, err := compiler.CompileQuery(v)
	if err != nil {
		return fmt.Errorf("query %s: %w", step.Query, err)
	}
	defer q.Free()

	node, err := algebra.FromQuery(q)
	if err != nil {
		if algebra.IsTranslateError(err) {
			event.Error = ErrorCodeTranslate
			return nil
		}
		return fmt.Errorf("query %s: %w", step.Query, err)
	}
	if node == nil {
		event.Result = "null"
		return nil
	}
	defer node.Free()

	if vr := algebra.Validate(node); !vr.Valid {
		return fmt.Errorf("query %s: invalid algebra: %s", step.Query, strings.Join(vr.Warnings, "; "))
	}
	event.Result = node.String()
	return nil
}

// resolveDatatype accepts an absolute URI or a prefixed name.
func (h *Harness) resolveDatatype(to string) (literal.URI, error) {
	if strings.Contains(to, "://") {
		return literal.URI(to), nil
	}
	u, err := h.scratch.ResolveQName(to)
	if err != nil {
		return "", fmt.Errorf("cast target: %w", err)
	}
	return u, nil
}

func checkExpect(step Step, event TraceEvent) string {
	e := step.Expect
	if e == nil {
		return ""
	}
	if e.Error != "" {
		if event.Error != e.Error {
			return fmt.Sprintf("expected error %s, got %s", e.Error, describe(event))
		}
		return ""
	}
	if event.Error != "" || event.Result != *e.Result {
		return fmt.Sprintf("expected %q, got %s", *e.Result, describe(event))
	}
	return ""
}

func describe(event TraceEvent) string {
	if event.Error != "" {
		return "error " + event.Error
	}
	return strconv.Quote(event.Result)
}

// errorCode maps an operation error to the code recorded in the trace.
func errorCode(err error) string {
	var le *literal.Error
	if errors.As(err, &le) {
		return string(le.Code)
	}
	return "ERROR"
}

func compareFlags(flags []string) literal.CompareFlags {
	var f literal.CompareFlags
	for _, flag := range flags {
		switch flag {
		case "nocase":
			f |= literal.CompareNoCase
		case "xquery":
			f |= literal.CompareXQuery
		}
	}
	return f
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

func freeAll(lits []*literal.Literal) {
	for _, l := range lits {
		l.Free()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
