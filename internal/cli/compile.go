package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sparqlcore/internal/algebra"
	"github.com/roach88/sparqlcore/internal/compiler"
	"github.com/roach88/sparqlcore/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledQuery is the algebra translation of one query fixture.
type CompiledQuery struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	Triples   int      `json:"triples"`
	Variables []string `json:"variables"`
	// Algebra is the canonical IR of the tree, or null when the root
	// pattern is absent or not lowered.
	Algebra     json.RawMessage `json:"algebra"`
	Rendering   string          `json:"rendering,omitempty"`
	Fingerprint string          `json:"fingerprint,omitempty"`
}

// CompilationResult holds the compiled query fixtures.
type CompilationResult struct {
	Queries []CompiledQuery `json:"queries"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <fixtures-dir>",
		Short: "Translate CUE query fixtures to SPARQL algebra",
		Long: `Compile CUE query fixtures and translate their graph patterns to
SPARQL algebra.

Each field of the top-level "query" struct is compiled to a query,
translated, and printed as an algebra tree. JSON output carries the
canonical IR of each tree and its content fingerprint.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, fixturesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadQueries(fixturesDir, LoadModeCollectAll)
	defer loadResult.Free()

	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, fixturesDir)

	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	result := &CompilationResult{Queries: make([]CompiledQuery, 0, len(loadResult.Queries))}
	var translateErrors []error
	for _, lq := range loadResult.Queries {
		formatter.VerboseLog("Translating query: %s", lq.Name)
		compiled, err := compileQuery(lq)
		if err != nil {
			translateErrors = append(translateErrors, err)
			continue
		}
		result.Queries = append(result.Queries, compiled)
	}
	if len(translateErrors) > 0 {
		return outputCompileErrors(formatter, translateErrors)
	}

	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// compileQuery translates one loaded query and exports the tree.
func compileQuery(lq LoadedQuery) (CompiledQuery, error) {
	q := lq.Query
	compiled := CompiledQuery{
		Name:      lq.Name,
		ID:        q.ID().String(),
		Triples:   q.Triples().Len(),
		Variables: []string{},
		Algebra:   json.RawMessage("null"),
	}
	for _, v := range q.Variables() {
		compiled.Variables = append(compiled.Variables, v.Name)
	}

	node, err := algebra.FromQuery(q)
	if err != nil {
		return compiled, &LoadError{
			Code:    ErrCodeTranslate,
			Message: fmt.Sprintf("query.%s: %v", lq.Name, err),
		}
	}
	if node == nil {
		return compiled, nil
	}
	defer node.Free()

	if vr := algebra.Validate(node); !vr.Valid {
		return compiled, &LoadError{
			Code:    ErrCodeInvalidAlgebra,
			Message: fmt.Sprintf("query.%s: %s", lq.Name, vr.Warnings[0]),
		}
	}

	data, err := ir.MarshalCanonical(algebra.ToIR(node))
	if err != nil {
		return compiled, fmt.Errorf("query.%s: marshaling algebra: %w", lq.Name, err)
	}
	fingerprint, err := algebra.Fingerprint(node)
	if err != nil {
		return compiled, fmt.Errorf("query.%s: %w", lq.Name, err)
	}

	compiled.Algebra = data
	compiled.Rendering = node.String()
	compiled.Fingerprint = fingerprint
	return compiled, nil
}

// compilationHash identifies a compilation by the names and fingerprints
// of its queries. Query ids are excluded so the hash is stable across runs.
func compilationHash(result *CompilationResult) string {
	entries := make(ir.IRArray, len(result.Queries))
	for i, cq := range result.Queries {
		entries[i] = ir.NewIRObject(
			ir.O("name", ir.IRString(cq.Name)),
			ir.O("fingerprint", ir.IRString(cq.Fingerprint)),
		)
	}
	return ir.MustHash(ir.DomainAlgebra, entries)
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.JSON() {
		return formatter.SuccessWithTrace(result, compilationHash(result))
	}

	fmt.Fprintf(formatter.Writer, "%s Compiled %d fixture(s)\n\n", mark(true), len(result.Queries))

	for _, cq := range result.Queries {
		fmt.Fprintf(formatter.Writer, "%s: %d triple(s), %d variable(s)\n",
			cq.Name, cq.Triples, len(cq.Variables))
		if cq.Rendering == "" {
			fmt.Fprintln(formatter.Writer, "  (no algebra)")
		} else {
			fmt.Fprintf(formatter.Writer, "%s\n", cq.Rendering)
		}
		fmt.Fprintln(formatter.Writer)
	}

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote algebra to %s\n", outputFile)
	}

	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	cliErrors := make([]CLIError, len(errs))
	for i, err := range errs {
		code, message := parseCompileError(err)
		cliErrors[i] = CLIError{Code: code, Message: message}
	}
	failed := NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))

	if formatter.JSON() {
		if err := formatter.Failure(cliErrors[0], cliErrors); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintf(formatter.Writer, "%s Compilation failed\n\n", mark(false))
	for i, err := range errs {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", cliErrors[i].Code, cliErrors[i].Message)
	}
	return failed
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return MapFieldToErrorCode(compileErr.Field), compileErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// writeResultToFile writes the compilation result to a file.
func writeResultToFile(result *CompilationResult, filename string) error {
	// Indented for readability; canonical JSON is used only for hashing
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
