package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sparqlcore/internal/algebra"
	"github.com/roach88/sparqlcore/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixtures-dir>",
		Short: "Validate query fixtures without printing algebra",
		Long: `Validate CUE query fixtures.

Compiles every fixture, checks its triples, variables and graph pattern
tree, then translates it and checks the resulting algebra tree. All
problems are reported, not only the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, fixturesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	validationErrors, err := ValidateFixturesDir(fixturesDir, formatter)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	return outputValidateSuccess(formatter)
}

// ValidateFixturesDir loads every query fixture in dir and returns all
// validation problems. The error is non-nil only when nothing could be
// loaded.
func ValidateFixturesDir(fixturesDir string, formatter *OutputFormatter) ([]compiler.ValidationError, error) {
	if formatter == nil {
		formatter = &OutputFormatter{Format: "text"}
	}

	loadResult, loadErrors := LoadQueries(fixturesDir, LoadModeCollectAll)
	defer loadResult.Free()
	if loadResult == nil && len(loadErrors) > 0 {
		return nil, loadErrors[0]
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, fixturesDir)

	var allErrors []compiler.ValidationError
	for _, err := range loadErrors {
		allErrors = append(allErrors, loadErrorToValidation(err))
	}

	for _, lq := range loadResult.Queries {
		formatter.VerboseLog("Validating query: %s", lq.Name)
		allErrors = append(allErrors, validateQuery(lq)...)
	}

	return allErrors, nil
}

// validateQuery runs the compiler checks, then translates the query and
// checks the tree. Field paths are prefixed with the query name.
func validateQuery(lq LoadedQuery) []compiler.ValidationError {
	prefix := "query." + lq.Name + "."

	var errs []compiler.ValidationError
	for _, ve := range compiler.Validate(lq.Query) {
		ve.Field = prefix + ve.Field
		errs = append(errs, ve)
	}
	if len(errs) > 0 {
		// Translation of a structurally broken query only repeats the problem.
		return errs
	}

	node, err := algebra.FromQuery(lq.Query)
	if err != nil {
		return []compiler.ValidationError{{
			Field:   prefix + "pattern",
			Message: err.Error(),
			Code:    ErrCodeTranslate,
		}}
	}
	if node == nil {
		return nil
	}
	defer node.Free()

	for _, w := range algebra.Validate(node).Warnings {
		errs = append(errs, compiler.ValidationError{
			Field:   prefix + "algebra",
			Message: w,
			Code:    ErrCodeInvalidAlgebra,
		})
	}
	return errs
}

func loadErrorToValidation(err error) compiler.ValidationError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		ve := compiler.ValidationError{
			Field:   "load",
			Message: loadErr.Message,
			Code:    loadErr.Code,
		}
		if loadErr.Pos.IsValid() {
			ve.Line = loadErr.Pos.Line()
		}
		return ve
	}
	return compiler.ValidationError{
		Field:   "load",
		Message: err.Error(),
		Code:    ErrCodeGeneric,
	}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.JSON() {
		return formatter.Success(ValidationResult{Valid: true})
	}
	return formatter.Success(mark(true) + " All query fixtures valid")
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	// Validation failures = exit code 1 (test/validation failure)
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.JSON() {
		first := CLIError{Code: errs[0].Code, Message: errs[0].Message}
		if err := formatter.Failure(first, ValidationResult{Valid: false, Errors: errs}); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintf(formatter.Writer, "%s Validation failed\n\n", mark(false))
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}
	return failed
}
