package algebra

import (
	"errors"
	"fmt"

	"github.com/roach88/sparqlcore/internal/query"
)

// Constructor contract failures.
var (
	ErrNoQuery      = errors.New("algebra: no query")
	ErrNoNode       = errors.New("algebra: missing child node")
	ErrNoExpression = errors.New("algebra: missing expression")
	ErrBadOperator  = errors.New("algebra: operator not valid for constructor")
	ErrUnlowered    = errors.New("algebra: pattern not lowered")
)

// TranslateError reports a graph pattern that could not be translated.
// Index is the sub-pattern position inside a Union, or -1.
type TranslateError struct {
	Pattern *query.GraphPattern
	Index   int
	Err     error
}

// Error implements the error interface.
func (e *TranslateError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("translate %s pattern, branch %d: %v", e.Pattern.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("translate %s pattern: %v", e.Pattern.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TranslateError) Unwrap() error {
	return e.Err
}

// IsTranslateError returns true if err is or wraps a TranslateError.
func IsTranslateError(err error) bool {
	var te *TranslateError
	return errors.As(err, &te)
}
