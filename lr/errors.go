package lr

import (
	"errors"
	"fmt"
)

// Errors for malformed grammars. Grammar construction returns a *GrammarError
// wrapping one of these.
var (
	ErrUndefinedSymbol = errors.New("undefined symbol")
	ErrNoStartRule     = errors.New("missing start rule")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrNotNonTerminal  = errors.New("not a non-terminal")
)

// GrammarError is returned for malformed grammars.
type GrammarError struct {
	Grammar string // name of the grammar, if known
	Cause   error  // one of the Err… sentinels
	Detail  string
}

func grammarErrorf(cause error, format string, args ...interface{}) *GrammarError {
	return &GrammarError{
		Cause:  cause,
		Detail: fmt.Sprintf(format, args...),
	}
}

func (e *GrammarError) Error() string {
	if e.Grammar == "" {
		return fmt.Sprintf("%v: %s", e.Cause, e.Detail)
	}
	return fmt.Sprintf("grammar %s: %v: %s", e.Grammar, e.Cause, e.Detail)
}

func (e *GrammarError) Unwrap() error {
	return e.Cause
}

// named attaches a grammar name to an error, if it is a *GrammarError.
func named(err error, name string) error {
	var gerr *GrammarError
	if errors.As(err, &gerr) && gerr.Grammar == "" {
		gerr.Grammar = name
	}
	return err
}
