package slr

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lrtab"
)

// ErrRejected is matched by every *SyntaxError.
var ErrRejected = errors.New("input rejected")

// Reason tells why the parser rejected its input.
type Reason int8

// Reasons for rejecting input.
const (
	NoAction         Reason = iota + 1 // ACTION table has no entry
	NoGoto                             // GOTO table has no entry after a reduce
	ConflictingEntry                   // ACTION table entry holds more than one action
	InputOverrun                       // shift of end-of-input
	UnknownToken                       // token type does not denote a terminal
)

func (r Reason) String() string {
	switch r {
	case NoAction:
		return "no action"
	case NoGoto:
		return "no goto"
	case ConflictingEntry:
		return "conflicting table entry"
	case InputOverrun:
		return "input overrun"
	case UnknownToken:
		return "unknown token"
	}
	return "?"
}

// SyntaxError is returned by Parser.Parse if the input is rejected.
type SyntaxError struct {
	Pos       int         // number of tokens consumed
	State     int         // state on top of the stack
	Lookahead lrtab.Token // may be nil
	Reason    Reason
}

func (e *SyntaxError) Error() string {
	la := "<nil>"
	if e.Lookahead != nil {
		la = fmt.Sprintf("%q", e.Lookahead.Lexeme())
		if e.Lookahead.Lexeme() == "" {
			la = fmt.Sprintf("token type %d", e.Lookahead.TokType())
		}
	}
	return fmt.Sprintf("input rejected at position %d in state %d: %s (lookahead %s)",
		e.Pos, e.State, e.Reason, la)
}

// Is makes errors.Is(err, ErrRejected) succeed.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrRejected
}
