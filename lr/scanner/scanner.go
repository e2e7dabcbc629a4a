/*
Package scanner defines the interface parsers of package lr/slr read tokens from.

Three tokenizers are provided here: (1) a thin wrapper over the Go std lib
'text/scanner', (2) a tokenizer over a list of grammar symbols, handy for tests
and for experimenting with grammars, and (3) adapters for lexer generators,
living in sub-packages `lexmach` (lexmachine) and `mlex` (maleeni).

Every tokenizer signals the end of input with a token of type EOF, which
equals lr.EOFType.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrtab.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Unknown is the token type for input which does not denote a terminal.
const Unknown = lrtab.TokType(-1000)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() lrtab.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// Comments are skipped by default.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(&Error{Pos: uint64(s.Pos().Offset), Msg: msg})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lrtab.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   lrtab.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   lrtab.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// Error is a scanner error at an input position.
type Error struct {
	Pos uint64
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as for the lexer adapters.
type DefaultToken struct {
	kind   lrtab.TokType
	lexeme string
	Val    interface{}
	span   lrtab.Span
}

// MakeDefaultToken creates a token from its parts.
func MakeDefaultToken(typ lrtab.TokType, lexeme string, span lrtab.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() lrtab.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() lrtab.Span {
	return t.span
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}
