package lexmach

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'lrtab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrtab.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(quote(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// ForGrammar creates a lexmachine adapter recognizing the terminals of g.
// Terminals with an entry in patterns are matched by the regular expression
// given there, all others match their name literally. Literals take precedence
// over patterns for matches of equal length. White space is skipped.
func ForGrammar(g *lr.Grammar, patterns map[string]string) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	var err error
	g.EachTerminal(func(A *lr.Symbol) {
		if A.IsEOF() || patterns[A.Name] != "" {
			return
		}
		adapter.Lexer.Add([]byte(quote(A.Name)), MakeToken(A.Name, int(A.TokenType())))
	})
	g.EachTerminal(func(A *lr.Symbol) {
		if p := patterns[A.Name]; p != "" && !A.IsEOF() {
			adapter.Lexer.Add([]byte(p), MakeToken(A.Name, int(A.TokenType())))
		}
	})
	for name := range patterns {
		if A := g.SymbolByName(name); A == nil || !A.IsTerminal() {
			err = fmt.Errorf("pattern for %q, which is not a terminal of grammar %s", name, g.Name)
		}
	}
	if err != nil {
		return nil, err
	}
	adapter.Lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	if err = adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// quote escapes every non-alphanumeric rune of a literal.
func quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, end: uint64(len(input)), Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	end     uint64
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface. Unconsumable input is
// reported to the error handler and skipped.
func (lms *LMScanner) NextToken() lrtab.Token {
	if lms.scanner == nil {
		return scanner.MakeDefaultToken(scanner.EOF, "", lrtab.Span{})
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.Error(&scanner.Error{Pos: uint64(ui.FailTC), Msg: err.Error()})
			lms.scanner.TC = ui.FailTC
			if ui.FailTC <= ui.StartTC { // always make progress
				lms.scanner.TC = ui.StartTC + 1
			}
		} else {
			lms.Error(err)
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", lrtab.Span{lms.end, lms.end})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		lrtab.TokType(token.Type),
		string(token.Lexeme),
		lrtab.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
