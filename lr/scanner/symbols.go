package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/lrtab/lr"
)

// SymbolTokenizer produces one token for each symbol of a list, followed by
// end-of-input. The span of the i-th token is (i…i+1).
type SymbolTokenizer struct {
	tokens []DefaultToken
	pos    int
	Error  func(error)
}

var _ Tokenizer = (*SymbolTokenizer)(nil)

// NewSymbolTokenizer creates a tokenizer for a sequence of terminals.
func NewSymbolTokenizer(syms []*lr.Symbol) *SymbolTokenizer {
	st := &SymbolTokenizer{
		tokens: make([]DefaultToken, len(syms)),
		Error:  logError,
	}
	for i, A := range syms {
		st.tokens[i] = MakeDefaultToken(A.TokenType(), A.Name, lrtab.Span{uint64(i), uint64(i + 1)})
	}
	return st
}

// ForNames creates a tokenizer for a sequence of terminal names of grammar g.
// Names which do not denote a terminal of g produce tokens of type Unknown.
func ForNames(g *lr.Grammar, names ...string) *SymbolTokenizer {
	st := &SymbolTokenizer{
		tokens: make([]DefaultToken, len(names)),
		Error:  logError,
	}
	for i, name := range names {
		tt := Unknown
		if A := g.SymbolByName(name); A != nil && A.IsTerminal() && !A.IsEOF() {
			tt = A.TokenType()
		}
		st.tokens[i] = MakeDefaultToken(tt, name, lrtab.Span{uint64(i), uint64(i + 1)})
	}
	return st
}

// ForFields splits input at white space and calls ForNames.
func ForFields(g *lr.Grammar, input string) *SymbolTokenizer {
	return ForNames(g, strings.Fields(input)...)
}

// SetErrorHandler is part of the Tokenizer interface.
func (st *SymbolTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		st.Error = logError
		return
	}
	st.Error = h
}

// NextToken is part of the Tokenizer interface. After the last symbol it
// returns end-of-input, repeatedly.
func (st *SymbolTokenizer) NextToken() lrtab.Token {
	if st.pos >= len(st.tokens) {
		n := uint64(len(st.tokens))
		return MakeDefaultToken(lr.EOFType, "", lrtab.Span{n, n})
	}
	tok := st.tokens[st.pos]
	st.pos++
	if tok.kind == Unknown {
		st.Error(&Error{Pos: tok.span.From(), Msg: fmt.Sprintf("unknown symbol %q", tok.lexeme)})
	}
	return tok
}
