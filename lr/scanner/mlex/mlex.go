/*
Package mlex provides an adapter to use the maleeni lexer generator with
the parsers of lrtab.

A lexical specification is derived from the terminals of a grammar. Every
terminal matches its name literally, unless a maleeni pattern is given for it:

	lex, err := mlex.ForGrammar(g, map[string]string{"id": "[a-z]+"})
	…
	scan, err := lex.Scanner(strings.NewReader("a + b"))

White space is skipped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mlex

import (
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtab.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrtab.scanner")
}

const (
	wsKind   = "ws"
	specName = "lrtab" // maleeni requires a spec name
)

// Lexer is a compiled maleeni lexical specification for the terminals of a grammar.
type Lexer struct {
	spec  *mlspec.CompiledLexSpec
	types []lrtab.TokType // by kind ID
	skip  []bool          // by kind ID
}

// ForGrammar compiles a lexical specification for the terminals of g.
// Terminals with an entry in patterns are matched by the maleeni pattern
// given there, all others match their name literally.
func ForGrammar(g *lr.Grammar, patterns map[string]string) (*Lexer, error) {
	for name := range patterns {
		if A := g.SymbolByName(name); A == nil || !A.IsTerminal() {
			return nil, fmt.Errorf("pattern for %q, which is not a terminal of grammar %s", name, g.Name)
		}
	}
	kinds := make(map[string]lrtab.TokType)
	entries := []*mlspec.LexEntry{}
	g.EachTerminal(func(A *lr.Symbol) {
		if A.IsEOF() {
			return
		}
		kind := fmt.Sprintf("t_%d", A.Value)
		pattern := mlspec.EscapePattern(A.Name)
		if p := patterns[A.Name]; p != "" {
			pattern = p
		}
		kinds[kind] = A.TokenType()
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kind),
			Pattern: mlspec.LexPattern(pattern),
		})
	})
	entries = append(entries, &mlspec.LexEntry{
		Kind:    mlspec.LexKindName(wsKind),
		Pattern: mlspec.LexPattern(`[\u{0009}\u{000A}\u{000D}\u{0020}]+`),
	})
	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{Name: specName, Entries: entries},
		mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			for i, cerr := range cErrs {
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "%v: %v", cerr.Kind, cerr.Cause)
				if cerr.Detail != "" {
					fmt.Fprintf(&b, ": %v", cerr.Detail)
				}
			}
			return nil, fmt.Errorf("cannot compile lexer for grammar %s: %s", g.Name, b.String())
		}
		return nil, err
	}
	lex := &Lexer{
		spec:  clspec,
		types: make([]lrtab.TokType, len(clspec.KindNames)),
		skip:  make([]bool, len(clspec.KindNames)),
	}
	for id, k := range clspec.KindNames {
		lex.types[id] = scanner.Unknown
		if tt, ok := kinds[k.String()]; ok {
			lex.types[id] = tt
		}
		lex.skip[id] = k.String() == wsKind
	}
	tracer().Debugf("maleeni lexer for grammar %s has %d kinds", g.Name, len(clspec.KindNames))
	return lex, nil
}

// Scanner creates a scanner for an input. The scanner will implement the
// Tokenizer interface.
func (lex *Lexer) Scanner(src io.Reader) (*Scanner, error) {
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(lex.spec), src)
	if err != nil {
		return nil, err
	}
	return &Scanner{lex: lex, d: d, Error: logError}, nil
}

// Scanner reads tokens from a maleeni lexer, implementing the Tokenizer interface.
type Scanner struct {
	lex    *Lexer
	d      *mldriver.Lexer
	offset uint64
	eof    bool
	Error  func(error)
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		sc.Error = logError
		return
	}
	sc.Error = h
}

func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface. Invalid input is reported
// to the error handler and skipped.
func (sc *Scanner) NextToken() lrtab.Token {
	for !sc.eof {
		tok, err := sc.d.Next()
		if err != nil {
			sc.Error(err)
			sc.eof = true
			break
		}
		if tok.EOF {
			sc.eof = true
			break
		}
		from := sc.offset
		sc.offset += uint64(len(tok.Lexeme))
		if tok.Invalid {
			sc.Error(&scanner.Error{
				Pos: from,
				Msg: fmt.Sprintf("%d:%d: invalid input %q", tok.Row+1, tok.Col+1, string(tok.Lexeme)),
			})
			continue
		}
		if sc.lex.skip[tok.KindID] {
			continue
		}
		return scanner.MakeDefaultToken(sc.lex.types[tok.KindID], string(tok.Lexeme),
			lrtab.Span{from, sc.offset})
	}
	return scanner.MakeDefaultToken(lr.EOFType, "", lrtab.Span{sc.offset, sc.offset})
}
