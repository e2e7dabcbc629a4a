package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/scanner"
	"github.com/npillmayer/lrtab/lr/scanner/lexmach"
	"github.com/npillmayer/lrtab/lr/scanner/mlex"
)

// demo describes a built-in grammar together with the patterns lexer
// generators need for its non-literal terminals.
type demo struct {
	help    string
	make    func() (*lr.Grammar, error)
	lexmach map[string]string // lexmachine regular expressions
	maleeni map[string]string // maleeni patterns
	example string
}

var demoGrammars = map[string]demo{
	"g1": {
		help:    "S ➞ a S | b",
		example: "a a b",
		make: func() (*lr.Grammar, error) {
			return lr.NewGrammar("G1", []string{"a", "b"}, []lr.Production{
				lr.P("S'", "S"),
				lr.P("S", "a", "S"),
				lr.P("S", "b"),
			})
		},
	},
	"g2": {
		help:    "S ➞ A,  A ➞ a A | b",
		example: "a a b",
		make: func() (*lr.Grammar, error) {
			b := lr.NewGrammarBuilder("G2")
			b.LHS("S").N("A").End()
			b.LHS("A").T("a", 'a').N("A").End()
			b.LHS("A").T("b", 'b').End()
			return b.Grammar()
		},
	},
	"eps": {
		help:    "S ➞ A a,  A ➞ B D,  B ➞ b | ε,  D ➞ d | ε",
		example: "b a",
		make: func() (*lr.Grammar, error) {
			b := lr.NewGrammarBuilder("Eps")
			b.LHS("S").N("A").T("a", 'a').End()
			b.LHS("A").N("B").N("D").End()
			b.LHS("B").T("b", 'b').End()
			b.LHS("B").Epsilon()
			b.LHS("D").T("d", 'd').End()
			b.LHS("D").Epsilon()
			return b.Grammar()
		},
	},
	"expr": {
		help:    "E ➞ E + T | T,  T ➞ T * F | F,  F ➞ ( E ) | id",
		example: "a + b * (c + d)",
		lexmach: map[string]string{"id": `[a-zA-Z_][a-zA-Z0-9_]*`},
		maleeni: map[string]string{"id": `[A-Za-z_][0-9A-Za-z_]*`},
		make: func() (*lr.Grammar, error) {
			b := lr.NewGrammarBuilder("Expr")
			b.LHS("E").N("E").T("+", '+').N("T").End()
			b.LHS("E").N("T").End()
			b.LHS("T").N("T").T("*", '*').N("F").End()
			b.LHS("T").N("F").End()
			b.LHS("F").T("(", '(').N("E").T(")", ')').End()
			b.LHS("F").T("id", scanner.Ident).End()
			return b.Grammar()
		},
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demoGrammars))
	for name := range demoGrammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Session holds a demo grammar and its tables.
type Session struct {
	Name  string
	G     *lr.Grammar
	Gen   *lr.TableGenerator
	demo  demo
	lexer string
}

// NewSession constructs grammar and tables for a demo grammar.
func NewSession(name, lexer string) (*Session, error) {
	d, ok := demoGrammars[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q", name)
	}
	g, err := d.make()
	if err != nil {
		return nil, err
	}
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	lrgen.CreateTables()
	return &Session{Name: name, G: g, Gen: lrgen, demo: d, lexer: lexer}, nil
}

// Table returns the table for a mode.
func (s *Session) Table(mode lr.TableMode) *lr.ParseTable {
	if mode == lr.LR0 {
		return s.Gen.LR0Table()
	}
	return s.Gen.SLR1Table()
}

// Tokenizer creates a tokenizer for input, according to the lexer setting.
//
//    fields      input is a white-space separated list of terminal names
//    go          Go-like tokens (text/scanner); token types must match the grammar
//    lexmachine  lexer generated from the terminals by lexmachine
//    maleeni     lexer generated from the terminals by maleeni
//
func (s *Session) Tokenizer(input string) (scanner.Tokenizer, error) {
	switch s.lexer {
	case "fields", "":
		return scanner.ForFields(s.G, input), nil
	case "go":
		return scanner.GoTokenizer(s.Name, strings.NewReader(input)), nil
	case "lexmachine":
		lm, err := lexmach.ForGrammar(s.G, s.demo.lexmach)
		if err != nil {
			return nil, err
		}
		return lm.Scanner(input)
	case "maleeni":
		ml, err := mlex.ForGrammar(s.G, s.demo.maleeni)
		if err != nil {
			return nil, err
		}
		return ml.Scanner(strings.NewReader(input))
	}
	return nil, fmt.Errorf("unknown lexer %q", s.lexer)
}
