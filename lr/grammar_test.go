package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S' ➞ S,  S ➞ a S | b
func makeRightRecursiveGrammar(t *testing.T) *Grammar {
	g, err := NewGrammar("G1", []string{"a", "b"}, []Production{
		P("S'", "S"),
		P("S", "a", "S"),
		P("S", "b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S' ➞ S,  S ➞ A,  A ➞ a A | b
func makeChainGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G2")
	b.LHS("S").N("A").End()
	b.LHS("A").T("a", 'a').N("A").End()
	b.LHS("A").T("b", 'b').End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S ➞ A a,  A ➞ B D,  B ➞ b | ε,  D ➞ d | ε
func makeEpsilonGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G3")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// E ➞ E + T | T,  T ➞ T * F | F,  F ➞ ( E ) | id
func makeExprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*", '*').N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", 1000).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// E ➞ E + E | id   (ambiguous)
func makeAmbiguousGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("E").N("E").T("+", '+').N("E").End()
	b.LHS("E").T("id", 1000).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuilderAugmentsGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeChainGrammar(t)
	g.Dump()
	if g.Size() != 4 {
		t.Errorf("expected grammar to have 4 rules, has %d", g.Size())
	}
	if r := g.Rule(0).String(); r != "S' ➞ S" {
		t.Errorf("expected rule 0 to be S' ➞ S, is %s", r)
	}
	if g.Start().Name != "S" || g.Augmented().Name != "S'" {
		t.Errorf("unexpected start symbols %v / %v", g.Start(), g.Augmented())
	}
	a := g.SymbolByName("a")
	if a == nil || !a.IsTerminal() || a.TokenType() != 'a' {
		t.Errorf("expected a to be a terminal with token type 'a', is %#v", a)
	}
	if g.Terminal('b') != g.SymbolByName("b") {
		t.Errorf("expected lookup by token type to find terminal b")
	}
}

func TestBuilderAvoidsNameClashForAugmentedSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("S'").End()
	b.LHS("S'").T("x", 1).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Augmented().Name != "S''" {
		t.Errorf("expected augmented start symbol to be S'', is %s", g.Augmented())
	}
}

func TestGrammarFromProductions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeRightRecursiveGrammar(t)
	if g.Size() != 3 {
		t.Errorf("expected 3 rules, have %d", g.Size())
	}
	names := []string{}
	g.EachSymbol(func(A *Symbol) { names = append(names, A.Name) })
	expected := []string{EOFName, "S'", "S", "a", "b"}
	if len(names) != len(expected) {
		t.Fatalf("expected symbols %v, have %v", expected, names)
	}
	for i := range names {
		if names[i] != expected[i] {
			t.Errorf("expected symbol #%d to be %s, is %s", i, expected[i], names[i])
		}
	}
	for _, A := range g.Symbols().Terminals() {
		if g.Terminal(A.TokenType()) != A {
			t.Errorf("terminal %v not found by its token type %d", A, A.TokenType())
		}
	}
	if last := g.Symbols().Terminals(); last[len(last)-1] != g.EOF() {
		t.Errorf("expected end-of-input to be the last terminal")
	}
}

func TestMalformedGrammars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	tests := []struct {
		name      string
		terminals []string
		prods     []Production
		cause     error
	}{
		{"no productions", nil, nil, ErrNoStartRule},
		{"undefined symbol", []string{"a"}, []Production{P("S'", "S"), P("S", "a", "c")}, ErrUndefinedSymbol},
		{"start rule too long", []string{"a"}, []Production{P("S'", "S", "a"), P("S", "a")}, ErrNoStartRule},
		{"start rule with terminal", []string{"a"}, []Production{P("S'", "a")}, ErrNoStartRule},
		{"start symbol on RHS", []string{"a"}, []Production{P("S'", "S"), P("S", "S'", "a")}, ErrNoStartRule},
		{"terminal as LHS", []string{"a"}, []Production{P("S'", "S"), P("S", "a"), P("a", "S")}, ErrNotNonTerminal},
		{"ε as terminal", []string{"a", EpsilonName}, []Production{P("S'", "S"), P("S", "a", EpsilonName)}, ErrDuplicateSymbol},
	}
	for _, tc := range tests {
		g, err := NewGrammar(tc.name, tc.terminals, tc.prods)
		if err == nil {
			t.Errorf("%s: expected error, got grammar %v", tc.name, g)
			continue
		}
		if !errors.Is(err, tc.cause) {
			t.Errorf("%s: expected error to be %v, is %v", tc.name, tc.cause, err)
		}
		var gerr *GrammarError
		if !errors.As(err, &gerr) || gerr.Grammar != tc.name {
			t.Errorf("%s: expected a GrammarError naming the grammar, have %v", tc.name, err)
		}
	}
}

func TestBuilderReportsUndefinedNonTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	if _, err := b.Grammar(); !errors.Is(err, ErrUndefinedSymbol) {
		t.Errorf("expected undefined symbol A to be reported, error is %v", err)
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).T("b", 1).End()
	if _, err := b.Grammar(); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected duplicate token type to be reported, error is %v", err)
	}
	b = NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).End()
	b.LHS("a").T("b", 2).End()
	if _, err := b.Grammar(); !errors.Is(err, ErrNotNonTerminal) {
		t.Errorf("expected terminal as LHS to be reported, error is %v", err)
	}
}

func TestEpsilonRuleString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeEpsilonGrammar(t)
	r := g.Rule(4)
	if !r.IsEps() || r.String() != "B ➞ ε" {
		t.Errorf("expected rule 4 to be B ➞ ε, is %v", r)
	}
}
