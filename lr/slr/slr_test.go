package slr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func tables(t *testing.T, g *lr.Grammar) *lr.TableGenerator {
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	lrgen.CreateTables()
	return lrgen
}

func build(t *testing.T, b *lr.GrammarBuilder) *lr.Grammar {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S' ➞ S,  S ➞ a S | b
func rightRecursive(t *testing.T) *lr.Grammar {
	g, err := lr.NewGrammar("G1", []string{"a", "b"}, []lr.Production{
		lr.P("S'", "S"),
		lr.P("S", "a", "S"),
		lr.P("S", "b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S ➞ A,  A ➞ a A | b
func chain(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("G2")
	b.LHS("S").N("A").End()
	b.LHS("A").T("a", 'a').N("A").End()
	b.LHS("A").T("b", 'b').End()
	return build(t, b)
}

// S ➞ A a,  A ➞ B D,  B ➞ b | ε,  D ➞ d | ε
func epsilon(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("G3")
	b.LHS("S").N("A").T("a", 'a').End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 'b').End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 'd').End()
	b.LHS("D").Epsilon()
	return build(t, b)
}

func parse(t *testing.T, table *lr.ParseTable, g *lr.Grammar, input string, opts ...Option) (bool, error) {
	p := NewParser(table, opts...)
	return p.Parse(scanner.ForFields(g, input))
}

func TestRightRecursiveGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := rightRecursive(t)
	lrgen := tables(t, g)
	for _, table := range []*lr.ParseTable{lrgen.LR0Table(), lrgen.SLR1Table()} {
		accept, err := parse(t, table, g, "a a b")
		assert.NoError(t, err, table.Mode.String())
		assert.True(t, accept, table.Mode.String())
		for _, input := range []string{"a b a", "b b", "a a", "", "a c b"} {
			accept, err = parse(t, table, g, input)
			assert.False(t, accept, input)
			assert.True(t, errors.Is(err, ErrRejected), input)
		}
	}
}

func TestSyntaxErrorDetails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := rightRecursive(t)
	table := tables(t, g).SLR1Table()
	_, err := parse(t, table, g, "a a")
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, NoAction, serr.Reason)
		assert.Equal(t, 2, serr.Pos)
		assert.Equal(t, 2, serr.State)
		assert.Equal(t, lr.EOFType, serr.Lookahead.TokType())
		assert.Contains(t, serr.Error(), "position 2 in state 2")
	}
	_, err = parse(t, table, g, "a c b")
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, UnknownToken, serr.Reason)
		assert.Equal(t, 1, serr.Pos)
		assert.Equal(t, "c", serr.Lookahead.Lexeme())
	}
}

func TestReduceSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := chain(t)
	lrgen := tables(t, g)
	assert.False(t, lrgen.LR0Table().HasConflicts())
	var rules []string
	var spans []lrtab.Span
	accept, err := parse(t, lrgen.LR0Table(), g, "a a b", OnReduce(func(r *lr.Rule, span lrtab.Span) {
		rules = append(rules, r.String())
		spans = append(spans, span)
	}))
	assert.NoError(t, err)
	assert.True(t, accept)
	assert.Equal(t, []string{"A ➞ b", "A ➞ a A", "A ➞ a A", "S ➞ A"}, rules)
	assert.Equal(t, []lrtab.Span{{2, 3}, {1, 3}, {0, 3}, {0, 3}}, spans)
}

func TestTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := rightRecursive(t)
	table := tables(t, g).SLR1Table()
	p := NewParser(table, WithTrace(true))
	accept, err := p.Parse(scanner.ForFields(g, "b"))
	assert.NoError(t, err)
	assert.True(t, accept)
	steps := p.Trace()
	if assert.Len(t, steps, 3) {
		assert.Equal(t, lr.Shift(3), steps[0].Action)
		assert.Equal(t, "b", steps[0].Lookahead.Name)
		assert.Equal(t, lr.Reduce(2), steps[1].Action)
		assert.Equal(t, 1, steps[1].Goto)
		assert.Equal(t, 1, steps[1].Pos)
		assert.Equal(t, lr.Accept(), steps[2].Action)
		assert.Equal(t, "state 3 @1, lookahead #eof: r2, goto 1", steps[1].String())
	}
	p = NewParser(table)
	_, _ = p.Parse(scanner.ForFields(g, "b"))
	assert.Empty(t, p.Trace(), "steps are recorded on request only")
}

func TestTraceSurvivesNextParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := rightRecursive(t)
	p := NewParser(tables(t, g).SLR1Table(), WithTrace(true))
	_, err := p.Parse(scanner.ForFields(g, "b"))
	assert.NoError(t, err)
	first := p.Trace()
	before := append([]Step(nil), first...)
	_, err = p.Parse(scanner.ForFields(g, "a a b"))
	assert.NoError(t, err)
	assert.Equal(t, before, first)
	assert.Len(t, p.Trace(), 7)
}

func TestEpsilonReduction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := epsilon(t)
	lrgen := tables(t, g)
	slr1 := lrgen.SLR1Table()
	var serials []int
	accept, err := parse(t, slr1, g, "a", OnReduce(func(r *lr.Rule, span lrtab.Span) {
		serials = append(serials, r.Serial)
	}))
	assert.NoError(t, err)
	assert.True(t, accept)
	assert.Equal(t, []int{4, 6, 2, 1}, serials, "B ➞ ε, D ➞ ε, A ➞ B D, S ➞ A a")
	for _, input := range []string{"b a", "d a", "b d a"} {
		accept, err = parse(t, slr1, g, input)
		assert.NoError(t, err, input)
		assert.True(t, accept, input)
	}
	accept, err = parse(t, slr1, g, "d b a")
	assert.False(t, accept)
	assert.Error(t, err)
}

func TestConflictingEntryRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g := epsilon(t)
	lr0 := tables(t, g).LR0Table()
	assert.True(t, lr0.HasConflicts())
	_, err := parse(t, lr0, g, "b a")
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, ConflictingEntry, serr.Reason)
		assert.Equal(t, 0, serr.State)
	}
}

func TestInputOverrun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	g, err := lr.NewGrammar("Overrun", []string{"a", lr.EOFName}, []lr.Production{
		lr.P("S'", "S"),
		lr.P("S", "a", lr.EOFName),
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = parse(t, tables(t, g).SLR1Table(), g, "a")
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, InputOverrun, serr.Reason)
	}
}

func TestExpressionsFromText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+", '+').N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*", '*').N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", scanner.Ident).End()
	g := build(t, b)
	lrgen := tables(t, g)
	input := "a + b * (c + d)"
	p := NewParser(lrgen.SLR1Table())
	accept, err := p.Parse(scanner.GoTokenizer("expr", strings.NewReader(input)))
	assert.NoError(t, err)
	assert.True(t, accept)
	accept, err = p.Parse(scanner.GoTokenizer("expr", strings.NewReader("a + * b")))
	assert.False(t, accept)
	assert.True(t, errors.Is(err, ErrRejected))
	//
	p = NewParser(lrgen.LR0Table())
	_, err = p.Parse(scanner.GoTokenizer("expr", strings.NewReader(input)))
	var serr *SyntaxError
	if assert.True(t, errors.As(err, &serr)) {
		assert.Equal(t, ConflictingEntry, serr.Reason)
		assert.Equal(t, "*", serr.Lookahead.Lexeme())
	}
}

func TestUninitializedParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.slr")
	defer teardown()
	//
	p := NewParser(nil)
	accept, err := p.Parse(scanner.NewSymbolTokenizer(nil))
	assert.False(t, accept)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}
