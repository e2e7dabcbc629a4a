package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func tablesFor(t *testing.T, g *Grammar) *TableGenerator {
	lrgen := NewTableGenerator(Analysis(g))
	lrgen.CreateTables()
	return lrgen
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "s3", Shift(3).String())
	assert.Equal(t, "r2", Reduce(2).String())
	assert.Equal(t, "acc", Accept().String())
	assert.True(t, Action{}.IsError())
	assert.Equal(t, Reduce(2), decode(encode(Reduce(2))))
	c := decodeCell([]int32{encode(Shift(3)), encode(Reduce(2))})
	assert.Equal(t, ConflictAction, c.Kind)
	assert.Equal(t, "s3/r2", c.String())
	assert.Len(t, c.Candidates(), 2)
}

func TestTablesForRightRecursiveGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeRightRecursiveGrammar(t)
	lrgen := tablesFor(t, g)
	sym := g.SymbolByName
	for _, table := range []*ParseTable{lrgen.LR0Table(), lrgen.SLR1Table()} {
		assert.False(t, table.HasConflicts(), table.Mode.String())
		assert.Equal(t, 5, table.StateCount())
		assert.Equal(t, Shift(2), table.Action(0, sym("a")))
		assert.Equal(t, Shift(3), table.Action(0, sym("b")))
		assert.Equal(t, Shift(2), table.Action(2, sym("a")), "shift on a in state after a")
		assert.Equal(t, Accept(), table.Action(1, g.EOF()))
		assert.Equal(t, Reduce(2), table.Action(3, g.EOF()))
		assert.Equal(t, Reduce(1), table.Action(4, g.EOF()))
		to, ok := table.Goto(0, sym("S"))
		assert.True(t, ok)
		assert.Equal(t, 1, to)
		to, ok = table.Goto(2, sym("S"))
		assert.True(t, ok)
		assert.Equal(t, 4, to)
		_, ok = table.Goto(1, sym("S"))
		assert.False(t, ok)
	}
	// LR(0) reduces on every terminal, SLR(1) only on FOLLOW(S) = {#eof}
	assert.Equal(t, Reduce(2), lrgen.LR0Table().Action(3, sym("a")))
	assert.True(t, lrgen.SLR1Table().Action(3, sym("a")).IsError())
	assert.Len(t, lrgen.SLR1Table().ActionRow(3), 1)
	assert.Len(t, lrgen.LR0Table().ActionRow(3), 3)
	assert.Len(t, lrgen.SLR1Table().GotoRow(2), 1)
	assert.Equal(t, "grammar G1 is LR(0)", lrgen.LR0Table().Verdict())
	assert.Equal(t, "grammar G1 is SLR(1)", lrgen.SLR1Table().Verdict())
}

func TestChainGrammarIsLR0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	lrgen := tablesFor(t, makeChainGrammar(t))
	assert.False(t, lrgen.LR0Table().HasConflicts())
	assert.False(t, lrgen.HasConflicts)
	assert.Equal(t, 6, lrgen.LR0Table().StateCount())
	assert.Empty(t, lrgen.LR0Table().Conflicts())
}

func TestExpressionGrammarIsSLRButNotLR0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	lrgen := tablesFor(t, g)
	lr0, slr1 := lrgen.LR0Table(), lrgen.SLR1Table()
	assert.True(t, lr0.HasConflicts())
	assert.False(t, slr1.HasConflicts())
	assert.Equal(t, "grammar Expr is not LR(0)", lr0.Verdict())
	assert.Equal(t, "grammar Expr is SLR(1)", slr1.Verdict())
	for _, c := range lr0.Conflicts() {
		assert.Equal(t, "shift/reduce", c.Kind())
		assert.Equal(t, "*", c.Terminal.Name, c.String())
		assert.Equal(t, ConflictAction, lr0.Action(c.State, c.Terminal).Kind)
	}
}

func TestAmbiguousGrammarHasConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeAmbiguousGrammar(t)
	lrgen := tablesFor(t, g)
	assert.True(t, lrgen.HasConflicts)
	conflicts := lrgen.SLR1Table().Conflicts()
	if assert.Len(t, conflicts, 1) {
		c := conflicts[0]
		assert.Equal(t, "+", c.Terminal.Name)
		assert.Len(t, c.Actions, 2)
		assert.Contains(t, c.Actions, Reduce(1))
	}
	assert.Equal(t, "grammar Ambiguous is not SLR(1)", lrgen.SLR1Table().Verdict())
}

func TestEpsilonGrammarTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeEpsilonGrammar(t)
	lrgen := tablesFor(t, g)
	assert.True(t, lrgen.LR0Table().HasConflicts(), "reduce B ➞ ε collides with shift b")
	assert.False(t, lrgen.SLR1Table().HasConflicts())
	slr := lrgen.SLR1Table()
	assert.Equal(t, ReduceAction, slr.Action(0, g.SymbolByName("d")).Kind)
	assert.Equal(t, ShiftAction, slr.Action(0, g.SymbolByName("b")).Kind)
	assert.Equal(t, Reduce(4), slr.Action(0, g.SymbolByName("a")))
}

func TestLR0CleanImpliesSLR1Clean(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	for _, g := range []*Grammar{makeRightRecursiveGrammar(t), makeChainGrammar(t), makeEpsilonGrammar(t),
		makeExprGrammar(t), makeAmbiguousGrammar(t)} {
		lrgen := tablesFor(t, g)
		if !lrgen.LR0Table().HasConflicts() {
			assert.False(t, lrgen.SLR1Table().HasConflicts(), g.Name)
		}
		assert.LessOrEqual(t, len(lrgen.SLR1Table().Conflicts()), len(lrgen.LR0Table().Conflicts()), g.Name)
	}
}

func TestTableOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtab.lr")
	defer teardown()
	//
	g := makeRightRecursiveGrammar(t)
	table := tablesFor(t, g).SLR1Table()
	s := table.String()
	assert.Contains(t, s, "acc")
	assert.Contains(t, s, "s2")
	assert.NotContains(t, s, "G:S'")
	var buf bytes.Buffer
	assert.NoError(t, ActionTableAsHTML(table, &buf))
	assert.True(t, strings.Contains(buf.String(), "<table"))
	assert.Contains(t, buf.String(), "r1")
	buf.Reset()
	assert.NoError(t, GotoTableAsHTML(table, &buf))
	assert.Contains(t, buf.String(), "<td")
}
