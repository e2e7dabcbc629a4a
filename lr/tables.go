package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/npillmayer/lrtab/lr/sparse"
)

// === Actions ===============================================================

// ActionKind is the kind of a parser action.
type ActionKind int8

// Kinds of parser actions. The zero value NoAction denotes an error entry.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
	ConflictAction
)

func (k ActionKind) String() string {
	switch k {
	case NoAction:
		return "error"
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	case ConflictAction:
		return "conflict"
	}
	return "<unknown action>"
}

// Action is an entry of an ACTION table:
//
//    Shift(state)     shift the lookahead and go to state
//    Reduce(rule)     reduce by a rule of the grammar
//    Accept           accept the input
//    Conflict         more than one of the above, see Candidates()
//
// The zero value is the error action.
type Action struct {
	Kind       ActionKind
	Target     int // target state for shifts, rule serial for reduces
	candidates []Action
}

// Shift creates a shift action.
func Shift(state int) Action {
	return Action{Kind: ShiftAction, Target: state}
}

// Reduce creates a reduce action.
func Reduce(rule int) Action {
	return Action{Kind: ReduceAction, Target: rule}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// IsError is true for the empty table entry.
func (a Action) IsError() bool {
	return a.Kind == NoAction
}

// Candidates returns the conflicting actions of a conflict entry, and
// the action itself otherwise.
func (a Action) Candidates() []Action {
	if a.Kind == ConflictAction {
		return append([]Action(nil), a.candidates...)
	}
	if a.Kind == NoAction {
		return nil
	}
	return []Action{a}
}

// Equals compares two actions. Conflict entries are equal if they hold the
// same candidates in the same order.
func (a Action) Equals(b Action) bool {
	if a.Kind != b.Kind || a.Target != b.Target || len(a.candidates) != len(b.candidates) {
		return false
	}
	for i := range a.candidates {
		if !a.candidates[i].Equals(b.candidates[i]) {
			return false
		}
	}
	return true
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	case AcceptAction:
		return "acc"
	case ConflictAction:
		s := make([]string, len(a.candidates))
		for i, c := range a.candidates {
			s[i] = c.String()
		}
		return strings.Join(s, "/")
	}
	return ""
}

// Actions are stored in sparse matrices as int32, with the kind in the lower
// two bits.
func encode(a Action) int32 {
	return int32(a.Target)<<2 | int32(a.Kind)
}

func decode(v int32) Action {
	return Action{Kind: ActionKind(v & 3), Target: int(v >> 2)}
}

func decodeCell(vals []int32) Action {
	switch len(vals) {
	case 0:
		return Action{}
	case 1:
		return decode(vals[0])
	}
	a := Action{Kind: ConflictAction, candidates: make([]Action, len(vals))}
	for i, v := range vals {
		a.candidates[i] = decode(v)
	}
	return a
}

// === Parse Tables ==========================================================

// TableMode selects the strategy for placing reduce actions.
type TableMode int8

// Table construction strategies.
const (
	LR0  TableMode = iota // reduce on every terminal
	SLR1                  // reduce on FOLLOW(LHS)
)

func (m TableMode) String() string {
	if m == LR0 {
		return "LR(0)"
	}
	return "SLR(1)"
}

// Conflict is a table entry with more than one candidate action.
type Conflict struct {
	State    int
	Terminal *Symbol
	Actions  []Action
}

// Kind returns "shift/reduce" or "reduce/reduce".
func (c Conflict) Kind() string {
	for _, a := range c.Actions {
		if a.Kind == ShiftAction {
			return "shift/reduce"
		}
	}
	return "reduce/reduce"
}

func (c Conflict) String() string {
	a := Action{Kind: ConflictAction, candidates: c.Actions}
	return fmt.Sprintf("%s conflict in state %d on %s: %s", c.Kind(), c.State, c.Terminal, a)
}

// ParseTable holds the ACTION and the GOTO table for a grammar. Tables are
// created by a TableGenerator and are read-only afterwards. They may be
// shared between parsers.
type ParseTable struct {
	Mode      TableMode
	g         *Grammar
	cfsm      *CFSM
	actions   *sparse.IntMatrix // states × symbol values
	gotos     *sparse.IntMatrix // states × symbol values
	conflicts []Conflict
}

func newParseTable(mode TableMode, cfsm *CFSM) *ParseTable {
	statescnt, symcnt := cfsm.Size(), cfsm.g.symbols.Size()
	return &ParseTable{
		Mode:    mode,
		g:       cfsm.g,
		cfsm:    cfsm,
		actions: sparse.NewIntMatrix(statescnt, symcnt, sparse.DefaultNullValue),
		gotos:   sparse.NewIntMatrix(statescnt, symcnt, sparse.DefaultNullValue),
	}
}

// Grammar returns the grammar of the table.
func (t *ParseTable) Grammar() *Grammar {
	return t.g
}

// CFSM returns the canonical collection the table has been built from.
func (t *ParseTable) CFSM() *CFSM {
	return t.cfsm
}

// StateCount returns the number of states, i.e. rows.
func (t *ParseTable) StateCount() int {
	return t.cfsm.Size()
}

// Action returns ACTION[state][a]. The result is the error action for
// missing entries and a conflict action for entries with more than one candidate.
func (t *ParseTable) Action(state int, a *Symbol) Action {
	if a == nil || !a.IsTerminal() || state < 0 || state >= t.actions.M() {
		return Action{}
	}
	return decodeCell(t.actions.Values(state, a.Value))
}

// Goto returns GOTO[state][A] and true, or false if there is no entry.
func (t *ParseTable) Goto(state int, A *Symbol) (int, bool) {
	if A == nil || !A.IsNonTerminal() || state < 0 || state >= t.gotos.M() {
		return 0, false
	}
	v := t.gotos.Value(state, A.Value)
	if v == t.gotos.NullValue() {
		return 0, false
	}
	return int(v), true
}

// ActionRow returns all non-error entries of ACTION[state].
func (t *ParseTable) ActionRow(state int) map[*Symbol]Action {
	row := make(map[*Symbol]Action)
	t.g.EachTerminal(func(a *Symbol) {
		if act := t.Action(state, a); !act.IsError() {
			row[a] = act
		}
	})
	return row
}

// GotoRow returns all entries of GOTO[state].
func (t *ParseTable) GotoRow(state int) map[*Symbol]int {
	row := make(map[*Symbol]int)
	t.g.EachNonTerminal(func(A *Symbol) {
		if to, ok := t.Goto(state, A); ok {
			row[A] = to
		}
	})
	return row
}

// HasConflicts is true if at least one ACTION entry holds more than one action.
func (t *ParseTable) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// Conflicts returns all conflicting entries, ordered by state and terminal.
func (t *ParseTable) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// Verdict classifies the grammar with respect to the table's strategy, e.g.
// "grammar G is SLR(1)" or "grammar G is not LR(0)".
func (t *ParseTable) Verdict() string {
	if t.HasConflicts() {
		return fmt.Sprintf("grammar %s is not %s", t.g.Name, t.Mode)
	}
	return fmt.Sprintf("grammar %s is %s", t.g.Name, t.Mode)
}

// String renders the table as text, one line per state, with ACTION columns
// for the terminals and GOTO columns for the non-terminals.
func (t *ParseTable) String() string {
	terms := t.g.symbols.Terminals()
	nonterms := make([]*Symbol, 0, t.g.symbols.Size())
	for _, A := range t.g.symbols.NonTerminals() {
		if A != t.g.Augmented() { // GOTO on S' is never used
			nonterms = append(nonterms, A)
		}
	}
	header := []string{"S", "|"}
	for _, a := range terms {
		header = append(header, "A:"+a.Name)
	}
	header = append(header, "|")
	for _, A := range nonterms {
		header = append(header, "G:"+A.Name)
	}
	data := [][]string{header}
	for i := 0; i < t.StateCount(); i++ {
		row := []string{fmt.Sprintf("%d", i), "|"}
		for _, a := range terms {
			row = append(row, t.Action(i, a).String())
		}
		row = append(row, "|")
		for _, A := range nonterms {
			cell := ""
			if to, ok := t.Goto(i, A); ok {
				cell = fmt.Sprintf("%d", to)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for LR(0) and SLR(1) parsers recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	lr0          *ParseTable
	slr1         *ParseTable
	HasConflicts bool // SLR(1) table has conflicts
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.ga.buildCFSM()
	}
	return lrgen.dfa
}

// CreateTables creates the LR(0) and the SLR(1) parse table.
func (lrgen *TableGenerator) CreateTables() {
	lrgen.lr0 = lrgen.BuildLR0Table()
	lrgen.slr1 = lrgen.BuildSLR1Table()
	lrgen.HasConflicts = lrgen.slr1.HasConflicts()
	tracer().Infof("%s", lrgen.lr0.Verdict())
	tracer().Infof("%s", lrgen.slr1.Verdict())
}

// LR0Table returns the LR(0) table. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) LR0Table() *ParseTable {
	if lrgen.lr0 == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.lr0
}

// SLR1Table returns the SLR(1) table. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) SLR1Table() *ParseTable {
	if lrgen.slr1 == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.slr1
}

// AcceptingStates returns all states of the CFSM which have an accept action,
// i.e. states containing the completed start item [S' ➞ S •].
func (lrgen *TableGenerator) AcceptingStates() []int {
	acc := make([]int, 0, 1)
	for _, state := range lrgen.CFSM().States() {
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// BuildLR0Table constructs the LR(0) table. Reduce actions are placed for every
// terminal, as LR(0) parsers do not look ahead.
func (lrgen *TableGenerator) BuildLR0Table() *ParseTable {
	return lrgen.buildTable(LR0)
}

// BuildSLR1Table constructs the SLR(1) table. Reduce actions for a rule
// A ➞ … are placed for the terminals in FOLLOW(A) only.
func (lrgen *TableGenerator) BuildSLR1Table() *ParseTable {
	return lrgen.buildTable(SLR1)
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state.
// If an item has a terminal immediately after the dot, we produce a shift
// entry; for a non-terminal we produce a GOTO entry. If an item's dot is behind
// the complete RHS of a rule, then
// - for the LR(0) case: we produce a reduce-entry for the rule for every terminal
// - for the SLR case: we produce a reduce-entry for the rule for each
//   terminal from FOLLOW(LHS).
// The completed start rule produces an accept entry for end-of-input.
//
// Every entry of the ACTION table may hold more than one action, thus allowing
// for shift/reduce- or reduce/reduce-conflicts.
func (lrgen *TableGenerator) buildTable(mode TableMode) *ParseTable {
	cfsm := lrgen.CFSM()
	table := newParseTable(mode, cfsm)
	terminals := lrgen.g.symbols.Terminals()
	tracer().Infof("%s tables of size %d x %d", mode, cfsm.Size(), lrgen.g.symbols.Size())
	for _, state := range cfsm.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			A := i.PeekSymbol()
			switch {
			case A != nil && A.IsTerminal():
				to := cfsm.Transition(state, A)
				table.add(state.ID, A, Shift(to.ID))
			case A != nil:
				to := cfsm.Transition(state, A)
				table.gotos.Set(state.ID, A.Value, int32(to.ID))
				tracer().Debugf("    GOTO(%d, %v) = %d", state.ID, A, to.ID)
			case i.rule.Serial == 0:
				table.add(state.ID, lrgen.g.EOF(), Accept())
			case mode == LR0:
				for _, la := range terminals {
					table.add(state.ID, la, Reduce(i.rule.Serial))
				}
			default:
				for _, la := range lrgen.ga.FollowSymbols(i.rule.LHS) {
					table.add(state.ID, la, Reduce(i.rule.Serial))
				}
			}
		}
	}
	table.actions.Each(func(st, col int, vals []int32) {
		if len(vals) > 1 {
			c := Conflict{State: st, Terminal: lrgen.g.symbols.Symbol(col), Actions: decodeCell(vals).candidates}
			tracer().Infof("%v", c)
			table.conflicts = append(table.conflicts, c)
		}
	})
	return table
}

func (t *ParseTable) add(state int, a *Symbol, act Action) {
	t.actions.Add(state, a.Value, encode(act))
	tracer().Debugf("    ACTION(%d, %v) = %s", state, a, t.Action(state, a))
}

// === Export ================================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(t *ParseTable, w io.Writer) error {
	if t == nil {
		return fmt.Errorf("GOTO table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(t, "GOTO", t.g.symbols.NonTerminals(), func(state int, A *Symbol) string {
		if to, ok := t.Goto(state, A); ok {
			return fmt.Sprintf("%d", to)
		}
		return "&nbsp;"
	}, w)
}

// ActionTableAsHTML exports an ACTION-table in HTML-format.
func ActionTableAsHTML(t *ParseTable, w io.Writer) error {
	if t == nil {
		return fmt.Errorf("ACTION table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(t, "ACTION", t.g.symbols.Terminals(), func(state int, a *Symbol) string {
		if act := t.Action(state, a); !act.IsError() {
			return act.String()
		}
		return "&nbsp;"
	}, w)
}

func parserTableAsHTML(t *ParseTable, tname string, symvec []*Symbol,
	td func(int, *Symbol) string, w io.Writer) error {
	//
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("%s %s table of grammar %s<p>", t.Mode, tname, t.g.Name))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		b.WriteString(fmt.Sprintf("<td>%s</td>", htmlEscape(A.Name)))
	}
	b.WriteString("</tr>\n")
	for state := 0; state < t.StateCount(); state++ {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>\n", state))
		for _, A := range symvec {
			b.WriteString("<td>")
			b.WriteString(td(state, A))
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func htmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
