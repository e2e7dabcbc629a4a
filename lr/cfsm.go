package lr

import (
	"fmt"
	"io"
	"os"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/lrtab/lr/iteratable"
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// closure computes the closure of a single item.
func (ga *LRAnalysis) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.Closure(S)
}

// Closure computes the closure of an item set: for every item with a
// non-terminal B after the dot, all start items [B ➞ • …] are added until no
// new items appear. S is not modified.
func (ga *LRAnalysis) Closure(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()              // get symbol A after dot
		if A != nil && A.IsNonTerminal() { // A is non-terminal
			R := ga.startItems(A)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

func (ga *LRAnalysis) startItems(A *Symbol) *iteratable.Set {
	R := newItemSet()
	for _, r := range ga.g.FindNonTermRules(A) {
		i, _ := StartItem(r)
		R.Add(i)
	}
	return R
}

// gotoSet returns the kernel items of goto(I, A): for every item in I
//     N ➞ … • A …   advance to   N ➞ … A • …
func (ga *LRAnalysis) gotoSet(I *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := newItemSet()
	I.Each(func(x interface{}) {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	})
	return gotoset
}

// Goto computes goto(I, A), i.e. the closure of the kernel items reached from
// I by moving the dot over A. The result is empty if no item in I expects A.
func (ga *LRAnalysis) Goto(I *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(I, A)
	gclosure := ga.Closure(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(I), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // is this an accepting state?
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

// Items returns the items of a state in order of insertion.
func (s *CFSMState) Items() []Item {
	return Items(s.items)
}

// ItemSet returns a copy of the item set of a state.
func (s *CFSMState) ItemSet() *iteratable.Set {
	return s.items.Copy()
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.Items() {
		if i.rule.Serial == 0 && i.IsComplete() {
			return true
		}
	}
	return false
}

// Create an edge
func edge(from, to *CFSMState, label *Symbol) *cfsmEdge {
	return &cfsmEdge{
		from:  from,
		to:    to,
		label: label,
	}
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram or canonical collection of LR(0) item sets.
// Will be constructed by a TableGenerator.
// No two states of a CFSM contain the same set of items.
type CFSM struct {
	g           *Grammar                // this CFSM is for Grammar g
	states      *treeset.Set            // all the states
	edges       *arraylist.List         // all the edges between states
	transitions map[[2]int]*CFSMState   // (state ID, symbol value) → state
	index       map[string][]*CFSMState // item set hash → states
	S0          *CFSMState              // start state
	cfsmIds     int                     // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:           g,
		states:      treeset.NewWith(stateComparator),
		edges:       arraylist.New(),
		transitions: make(map[[2]int]*CFSMState),
		index:       make(map[string][]*CFSMState),
	}
}

// itemSetHash hashes the content of an item set, independent of the order
// of insertion.
func itemSetHash(iset *iteratable.Set) string {
	h, err := structhash.Hash(fingerprint(iset), 1)
	if err != nil { // cannot happen for slices of plain structs
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

// Add a state to the CFSM. Checks first if state is present.
// Returns the state and true if the state is new.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	h := itemSetHash(iset)
	if s := c.findStateByHash(h, iset); s != nil {
		return s, false
	}
	s := state(c.cfsmIds, iset)
	c.cfsmIds++
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	c.index[h] = append(c.index[h], s)
	return s, true
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	return c.findStateByHash(itemSetHash(iset), iset)
}

func (c *CFSM) findStateByHash(h string, iset *iteratable.Set) *CFSMState {
	for _, s := range c.index[h] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) *cfsmEdge {
	e := edge(s0, s1, sym)
	c.edges.Add(e)
	c.transitions[[2]int{s0.ID, sym.Value}] = s1
	return e
}

// Grammar returns the grammar of the CFSM.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	for _, x := range c.states.Values() {
		states = append(states, x.(*CFSMState))
	}
	return states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.cfsmIds {
		return nil
	}
	return c.states.Values()[id].(*CFSMState)
}

// Transition returns the state reached from s by symbol A, or nil.
func (c *CFSM) Transition(s *CFSMState, A *Symbol) *CFSMState {
	if s == nil || A == nil {
		return nil
	}
	return c.transitions[[2]int{s.ID, A.Value}]
}

// Construct the characteristic finite state machine CFSM for a grammar.
//
// States are processed in order of creation. For every state the symbols
// after a dot are visited in order of symbol definition. This makes state
// numbering a function of the grammar alone.
func (ga *LRAnalysis) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.g
	cfsm := emptyCFSM(G)
	item, sym := StartItem(G.rules[0])
	tracer().Debugf("Start item=%v/%v", item, sym)
	closure0 := ga.closure(item)
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator) // work list
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		for _, A := range symbolsAfterDot(s) {
			tracer().Debugf("checking goto-set for symbol = %v", A)
			gotoset := ga.Goto(s.items, A)
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				S.Add(snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
		tracer().Debugf("-----------------------------------------------------------------")
	}
	tracer().Infof("CFSM for grammar %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// symbolsAfterDot collects the symbols after a dot in any item of a state,
// ordered by symbol value.
func symbolsAfterDot(s *CFSMState) []*Symbol {
	seen := treeset.NewWith(func(a, b interface{}) int {
		return utils.IntComparator(a.(*Symbol).Value, b.(*Symbol).Value)
	})
	s.items.Each(func(x interface{}) {
		if A := asItem(x).PeekSymbol(); A != nil {
			seen.Add(A)
		}
	})
	syms := make([]*Symbol, 0, seen.Size())
	for _, x := range seen.Values() {
		syms = append(syms, x.(*Symbol))
	}
	return syms
}

// --- Export ----------------------------------------------------------------

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format, given a filename.
func (c *CFSM) CFSM2GraphViz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot export CFSM: %w", err)
	}
	defer f.Close()
	return c.WriteDot(f)
}

// WriteDot writes the CFSM in Graphviz Dot format to w.
func (c *CFSM) WriteDot(w io.Writer) error {
	var err error
	write := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	write(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		write("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		write("s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID, escapeDot(edge.label.Name))
	}
	write("}\n")
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}
