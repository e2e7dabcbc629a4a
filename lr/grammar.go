package lr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrtab"
)

// === Rules =================================================================

// Rule is a type for rules of a grammar. Rules cannot be shared between grammars.
// A rule's identity is its Serial, i.e. its position within the grammar.
type Rule struct {
	Serial int     // order number of this rule within a grammar
	LHS    *Symbol // symbol of left hand side
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. The slice is a copy.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the length of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon-rules, i.e. rules with an empty RHS.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" ➞")
	if len(r.rhs) == 0 {
		b.WriteString(" ε")
	}
	for _, A := range r.rhs {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	return b.String()
}

// === Grammars ==============================================================

// Grammar is a type for a context-free grammar. Rule 0 is the augmented start
// rule S' ➞ S. Grammars are immutable once created, either
// with a GrammarBuilder or with NewGrammar.
type Grammar struct {
	Name    string
	symbols *SymbolTable
	rules   []*Rule
	lhs     map[int][]*Rule // rules by LHS symbol value
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:    name,
		symbols: newSymbolTable(),
		rules:   make([]*Rule, 0, 16),
		lhs:     make(map[int][]*Rule),
	}
}

// Production is an in-memory representation of a grammar rule, referencing
// symbols by name.
type Production struct {
	LHS string
	RHS []string
}

// P is a shortcut to create a Production.
func P(lhs string, rhs ...string) Production {
	return Production{LHS: lhs, RHS: rhs}
}

// NewGrammar creates a grammar from a list of productions. Production 0 has to
// be the augmented start rule S' ➞ S. Every symbol name which is not the LHS
// of a production has to be contained in terminals. Terminals get token types
// identical to their symbol values.
//
// Example:
//
//    g, err := lr.NewGrammar("G", []string{"a", "b"}, []lr.Production{
//        lr.P("S'", "S"),
//        lr.P("S", "a", "S"),
//        lr.P("S", "b"),
//    })
//
func NewGrammar(name string, terminals []string, prods []Production) (*Grammar, error) {
	g := newGrammar(name)
	if len(prods) == 0 {
		return nil, named(grammarErrorf(ErrNoStartRule, "no productions"), name)
	}
	isTerm := make(map[string]bool, len(terminals))
	for _, t := range terminals {
		if t == EpsilonName {
			return nil, named(grammarErrorf(ErrDuplicateSymbol, "%q is reserved", t), name)
		}
		isTerm[t] = true
	}
	isLHS := make(map[string]bool, len(prods))
	for _, p := range prods {
		if isTerm[p.LHS] {
			return nil, named(grammarErrorf(ErrNotNonTerminal, "terminal %q used as LHS", p.LHS), name)
		}
		isLHS[p.LHS] = true
	}
	for _, p := range prods {
		lhs, err := g.symbols.resolveOrDefineNonTerminal(p.LHS)
		if err != nil {
			return nil, named(err, name)
		}
		rhs := make([]*Symbol, 0, len(p.RHS))
		for _, s := range p.RHS {
			var A *Symbol
			switch {
			case isLHS[s]:
				A, err = g.symbols.resolveOrDefineNonTerminal(s)
			case isTerm[s]:
				A = g.declareTerminal(s)
			default:
				err = grammarErrorf(ErrUndefinedSymbol, "%q in rule for %s", s, p.LHS)
			}
			if err != nil {
				return nil, named(err, name)
			}
			rhs = append(rhs, A)
		}
		g.addRule(lhs, rhs)
	}
	for _, t := range terminals { // terminals not used in any rule
		g.declareTerminal(t)
	}
	if err := g.check(); err != nil {
		return nil, named(err, name)
	}
	return g, nil
}

// declareTerminal defines a terminal with a token type equal to its symbol value.
func (g *Grammar) declareTerminal(name string) *Symbol {
	if A := g.symbols.Resolve(name); A != nil {
		return A
	}
	A := &Symbol{Name: name, kind: TerminalKind}
	A.tokval = lrtab.TokType(g.symbols.Size())
	return g.symbols.insert(A)
}

func (g *Grammar) addRule(lhs *Symbol, rhs []*Symbol) *Rule {
	r := &Rule{Serial: len(g.rules), LHS: lhs, rhs: rhs}
	g.rules = append(g.rules, r)
	g.lhs[lhs.Value] = append(g.lhs[lhs.Value], r)
	return r
}

// check validates a grammar after all rules have been added.
func (g *Grammar) check() error {
	if len(g.rules) == 0 {
		return grammarErrorf(ErrNoStartRule, "no rules")
	}
	start := g.rules[0]
	if len(start.rhs) != 1 || !start.rhs[0].IsNonTerminal() {
		return grammarErrorf(ErrNoStartRule, "rule 0 must be of form S' ➞ S, is %v", start)
	}
	for _, r := range g.rules[1:] {
		if r.LHS == start.LHS {
			return grammarErrorf(ErrNoStartRule, "start symbol %s is LHS of rule %d", start.LHS, r.Serial)
		}
		for _, A := range r.rhs {
			if A == start.LHS {
				return grammarErrorf(ErrNoStartRule, "start symbol %s used in rule %d", start.LHS, r.Serial)
			}
		}
	}
	for _, A := range g.symbols.NonTerminals() {
		if len(g.lhs[A.Value]) == 0 {
			return grammarErrorf(ErrUndefinedSymbol, "no rule for non-terminal %s", A)
		}
	}
	return nil
}

// Size returns the number of rules in the grammar.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule gets a grammar rule by serial number.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// EachRule calls f for every rule, in order of serial numbers.
func (g *Grammar) EachRule(f func(r *Rule)) {
	for _, r := range g.rules {
		f(r)
	}
}

// FindNonTermRules returns all rules with LHS A, in order of serial numbers.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Rule {
	return g.lhs[A.Value]
}

// Symbols returns the grammar's symbol table.
func (g *Grammar) Symbols() *SymbolTable {
	return g.symbols
}

// SymbolByName resolves a symbol of the grammar. Returns nil if not found.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols.Resolve(name)
}

// Terminal returns the terminal for a token type, or nil.
func (g *Grammar) Terminal(tt lrtab.TokType) *Symbol {
	return g.symbols.ForToken(tt)
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *Symbol {
	return g.symbols.Symbol(EOFValue)
}

// Epsilon returns the empty marker.
func (g *Grammar) Epsilon() *Symbol {
	return g.symbols.Symbol(EpsilonValue)
}

// Augmented returns the LHS of rule 0, S'.
func (g *Grammar) Augmented() *Symbol {
	return g.rules[0].LHS
}

// Start returns the start symbol, i.e. the RHS of rule 0.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].rhs[0]
}

// EachSymbol calls f for every terminal and non-terminal, in order of definition.
func (g *Grammar) EachSymbol(f func(A *Symbol)) {
	g.symbols.EachSymbol(f)
}

// EachNonTerminal calls f for every non-terminal, in order of definition.
func (g *Grammar) EachNonTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols.NonTerminals() {
		f(A)
	}
}

// EachTerminal calls f for every terminal, end-of-input last.
func (g *Grammar) EachTerminal(f func(A *Symbol)) {
	for _, A := range g.symbols.Terminals() {
		f(A)
	}
}

// Dump is a debugging helper, tracing all rules of the grammar at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar %s[%d rules]", g.Name, len(g.rules))
}

// === Grammar Builder =======================================================

// GrammarBuilder is a fluent interface to construct grammars.
// The first LHS symbol is the start symbol S; the builder prepends the
// augmented start rule S' ➞ S.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()  // S  ➞  A a
//    b.LHS("A").T("b", 2).End()         // A  ➞  b
//    b.LHS("A").Epsilon()               // A  ➞  ε
//    g, err := b.Grammar()
//
// Errors are collected and reported by Grammar().
type GrammarBuilder struct {
	name  string
	rules []*builderRule
	err   error
	g     *Grammar
}

type builderRule struct {
	lhs string
	rhs []builderSym
}

type builderSym struct {
	name     string
	terminal bool
	tokval   lrtab.TokType
}

// RuleBuilder constructs a single rule. Create one with GrammarBuilder.LHS().
type RuleBuilder struct {
	gb   *GrammarBuilder
	rule *builderRule
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	return &RuleBuilder{gb: gb, rule: &builderRule{lhs: s}}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, builderSym{name: s})
	return rb
}

// T appends a terminal to the builder, given its name and token type.
func (rb *RuleBuilder) T(s string, tokval int) *RuleBuilder {
	rb.rule.rhs = append(rb.rule.rhs, builderSym{name: s, terminal: true, tokval: lrtab.TokType(tokval)})
	return rb
}

// End ends a rule.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, rb.rule)
	rb.gb.g = nil
}

// Epsilon sets the RHS of a rule to ε and ends the rule.
func (rb *RuleBuilder) Epsilon() {
	rb.rule.rhs = nil
	rb.End()
}

// Grammar returns the grammar constructed so far, or an error if the grammar
// is malformed.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.g != nil {
		return gb.g, nil
	}
	g, err := gb.build()
	if err != nil {
		return nil, named(err, gb.name)
	}
	gb.g = g
	return g, nil
}

func (gb *GrammarBuilder) build() (*Grammar, error) {
	g := newGrammar(gb.name)
	if len(gb.rules) == 0 {
		return nil, grammarErrorf(ErrNoStartRule, "no rules")
	}
	start := gb.rules[0].lhs
	augmented := start + "'"
	for g.symbols.Resolve(augmented) != nil || gb.mentions(augmented) {
		augmented += "'"
	}
	S0, _ := g.symbols.resolveOrDefineNonTerminal(augmented)
	S, err := g.symbols.resolveOrDefineNonTerminal(start)
	if err != nil {
		return nil, err
	}
	g.addRule(S0, []*Symbol{S})
	for _, br := range gb.rules {
		lhs, err := g.symbols.resolveOrDefineNonTerminal(br.lhs)
		if err != nil {
			return nil, err
		}
		rhs := make([]*Symbol, 0, len(br.rhs))
		for _, bs := range br.rhs {
			var A *Symbol
			if bs.terminal {
				A, err = g.symbols.resolveOrDefineTerminal(bs.name, bs.tokval)
			} else {
				A, err = g.symbols.resolveOrDefineNonTerminal(bs.name)
			}
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, A)
		}
		g.addRule(lhs, rhs)
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	tracer().Debugf("grammar %s has %d rules and %d symbols", g.Name, g.Size(), g.symbols.Size())
	return g, nil
}

func (gb *GrammarBuilder) mentions(name string) bool {
	for _, br := range gb.rules {
		if br.lhs == name {
			return true
		}
		for _, bs := range br.rhs {
			if bs.name == name {
				return true
			}
		}
	}
	return false
}
