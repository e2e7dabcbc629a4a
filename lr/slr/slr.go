package slr

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtab.slr'.
func tracer() tracing.Trace {
	return tracing.Select("lrtab.slr")
}

// Parser is a shift-reduce parser type. Create and initialize one with slr.NewParser(...).
// A parser may be used for more than one parse, but not concurrently.
type Parser struct {
	table    *lr.ParseTable
	stack    []stackitem // parser stack
	pos      int         // input position, counted in tokens
	tracing  bool
	trace    []Step
	onReduce func(*lr.Rule, lrtab.Span)
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	state int        // ID of a CFSM state
	sym   *lr.Symbol // grammar symbol (terminal or non-terminal), nil for the bottom
	span  lrtab.Span // input span over which this symbol reaches
}

// Option configures a parser.
type Option func(p *Parser)

// WithTrace sets or clears recording of parse steps, see Parser.Trace.
func WithTrace(b bool) Option {
	return func(p *Parser) {
		p.tracing = b
	}
}

// OnReduce sets a callback which is called for every reduce step with the
// rule and the input span the rule covers.
func OnReduce(f func(rule *lr.Rule, span lrtab.Span)) Option {
	return func(p *Parser) {
		p.onReduce = f
	}
}

// NewParser creates a parser for a parse table. Tables are not modified by
// the parser and may be shared.
func NewParser(table *lr.ParseTable, opts ...Option) *Parser {
	parser := &Parser{
		table: table,
		stack: make([]stackitem, 0, 64),
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Step is a step of a parse.
type Step struct {
	State     int        // state on top of the stack
	Pos       int        // input position
	Lookahead *lr.Symbol // nil for unknown tokens
	Action    lr.Action  // action taken, or the error action
	Goto      int        // state pushed after a reduce, -1 otherwise
}

func (s Step) String() string {
	act := s.Action.String()
	if s.Action.IsError() {
		act = "error"
	}
	if s.Action.Kind == lr.ReduceAction && s.Goto >= 0 {
		act = fmt.Sprintf("%s, goto %d", act, s.Goto)
	}
	return fmt.Sprintf("state %d @%d, lookahead %v: %s", s.State, s.Pos, s.Lookahead, act)
}

// Trace returns the steps of the last parse. Steps are recorded only if
// the parser has been created with option WithTrace(true).
func (p *Parser) Trace() []Step {
	return p.trace
}

// Parse starts a new parse, given a scanner tokenizing the input. The
// scanner has to signal the end of input with a token of type lr.EOFType.
//
// The parser returns true if the input string has been accepted. A rejected
// input results in false and a *SyntaxError.
func (p *Parser) Parse(scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p == nil || p.table == nil {
		tracer().Errorf("parser not initialized")
		return false, errors.New("parser has no parse table")
	}
	if scan == nil {
		return false, errors.New("parser has no input")
	}
	g := p.table.Grammar()
	p.stack = append(p.stack[:0], stackitem{state: 0}) // push S0
	p.pos = 0
	p.trace = nil // slices handed out by Trace stay valid
	token := scan.NextToken()
	la := g.Terminal(token.TokType())
	for {
		tos := p.stack[len(p.stack)-1]
		tracer().Debugf("state %d, got token %q/%d from scanner", tos.state, token.Lexeme(), token.TokType())
		if la == nil {
			p.record(tos.state, la, lr.Action{}, -1)
			return false, p.reject(tos.state, token, UnknownToken)
		}
		action := p.table.Action(tos.state, la)
		tracer().Debugf("action(%d,%v) = %v", tos.state, la, action)
		switch action.Kind {
		case lr.NoAction:
			p.record(tos.state, la, action, -1)
			return false, p.reject(tos.state, token, NoAction)
		case lr.ConflictAction:
			p.record(tos.state, la, action, -1)
			return false, p.reject(tos.state, token, ConflictingEntry)
		case lr.AcceptAction:
			p.record(tos.state, la, action, -1)
			tracer().Infof("input accepted")
			return true, nil
		case lr.ShiftAction:
			p.record(tos.state, la, action, -1)
			if la.IsEOF() {
				return false, p.reject(tos.state, token, InputOverrun)
			}
			tracer().Debugf("shifting, next state = %d", action.Target)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{state: action.Target, sym: la, span: token.Span()})
			p.pos++
			token = scan.NextToken()
			la = g.Terminal(token.TokType())
		case lr.ReduceAction:
			rule := g.Rule(action.Target)
			next, ok := p.reduce(rule, token)
			p.record(tos.state, la, action, next)
			if !ok {
				return false, p.reject(p.stack[len(p.stack)-1].state, token, NoGoto)
			}
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
//
// and are replaced by a state for LHS. For ε-rules nothing is popped.
// reduce returns the new state and false if GOTO has no entry.
func (p *Parser) reduce(rule *lr.Rule, la lrtab.Token) (int, bool) {
	tracer().Infof("reduce %v", rule)
	n := rule.Len()
	if n > len(p.stack)-1 {
		tracer().Errorf("stack underflow reducing %v", rule)
		return -1, false
	}
	var handlespan lrtab.Span
	for i, sym := range rule.RHS() {
		item := p.stack[len(p.stack)-n+i]
		if item.sym != sym {
			tracer().Errorf("expected %v on stack, got %v", sym, item.sym)
		}
		handlespan = handlespan.Extend(item.span)
	}
	p.stack = p.stack[:len(p.stack)-n]
	if n == 0 { // epsilon is just before the lookahead
		pos := la.Span().From()
		handlespan = lrtab.Span{pos, pos}
	}
	if p.onReduce != nil {
		p.onReduce(rule, handlespan)
	}
	tos := p.stack[len(p.stack)-1]
	next, ok := p.table.Goto(tos.state, rule.LHS)
	if !ok {
		return -1, false
	}
	tracer().Debugf("reduced to next state = %d", next)
	p.stack = append(p.stack, // push a non-terminal state onto stack
		stackitem{state: next, sym: rule.LHS, span: handlespan})
	return next, true
}

func (p *Parser) record(state int, la *lr.Symbol, action lr.Action, next int) {
	if p.tracing {
		p.trace = append(p.trace, Step{State: state, Pos: p.pos, Lookahead: la, Action: action, Goto: next})
	}
}

func (p *Parser) reject(state int, la lrtab.Token, reason Reason) error {
	err := &SyntaxError{Pos: p.pos, State: state, Lookahead: la, Reason: reason}
	tracer().Infof("%v", err)
	return err
}
