package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/lrtab"
	"github.com/npillmayer/lrtab/lr"
	"github.com/npillmayer/lrtab/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	steps *bool
	tree  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse input with the tables of a grammar",
		Example: `  lrtab parse --grammar g1 a a b
  lrtab parse --grammar expr --lexer maleeni "a + b * c"`,
		RunE: runParse,
	}
	parseFlags.steps = cmd.Flags().Bool("steps", true, "print the parse steps")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the derivation tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := NewSession(conf.Grammar, conf.Lexer)
	if err != nil {
		return err
	}
	mode, _ := conf.TableMode()
	input := strings.Join(args, " ")
	if input == "" {
		input = s.demo.example
	}
	result, err := s.Parse(mode, input)
	if err != nil && !errors.Is(err, slr.ErrRejected) {
		return err
	}
	result.Print(*parseFlags.steps, *parseFlags.tree)
	if !result.Accepted {
		return fmt.Errorf("input %q rejected", input)
	}
	return nil
}

// ParseResult collects the outcome of a parse.
type ParseResult struct {
	Input    string
	Accepted bool
	Err      error
	Steps    []slr.Step
	Tree     pterm.LeveledList
}

// Parse runs a parser with the table for mode on input. It returns an error
// if the input could not be tokenized or if the input was rejected.
func (s *Session) Parse(mode lr.TableMode, input string) (*ParseResult, error) {
	scan, err := s.Tokenizer(input)
	if err != nil {
		return nil, err
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	tb := &treeBuilder{}
	p := slr.NewParser(s.Table(mode), slr.WithTrace(true), slr.OnReduce(tb.reduce))
	accept, err := p.Parse(scan)
	result := &ParseResult{Input: input, Accepted: accept, Err: err, Steps: p.Trace()}
	if accept {
		result.Tree = tb.leveledList()
	}
	if err == nil && scanErr != nil {
		tracer().Infof("scanner reported %v", scanErr)
	}
	return result, err
}

// Print shows the result on the terminal.
func (r *ParseResult) Print(steps, tree bool) {
	if steps {
		data := pterm.TableData{{"state", "pos", "lookahead", "action"}}
		for _, step := range r.Steps {
			act := step.Action.String()
			if step.Action.IsError() {
				act = "error"
			} else if step.Goto >= 0 {
				act = fmt.Sprintf("%s, goto %d", act, step.Goto)
			}
			data = append(data, []string{fmt.Sprint(step.State), fmt.Sprint(step.Pos), fmt.Sprint(step.Lookahead), act})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	if tree && len(r.Tree) > 0 {
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(r.Tree)).Render()
	}
	if r.Accepted {
		pterm.Success.Println("accepted")
		return
	}
	pterm.Error.Println(r.Err)
}

// treeBuilder reconstructs the derivation tree from the reduce callbacks
// of a parse. Terminals become leaves carrying the terminal name.
type treeBuilder struct {
	stack []*node
}

type node struct {
	label    string
	children []*node
}

func (tb *treeBuilder) reduce(rule *lr.Rule, span lrtab.Span) {
	rhs := rule.RHS()
	n := &node{label: fmt.Sprintf("%s %v", rule.LHS.Name, span), children: make([]*node, len(rhs))}
	for i := len(rhs) - 1; i >= 0; i-- {
		if rhs[i].IsTerminal() {
			n.children[i] = &node{label: rhs[i].Name}
			continue
		}
		if len(tb.stack) == 0 {
			n.children[i] = &node{label: rhs[i].Name + " ?"}
			continue
		}
		n.children[i] = tb.stack[len(tb.stack)-1]
		tb.stack = tb.stack[:len(tb.stack)-1]
	}
	if len(rhs) == 0 {
		n.children = []*node{{label: "ε"}}
	}
	tb.stack = append(tb.stack, n)
}

func (tb *treeBuilder) leveledList() pterm.LeveledList {
	var ll pterm.LeveledList
	var walk func(n *node, level int)
	walk = func(n *node, level int) {
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: n.label})
		for _, ch := range n.children {
			walk(ch, level+1)
		}
	}
	for _, n := range tb.stack {
		walk(n, 0)
	}
	return ll
}
