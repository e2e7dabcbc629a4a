package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrtab/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tablesFlags = struct {
	states *bool
	first  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Print the parser tables of a grammar",
		Example: `  lrtab tables --grammar expr --mode lr0 --states`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.states = cmd.Flags().Bool("states", false, "print the item sets of the CFSM")
	tablesFlags.first = cmd.Flags().Bool("sets", false, "print FIRST and FOLLOW sets")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	s, err := NewSession(conf.Grammar, conf.Lexer)
	if err != nil {
		return err
	}
	mode, _ := conf.TableMode()
	pterm.Info.Println(s.demo.help)
	if *tablesFlags.first {
		printSets(s)
	}
	if *tablesFlags.states {
		printStates(s)
	}
	printTable(s.Table(mode))
	return nil
}

func printSets(s *Session) {
	ga := lr.Analysis(s.G)
	data := pterm.TableData{{"symbol", "FIRST", "FOLLOW"}}
	s.G.EachNonTerminal(func(A *lr.Symbol) {
		data = append(data, []string{A.Name, symlist(ga.FirstSymbols(A)), symlist(ga.FollowSymbols(A))})
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printStates(s *Session) {
	for _, state := range s.Gen.CFSM().States() {
		items := state.Items()
		lines := make([]string, len(items))
		for i, item := range items {
			lines[i] = item.String()
		}
		pterm.Println(fmt.Sprintf("%v:\n    %s", state, strings.Join(lines, "\n    ")))
	}
}

func printTable(t *lr.ParseTable) {
	pterm.Println(t.String())
	for _, c := range t.Conflicts() {
		pterm.Warning.Println(c.String())
	}
	if t.HasConflicts() {
		pterm.Error.Println(t.Verdict())
	} else {
		pterm.Success.Println(t.Verdict())
	}
}

func symlist(syms []*lr.Symbol) string {
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return "{" + strings.Join(names, " ") + "}"
}
