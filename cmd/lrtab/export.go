package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/lrtab/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:     "dot",
		Short:   "Export the CFSM of a grammar in GraphViz format",
		Example: `  lrtab dot --grammar expr --outdir /tmp && dot -Tsvg -O /tmp/expr-cfsm.dot`,
		Args:    cobra.NoArgs,
		RunE:    runDot,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:     "html",
		Short:   "Export ACTION and GOTO tables of a grammar in HTML format",
		Example: `  lrtab html --grammar eps --mode lr0`,
		Args:    cobra.NoArgs,
		RunE:    runHTML,
	})
}

func runDot(cmd *cobra.Command, args []string) error {
	s, err := NewSession(conf.Grammar, conf.Lexer)
	if err != nil {
		return err
	}
	filename := filepath.Join(conf.OutDir, s.Name+"-cfsm.dot")
	if err = s.Gen.CFSM().CFSM2GraphViz(filename); err != nil {
		return err
	}
	pterm.Success.Println("CFSM written to " + filename)
	return nil
}

func runHTML(cmd *cobra.Command, args []string) error {
	s, err := NewSession(conf.Grammar, conf.Lexer)
	if err != nil {
		return err
	}
	mode, _ := conf.TableMode()
	t := s.Table(mode)
	prefix := fmt.Sprintf("%s-%s", s.Name, strings.ToLower(conf.Mode))
	exports := []struct {
		suffix string
		export func(*lr.ParseTable, *os.File) error
	}{
		{"action", func(t *lr.ParseTable, f *os.File) error { return lr.ActionTableAsHTML(t, f) }},
		{"goto", func(t *lr.ParseTable, f *os.File) error { return lr.GotoTableAsHTML(t, f) }},
	}
	for _, e := range exports {
		filename := filepath.Join(conf.OutDir, prefix+"-"+e.suffix+".html")
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("cannot export table: %w", err)
		}
		err = e.export(t, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		pterm.Success.Println("table written to " + filename)
	}
	return nil
}
