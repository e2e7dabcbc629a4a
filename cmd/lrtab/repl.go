package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lrtab/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively",
		Long: `repl starts an interactive session. Every line is parsed with the
current tables, unless it is a command:

  :grammar <name>   switch to another demo grammar
  :mode lr0|slr1    switch table mode
  :lexer <name>     switch tokenizer
  :table            print the current table
  :quit             end the session`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	})
}

func runREPL(cmd *cobra.Command, args []string) error {
	s, err := NewSession(conf.Grammar, conf.Lexer)
	if err != nil {
		return err
	}
	mode, _ := conf.TableMode()
	repl, err := readline.New("lrtab> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{session: s, mode: mode, out: repl.Stdout()}
	pterm.Info.Println("Welcome to lrtab, grammar is " + s.demo.help)
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL(repl)
	return nil
}

// Intp is our interpreter object.
type Intp struct {
	session *Session
	mode    lr.TableMode
	out     io.Writer
}

// REPL reads lines until end of input or :quit.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

// Eval executes a command or parses a line of input.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		result, err := intp.session.Parse(intp.mode, line)
		if result == nil {
			return false, err
		}
		result.Print(true, result.Accepted)
		return false, nil
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":table":
		printTable(intp.session.Table(intp.mode))
	case ":mode":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :mode lr0|slr1")
		}
		mode, err := Config{Mode: args[1]}.TableMode()
		if err != nil {
			return false, err
		}
		intp.mode = mode
		pterm.Info.Println("table mode is " + mode.String())
	case ":grammar":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :grammar %s", strings.Join(demoNames(), "|"))
		}
		s, err := NewSession(args[1], intp.session.lexer)
		if err != nil {
			return false, err
		}
		intp.session = s
		pterm.Info.Println("grammar is " + s.demo.help)
	case ":lexer":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :lexer fields|go|lexmachine|maleeni")
		}
		if err := checkLexer(args[1]); err != nil {
			return false, err
		}
		intp.session.lexer = args[1]
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}
