package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var cliTracer tracing.Trace

// tracer traces to the Go logger.
func tracer() tracing.Trace {
	if cliTracer == nil {
		cliTracer = gologadapter.New()
	}
	return cliTracer
}

var rootFlags = struct {
	config  *string
	grammar *string
	mode    *string
	lexer   *string
	trace   *string
	outdir  *string
}{}

// conf is the configuration in effect, set up before any command runs.
var conf Config

var rootCmd = &cobra.Command{
	Use:   "lrtab",
	Short: "Construct LR(0) and SLR(1) parser tables and parse with them",
	Long: `lrtab constructs the canonical collection of LR(0) item sets for a
grammar, derives ACTION and GOTO tables for LR(0) and SLR(1) parsing,
reports conflicts and runs a shift-reduce parser on input.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	rootFlags.config = pf.StringP("config", "c", "", "TOML configuration file")
	rootFlags.grammar = pf.StringP("grammar", "g", "", "demo grammar [g1|g2|eps|expr]")
	rootFlags.mode = pf.StringP("mode", "m", "", "table mode [lr0|slr1]")
	rootFlags.lexer = pf.StringP("lexer", "l", "", "tokenizer for input [fields|go|lexmachine|maleeni]")
	rootFlags.trace = pf.StringP("trace", "t", "", "trace level [Debug|Info|Error]")
	rootFlags.outdir = pf.StringP("outdir", "o", "", "output directory for exports")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// setup merges configuration file and flags and prepares display and tracing.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if conf, err = LoadConfig(*rootFlags.config); err != nil {
		return err
	}
	conf = conf.Override(Config{
		Grammar: *rootFlags.grammar,
		Mode:    *rootFlags.mode,
		Lexer:   *rootFlags.lexer,
		Trace:   *rootFlags.trace,
		OutDir:  *rootFlags.outdir,
	})
	if err = conf.Validate(); err != nil {
		return err
	}
	initDisplay()
	setTraceLevel(conf.Trace)
	tracer().Debugf("configuration is %+v", conf)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	tracer().SetTraceLevel(level)
	for _, key := range []string{"lrtab.lr", "lrtab.slr", "lrtab.scanner"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}
