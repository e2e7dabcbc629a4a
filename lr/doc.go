/*
Package lr implements the construction of LR(0) and SLR(1) parser tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->

This results in the following trivial grammar:

   b.Grammar().Dump()

   0: S' ➞ S
   1: S ➞ A a
   2: A ➞ B D
   3: B ➞ b
   4: B ➞ ε
   5: D ➞ d
   6: D ➞ ε

Alternatively, grammars may be created from a list of productions with
NewGrammar, where production 0 has to be the augmented start rule.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable non-terminals.

    ga := lr.Analysis(g)  // analyser for grammar above
    ga.Grammar().EachNonTerminal(func(N *lr.Symbol) {
        fmt.Printf("FIRST(%s) = %v\n", N, ga.FirstSymbols(N))
    })

    // Output:
    FIRST(S') = [a b d]       // symbols in order of their values
    FIRST(S) = [a b d]
    FIRST(A) = [#ε b d]       // #ε = A is nullable
    FIRST(B) = [#ε b]
    FIRST(D) = [#ε d]

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar, i.e. the canonical collection of LR(0) item sets. The CFSM will
then be transformed into parse tables, either for an LR(0) parser or for an
SLR(1) parser. The CFSM will not be thrown away, but is made available to
the client. It can be exported to Graphviz's Dot-format.

Example:

    lrgen := lr.NewTableGenerator(ga)  // ga is a grammar analysis, see above
    lrgen.CreateTables()               // construct LR(0) and SLR(1) tables
    if lrgen.HasConflicts {            // SLR(1) table has conflicts
        for _, c := range lrgen.SLR1Table().Conflicts() { … }
    }

Tables hold an Action for every pair of state and terminal. Conflicting
entries are kept, i.e. no entry is ever overwritten silently.
Package slr implements a parser driven by these tables.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrtab.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrtab.lr")
}
