/*
Package slr provides a table-driven shift-reduce parser. Clients have to use
the tools of package lr to prepare the necessary parse tables. The parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

This parser is intended for small to moderate grammars, e.g. for configuration
input, small domain-specific languages or for studying LR parsing. It is *not*
intended for full-fledged programming languages.

The parser is deterministic: it runs on LR(0) as well as on SLR(1) tables, but
rejects input as soon as it lands on a table entry holding more than one
action. It never backtracks.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // input may be rejected for ambiguities

Finally parse some input:

	p := slr.NewParser(lrgen.SLR1Table(), slr.OnReduce(func(r *lr.Rule, span lrtab.Span) {
		…
	}))
	accepted, err := p.Parse(scanner.GoTokenizer("input", strings.NewReader("+a")))

If the input is rejected, err is a *SyntaxError, telling the position, state
and lookahead where parsing stopped.
___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr
