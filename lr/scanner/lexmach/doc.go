/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of lrtab.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

There are two ways to set up an adapter. ForGrammar derives a lexer from the
terminals of a grammar: every terminal matches its name literally, unless a
regular expression is given for it.

	LM, err := lexmach.ForGrammar(g, map[string]string{
		"id":  `[a-z]+`,
		"num": `[0-9]+`,
	})

Clients who need more liberty use NewLMAdapter, which receives a callback to
initialize lexmachine with the necessary regular expressions:

	init := func(lexer *lexmachine.Lexer) {
		// lexmach.Skip      is a pre-defined action which ignores the scanned match
		// lexmach.MakeToken is a pre-defined action which wraps a scanned match into a
		//                   token
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

Both will return an error if compiling the DFA failed.
A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
