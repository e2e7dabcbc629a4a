/*
Command lrtab constructs LR(0) and SLR(1) parser tables for a set of demo
grammars, prints them, exports them to HTML and GraphViz, and parses input
with them, either from the command line or interactively.

	lrtab tables --grammar expr
	lrtab parse --grammar g1 a a b
	lrtab parse --grammar expr --lexer go "a + b * c"
	lrtab dot --grammar eps
	lrtab repl

Defaults may be set in a TOML configuration file, see flag --config.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

func main() {
	err := Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
