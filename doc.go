/*
Package lrtab is a small LR parser-table toolbox.

It constructs LR(0) and SLR(1) parser tables from context-free grammars and
runs a table-driven shift-reduce parser against them. Package structure is
as follows:

■ lr: Package lr implements grammars, the canonical collection of LR(0) item
sets (CFSM), FIRST/FOLLOW analysis and the construction of ACTION and GOTO tables.

■ lr/slr: Package slr implements a deterministic shift-reduce driver for the
tables of package lr.

■ lr/scanner: Package scanner defines the token interface the driver reads
from, together with a couple of tokenizers. Sub-packages lexmach and mlex
derive lexers for the terminals of a grammar with lexmachine and maleeni.

■ cmd/lrtab: Command lrtab prints, exports and exercises the tables of a
set of demo grammars.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrtab
