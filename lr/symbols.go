package lr

import (
	"fmt"
	"text/scanner"

	"github.com/npillmayer/lrtab"
)

// Symbols of reserved meaning. They are present in every symbol table.
const (
	EOFValue     = 0 // symbol value of the end-of-input terminal
	EpsilonValue = 1 // symbol value of the empty marker in FIRST-sets

	EOFName     = "#eof"
	EpsilonName = "#ε"
)

// EOFType is the token type of the end-of-input terminal. It equals text/scanner.EOF.
const EOFType = lrtab.TokType(scanner.EOF)

// SymbolKind tells terminals from non-terminals.
type SymbolKind int8

// Kinds of grammar symbols.
const (
	TerminalKind SymbolKind = iota + 1
	NonTerminalKind
	EpsilonKind
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonTerminalKind:
		return "non-terminal"
	case EpsilonKind:
		return "epsilon"
	}
	return "<unknown kind>"
}

// Symbol is a grammar symbol. Its identity is its Value, which is the index
// of the symbol within the symbol table of its grammar.
// Symbols are immutable once created.
type Symbol struct {
	Name   string
	Value  int
	kind   SymbolKind
	tokval lrtab.TokType
}

// IsTerminal is true for terminal symbols, including end-of-input.
func (A *Symbol) IsTerminal() bool {
	return A.kind == TerminalKind
}

// IsNonTerminal is true for non-terminal symbols.
func (A *Symbol) IsNonTerminal() bool {
	return A.kind == NonTerminalKind
}

// IsEOF is true for the end-of-input terminal.
func (A *Symbol) IsEOF() bool {
	return A.Value == EOFValue
}

// Kind returns the symbol's kind.
func (A *Symbol) Kind() SymbolKind {
	return A.kind
}

// TokenType returns the token type a scanner will produce for a terminal.
// For non-terminals it returns -1 - A.Value, which never collides with
// the token type of a terminal declared with a non-negative token type.
func (A *Symbol) TokenType() lrtab.TokType {
	if A.kind == TerminalKind {
		return A.tokval
	}
	return lrtab.TokType(-1 - A.Value)
}

func (A *Symbol) String() string {
	return A.Name
}

// === Symbol Table ==========================================================

// SymbolTable assigns integer identities to grammar symbols (map-like semantics
// for names, slice-like semantics for identities).
type SymbolTable struct {
	symbols []*Symbol
	byName  map[string]*Symbol
	byToken map[lrtab.TokType]*Symbol
}

// newSymbolTable creates a symbol table pre-filled with the reserved symbols.
func newSymbolTable() *SymbolTable {
	symtab := &SymbolTable{
		symbols: make([]*Symbol, 0, 16),
		byName:  make(map[string]*Symbol),
		byToken: make(map[lrtab.TokType]*Symbol),
	}
	symtab.insert(&Symbol{Name: EOFName, kind: TerminalKind, tokval: EOFType})
	symtab.insert(&Symbol{Name: EpsilonName, kind: EpsilonKind, tokval: EOFType - 1})
	return symtab
}

func (t *SymbolTable) insert(A *Symbol) *Symbol {
	A.Value = len(t.symbols)
	t.symbols = append(t.symbols, A)
	t.byName[A.Name] = A
	if A.kind == TerminalKind {
		t.byToken[A.tokval] = A
	}
	return A
}

// Resolve checks for a symbol in the symbol table.
// Returns a symbol or nil.
func (t *SymbolTable) Resolve(name string) *Symbol {
	return t.byName[name]
}

// Symbol returns the symbol with identity value, or nil.
func (t *SymbolTable) Symbol(value int) *Symbol {
	if value < 0 || value >= len(t.symbols) {
		return nil
	}
	return t.symbols[value]
}

// ForToken returns the terminal for a token type, or nil.
func (t *SymbolTable) ForToken(tt lrtab.TokType) *Symbol {
	return t.byToken[tt]
}

// Size returns the number of symbols, including the reserved ones.
func (t *SymbolTable) Size() int {
	return len(t.symbols)
}

// resolveOrDefineTerminal finds a terminal in the table, and inserts a new one if
// not found. It is an error if a symbol of this name exists as a non-terminal
// or with a different token type, or if the token type is already used.
func (t *SymbolTable) resolveOrDefineTerminal(name string, tokval lrtab.TokType) (*Symbol, error) {
	if A := t.byName[name]; A != nil {
		if A.kind != TerminalKind {
			return nil, grammarErrorf(ErrDuplicateSymbol, "%q is already defined as %s", name, A.kind)
		}
		if A.tokval != tokval {
			return nil, grammarErrorf(ErrDuplicateSymbol, "terminal %q re-declared with token type %d (was %d)",
				name, tokval, A.tokval)
		}
		return A, nil
	}
	if other := t.byToken[tokval]; other != nil {
		return nil, grammarErrorf(ErrDuplicateSymbol, "terminals %q and %q share token type %d",
			other.Name, name, tokval)
	}
	if name == "" {
		return nil, grammarErrorf(ErrUndefinedSymbol, "terminal without a name")
	}
	return t.insert(&Symbol{Name: name, kind: TerminalKind, tokval: tokval}), nil
}

// resolveOrDefineNonTerminal finds a non-terminal in the table, and inserts a
// new one if not found.
func (t *SymbolTable) resolveOrDefineNonTerminal(name string) (*Symbol, error) {
	if A := t.byName[name]; A != nil {
		if A.kind != NonTerminalKind {
			return nil, grammarErrorf(ErrNotNonTerminal, "%q is a %s", name, A.kind)
		}
		return A, nil
	}
	if name == "" {
		return nil, grammarErrorf(ErrUndefinedSymbol, "non-terminal without a name")
	}
	return t.insert(&Symbol{Name: name, kind: NonTerminalKind}), nil
}

// EachSymbol calls f for every terminal and non-terminal in order of
// definition. The empty marker is skipped.
func (t *SymbolTable) EachSymbol(f func(A *Symbol)) {
	for _, A := range t.symbols {
		if A.kind != EpsilonKind {
			f(A)
		}
	}
}

// Terminals returns all terminals in order of definition, with end-of-input
// as the last entry.
func (t *SymbolTable) Terminals() []*Symbol {
	terms := make([]*Symbol, 0, len(t.symbols))
	for _, A := range t.symbols[EpsilonValue+1:] {
		if A.kind == TerminalKind {
			terms = append(terms, A)
		}
	}
	return append(terms, t.symbols[EOFValue])
}

// NonTerminals returns all non-terminals in order of definition.
func (t *SymbolTable) NonTerminals() []*Symbol {
	nonterms := make([]*Symbol, 0, len(t.symbols))
	for _, A := range t.symbols {
		if A.kind == NonTerminalKind {
			nonterms = append(nonterms, A)
		}
	}
	return nonterms
}

func (t *SymbolTable) String() string {
	return fmt.Sprintf("symbol table[%d]", len(t.symbols))
}
