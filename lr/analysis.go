package lr

import (
	"golang.org/x/tools/container/intsets"
)

// LRAnalysis is an object for the static analysis of a grammar: it computes
// FIRST and FOLLOW sets and the set of epsilon-derivable non-terminals.
// Sets contain symbol values. FIRST-sets of nullable symbols contain
// EpsilonValue.
type LRAnalysis struct {
	g      *Grammar
	first  []*intsets.Sparse // indexed by symbol value
	follow []*intsets.Sparse // indexed by symbol value, nil for terminals
}

// Analysis creates an analysis object for a grammar and computes
// FIRST and FOLLOW sets.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{g: g}
	ga.first = ga.computeFirst()
	ga.follow = ga.computeFollow()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// --- FIRST -----------------------------------------------------------------

// Terminals have FIRST(t) = {t}. For every rule A ➞ X1 … Xk, FIRST(Xi) \ {ε}
// is added to FIRST(A) as long as X1 … Xi-1 are nullable; if all of them are,
// ε is added. Iterates until no set changes.
func (ga *LRAnalysis) computeFirst() []*intsets.Sparse {
	symtab := ga.g.symbols
	first := make([]*intsets.Sparse, symtab.Size())
	for v := range first {
		first[v] = &intsets.Sparse{}
		if A := symtab.Symbol(v); A.kind != NonTerminalKind {
			first[v].Insert(v) // terminals and ε
		}
	}
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, r := range ga.g.rules {
			F := first[r.LHS.Value]
			if firstOfSequence(first, r.rhs, F) {
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets stable after %d passes", passes)
	return first
}

// firstOfSequence adds FIRST(X1 … Xk) to F, including ε if the whole sequence
// is nullable. Returns true if F has changed.
func firstOfSequence(first []*intsets.Sparse, seq []*Symbol, F *intsets.Sparse) bool {
	changed := false
	for _, X := range seq {
		FX := first[X.Value]
		nullable := FX.Has(EpsilonValue)
		for _, v := range FX.AppendTo(nil) {
			if v != EpsilonValue && F.Insert(v) {
				changed = true
			}
		}
		if !nullable {
			return changed
		}
	}
	if F.Insert(EpsilonValue) {
		changed = true
	}
	return changed
}

// First returns FIRST(A). The set is a copy.
func (ga *LRAnalysis) First(A *Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	if A == nil || A.Value >= len(ga.first) {
		return F
	}
	F.Copy(ga.first[A.Value])
	return F
}

// FirstOfSequence returns FIRST(X1 … Xk). An empty sequence yields {ε}.
func (ga *LRAnalysis) FirstOfSequence(seq []*Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	firstOfSequence(ga.first, seq, F)
	return F
}

// FirstSymbols returns FIRST(A) as a list of symbols, ordered by value.
func (ga *LRAnalysis) FirstSymbols(A *Symbol) []*Symbol {
	return ga.symbolsOf(ga.First(A))
}

// DerivesEpsilon is true if A is nullable, i.e. A ⇒* ε.
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	if A == nil || A.Value >= len(ga.first) {
		return false
	}
	return A.kind != TerminalKind && ga.first[A.Value].Has(EpsilonValue)
}

// --- FOLLOW ----------------------------------------------------------------

// FOLLOW(S') contains end-of-input. For every rule A ➞ α B β,
// FIRST(β) \ {ε} is added to FOLLOW(B) and, if β is nullable, FOLLOW(A) is added
// to FOLLOW(B). Iterates until no set changes.
func (ga *LRAnalysis) computeFollow() []*intsets.Sparse {
	symtab := ga.g.symbols
	follow := make([]*intsets.Sparse, symtab.Size())
	for _, N := range symtab.NonTerminals() {
		follow[N.Value] = &intsets.Sparse{}
	}
	follow[ga.g.Augmented().Value].Insert(EOFValue)
	follow[ga.g.Start().Value].Insert(EOFValue)
	passes := 0
	for changed := true; changed; passes++ {
		changed = false
		for _, r := range ga.g.rules {
			for k, B := range r.rhs {
				if !B.IsNonTerminal() {
					continue
				}
				FB := follow[B.Value]
				beta := &intsets.Sparse{}
				firstOfSequence(ga.first, r.rhs[k+1:], beta)
				for _, v := range beta.AppendTo(nil) {
					if v != EpsilonValue && FB.Insert(v) {
						changed = true
					}
				}
				if beta.Has(EpsilonValue) {
					n := FB.Len() // UnionWith does not reliably report changes
					FB.UnionWith(follow[r.LHS.Value])
					if FB.Len() != n {
						changed = true
					}
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets stable after %d passes", passes)
	return follow
}

// Follow returns FOLLOW(A) for a non-terminal A. The set is a copy and is
// empty for terminals.
func (ga *LRAnalysis) Follow(A *Symbol) *intsets.Sparse {
	F := &intsets.Sparse{}
	if A == nil || A.Value >= len(ga.follow) || ga.follow[A.Value] == nil {
		return F
	}
	F.Copy(ga.follow[A.Value])
	return F
}

// FollowSymbols returns FOLLOW(A) as a list of symbols, ordered by value.
func (ga *LRAnalysis) FollowSymbols(A *Symbol) []*Symbol {
	return ga.symbolsOf(ga.Follow(A))
}

func (ga *LRAnalysis) symbolsOf(S *intsets.Sparse) []*Symbol {
	vals := S.AppendTo(nil)
	syms := make([]*Symbol, 0, len(vals))
	for _, v := range vals {
		syms = append(syms, ga.g.symbols.Symbol(v))
	}
	return syms
}
