package lr

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/npillmayer/lrtab/lr/iteratable"
)

// Item is an LR(0) item, i.e. a rule with a dot position. Items are value
// types; two items are equal iff rule and dot are equal.
//
//    A ➞ a • B c
//
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item [A ➞ • …] for rule r, together with the
// first symbol of the RHS (nil for epsilon-rules).
func StartItem(r *Rule) (Item, *Symbol) {
	if r == nil {
		tracer().Errorf("cannot create start item for nil rule")
		return Item{}, nil
	}
	i := Item{rule: r}
	return i, i.PeekSymbol()
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position of an item.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the item is complete.
func (i Item) PeekSymbol() *Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance moves the dot over the next symbol. Complete items are returned unchanged.
func (i Item) Advance() Item {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// IsComplete is true if the dot is behind the RHS.
func (i Item) IsComplete() bool {
	return i.rule != nil && i.dot >= len(i.rule.rhs)
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	if i.rule == nil {
		return nil
	}
	return i.rule.rhs[:i.dot]
}

func (i Item) String() string {
	if i.rule == nil {
		return "[<nil>]"
	}
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" ➞")
	for n, A := range i.rule.rhs {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.dot >= len(i.rule.rhs) {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

// --- Item sets -------------------------------------------------------------

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(8)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// itemKey is the hashable fingerprint of an item.
type itemKey struct {
	Rule int
	Dot  int
}

// fingerprint returns the items of a set in a canonical order, independent
// of insertion order.
func fingerprint(S *iteratable.Set) []itemKey {
	keys := make([]itemKey, 0, S.Size())
	S.Each(func(x interface{}) {
		i := asItem(x)
		keys = append(keys, itemKey{Rule: i.rule.Serial, Dot: i.dot})
	})
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].Rule == keys[b].Rule {
			return keys[a].Dot < keys[b].Dot
		}
		return keys[a].Rule < keys[b].Rule
	})
	return keys
}

// Items returns the items of an item set in insertion order.
func Items(S *iteratable.Set) []Item {
	items := make([]Item, 0, S.Size())
	S.Each(func(x interface{}) {
		items = append(items, asItem(x))
	})
	return items
}

// Dump is a debugging helper for item sets.
func Dump(S *iteratable.Set) {
	S.Each(func(x interface{}) {
		tracer().Debugf("    %s", asItem(x))
	})
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	S.Each(func(x interface{}) {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(asItem(x).String())
	})
	b.WriteString(" }")
	return b.String()
}

func forGraphviz(S *iteratable.Set) string {
	var b bytes.Buffer
	S.Each(func(x interface{}) {
		i := asItem(x)
		b.WriteString(fmt.Sprintf("%s\\l", escapeDot(i.String())))
	})
	return b.String()
}

func escapeDot(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '"', '{', '}', '|', '<', '>', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
