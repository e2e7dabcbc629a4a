package iteratable

// Set is an insertion-ordered set of comparable values.
// The zero value is not usable, create sets with NewSet.
type Set struct {
	index  map[interface{}]int // position of an element in items
	items  []interface{}
	cursor int // iteration position, 1-based; 0 = before first
}

// NewSet creates an empty set with capacity for n elements.
func NewSet(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{
		index: make(map[interface{}]int, n),
		items: make([]interface{}, 0, n),
	}
}

// Size returns the number of elements in s.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty is true for a nil or empty set.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Contains checks for membership of x.
func (s *Set) Contains(x interface{}) bool {
	if s == nil {
		return false
	}
	_, found := s.index[x]
	return found
}

// Add adds elements to s. Elements already present are ignored.
// Returns s for chaining.
func (s *Set) Add(xs ...interface{}) *Set {
	for _, x := range xs {
		if _, found := s.index[x]; found {
			continue
		}
		s.index[x] = len(s.items)
		s.items = append(s.items, x)
	}
	return s
}

// Remove deletes x from s, if present. Removing elements during an
// iteration will not skip any of the remaining elements.
func (s *Set) Remove(x interface{}) *Set {
	at, found := s.index[x]
	if !found {
		return s
	}
	copy(s.items[at:], s.items[at+1:])
	s.items = s.items[:len(s.items)-1]
	delete(s.index, x)
	for i := at; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}
	if s.cursor > at {
		s.cursor--
	}
	return s
}

// Union adds all elements of other to s.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	return s.Add(other.items...)
}

// Difference returns a new set with all elements of s which are not in other.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(s.Size())
	if s == nil {
		return d
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			d.Add(x)
		}
	}
	return d
}

// Copy returns a shallow copy of s.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	if s != nil {
		c.Add(s.items...)
	}
	return c
}

// Equals is true if s and other contain the same elements, regardless of
// insertion order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	if s == nil {
		return true
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// Values returns the elements of s in insertion order.
// The slice is a copy and may be modified by the caller.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	return append([]interface{}(nil), s.items...)
}

// Each calls f for every element in insertion order.
func (s *Set) Each(f func(interface{})) {
	if s == nil {
		return
	}
	for _, x := range s.items {
		f(x)
	}
}

// --- Iteration -------------------------------------------------------------

// IterateOnce prepares s for a single iteration with Next and Item.
func (s *Set) IterateOnce() {
	s.cursor = 0
}

// Next moves to the next element. It returns false when all elements,
// including the ones added during the iteration, have been visited.
func (s *Set) Next() bool {
	if s == nil || s.cursor >= len(s.items) {
		return false
	}
	s.cursor++
	return true
}

// Item returns the current element of an iteration.
func (s *Set) Item() interface{} {
	if s == nil || s.cursor == 0 || s.cursor > len(s.items) {
		return nil
	}
	return s.items[s.cursor-1]
}
