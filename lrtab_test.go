package lrtab

import "testing"

func TestSpanExtend(t *testing.T) {
	var null Span
	if !null.IsNull() {
		t.Errorf("zero span should be null")
	}
	s := Span{3, 5}
	if x := null.Extend(s); x != s {
		t.Errorf("extending null span by %v should yield %v, is %v", s, s, x)
	}
	if x := s.Extend(null); x != s {
		t.Errorf("extending %v by null span should yield %v, is %v", s, s, x)
	}
	if x := s.Extend(Span{1, 4}); x != (Span{1, 5}) {
		t.Errorf("expected (1…5), is %v", x)
	}
	if x := s.Extend(Span{7, 9}); x.From() != 3 || x.To() != 9 || x.Len() != 6 {
		t.Errorf("expected (3…9), is %v", x)
	}
	if s.String() != "(3…5)" {
		t.Errorf("unexpected string representation %s", s)
	}
}
