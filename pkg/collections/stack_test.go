package collections

import "testing"

func TestStack(t *testing.T) {
	var s Stack[string]

	if !s.IsEmpty() {
		t.Error("new stack should be empty")
	}
	if _, ok := s.Pop(); ok {
		t.Error("pop of empty stack should report false")
	}

	s.Push("a")
	s.Push("b")
	if got := s.Len(); got != 2 {
		t.Errorf("Len: want 2, got %d", got)
	}
	if top, ok := s.Peek(); !ok || top != "b" {
		t.Errorf("Peek: want b, got %q %v", top, ok)
	}
	if x, ok := s.Pop(); !ok || x != "b" {
		t.Errorf("Pop: want b, got %q %v", x, ok)
	}
	if x, ok := s.Pop(); !ok || x != "a" {
		t.Errorf("Pop: want a, got %q %v", x, ok)
	}
	if !s.IsEmpty() {
		t.Error("stack should be empty after popping everything")
	}
}
