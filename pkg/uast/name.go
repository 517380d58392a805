package uast

import "unique"

// Name is an interned identifier. Two Names constructed from the same
// string are equal and share storage, so Name values are cheap map keys
// and comparisons never touch the underlying bytes.
type Name struct {
	handle unique.Handle[string]
}

// InternName interns the given string and returns its Name.
func InternName(s string) Name {
	return Name{handle: unique.Make(s)}
}

// IsEmpty reports whether this is the zero Name.
func (n Name) IsEmpty() bool {
	return n == Name{}
}

// Str returns the interned string. The zero Name returns "".
func (n Name) Str() string {
	if n.IsEmpty() {
		return ""
	}
	return n.handle.Value()
}

// String implements fmt.Stringer
func (n Name) String() string {
	return n.Str()
}
