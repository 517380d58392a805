package uast

import "fmt"

// ID identifies a declaration site in the uAST. It is stable across edits
// to unrelated code: the symbol path names the enclosing module/function
// chain and the postorder ordinal positions the node within that symbol.
// The zero ID is reserved for builtins and the root scope.
type ID struct {
	// SymbolPath is the dotted path of the enclosing symbol, e.g. "M.f".
	SymbolPath string
	// PostOrder is the traversal ordinal of this node within its symbol.
	// Symbol-defining nodes (modules, functions) use -1; the zero ID keeps
	// 0 so that ID{} remains the builtin sentinel.
	PostOrder int
}

// IsEmpty reports whether this is the builtin/root sentinel ID.
func (id ID) IsEmpty() bool {
	return id == ID{}
}

// Less provides a total order over IDs.
func (id ID) Less(other ID) bool {
	if id.SymbolPath != other.SymbolPath {
		return id.SymbolPath < other.SymbolPath
	}
	return id.PostOrder < other.PostOrder
}

// String implements fmt.Stringer
func (id ID) String() string {
	if id.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("%s@%d", id.SymbolPath, id.PostOrder)
}
