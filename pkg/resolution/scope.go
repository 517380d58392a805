package resolution

import (
	"fmt"
	"log"

	"github.com/quill-lang/quill/pkg/uast"
)

// Scope is one node of the scope tree: anywhere a symbol could be
// declared gets one. It maps names declared by the construct's direct
// children to their IDs. The parent reference is non-owning; the
// Context owning the scope table must outlive every Scope and every
// BorrowedIDs view into one. Scopes are immutable once built, except
// that the root scope accepts builtin registrations during process
// initialization.
type Scope struct {
	parent               *Scope
	tag                  uast.Tag
	containsUseImport    bool
	containsFunctionDecl bool
	id                   uast.ID
	name                 uast.Name
	declared             *DeclMap
}

// NewRootScope constructs the root scope, which has no parent and an
// empty ID. Only the root may hold builtin entries.
func NewRootScope() *Scope {
	return &Scope{declared: NewDeclMap()}
}

// BuildScope constructs the scope for one scope-creating construct,
// scanning only its direct children: nested scopes declare into their
// own Scope, not this one.
func BuildScope(node uast.Node, parent *Scope) *Scope {
	s := &Scope{
		parent:   parent,
		tag:      node.Tag(),
		id:       node.ID(),
		declared: NewDeclMap(),
	}
	if name, ok := node.DeclName(); ok {
		s.name = name
	}
	for _, child := range node.Children() {
		tag := child.Tag()
		if tag.IsUseImport() {
			s.containsUseImport = true
		}
		if tag == uast.TagFunction {
			s.containsFunctionDecl = true
		}
		if tag.IsDecl() {
			if name, ok := child.DeclName(); ok {
				s.declared.Add(name, child.ID())
			}
		}
	}
	return s
}

// AddBuiltin registers a builtin name with an empty ID. It must be
// called only on the root scope, before ordinary lookups begin.
func (s *Scope) AddBuiltin(name uast.Name) {
	if !s.IsRootScope() {
		log.Panicf("fatal (builtin %q added to non-root scope %v)", name, s.id)
	}
	s.declared.Add(name, uast.ID{})
}

// ParentScope returns the parent scope, nil for the root.
func (s *Scope) ParentScope() *Scope { return s.parent }

// Tag returns the construct kind this scope represents.
func (s *Scope) Tag() uast.Tag { return s.tag }

// ID returns the construct's stable identifier; empty for the root.
func (s *Scope) ID() uast.ID { return s.id }

// Name returns the declared name of the construct, if any.
func (s *Scope) Name() uast.Name { return s.name }

// ContainsUseImport reports whether any direct child is a use/import.
func (s *Scope) ContainsUseImport() bool { return s.containsUseImport }

// ContainsFunctionDecls reports whether any direct child is a function.
func (s *Scope) ContainsFunctionDecls() bool { return s.containsFunctionDecl }

// NumDeclared returns the number of distinct names declared here.
func (s *Scope) NumDeclared() int { return s.declared.NumDeclared() }

// DeclaredNames returns the declared names in insertion order.
func (s *Scope) DeclaredNames() []uast.Name { return s.declared.DeclaredNames() }

// IsRootScope reports whether this is the root scope.
func (s *Scope) IsRootScope() bool { return s.parent == nil && s.id.IsEmpty() }

// IsModuleScope reports whether ascent past this scope crosses the
// top-level boundary.
func (s *Scope) IsModuleScope() bool { return s.tag == uast.TagModule }

// LookupInScope appends a borrowed view for name's entry to result and
// reports whether anything was appended.
func (s *Scope) LookupInScope(name uast.Name, result *[]BorrowedIDs) bool {
	if ids, ok := s.declared.Get(name); ok {
		*result = append(*result, ids.Borrow())
		return true
	}
	return false
}

// Equals compares structurally: parent identity, tag, flags, id, and the
// full declaration table. Memoized rebuilds use it to detect that
// nothing changed and keep the cached scope.
func (s *Scope) Equals(other *Scope) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.parent == other.parent &&
		s.tag == other.tag &&
		s.containsUseImport == other.containsUseImport &&
		s.containsFunctionDecl == other.containsFunctionDecl &&
		s.id == other.id &&
		s.declared.Equals(other.declared)
}

// String implements fmt.Stringer
func (s *Scope) String() string {
	if s == nil {
		return "(nil)"
	}
	if s.IsRootScope() {
		return "(root)"
	}
	return fmt.Sprintf("(%s %s %v)", s.tag, s.name, s.id)
}
