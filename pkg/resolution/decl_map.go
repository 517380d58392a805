package resolution

import "github.com/quill-lang/quill/pkg/uast"

// DeclMap maps a declared name to the IDs declared under it in one
// scope. Storing IDs rather than node references keeps a scope reusable
// when (say) a function body changes without its signature changing.
// Insertion order is irrelevant to lookup but preserved for diagnostics.
type DeclMap struct {
	entries map[uast.Name]*OwnedIDs
	order   []uast.Name
}

func NewDeclMap() *DeclMap {
	return &DeclMap{entries: make(map[uast.Name]*OwnedIDs)}
}

// Add records a declaration of name at id, appending when the name
// already has entries (overloads, repeated declarations).
func (m *DeclMap) Add(name uast.Name, id uast.ID) {
	if existing, ok := m.entries[name]; ok {
		existing.Append(id)
		return
	}
	m.entries[name] = NewOwnedIDs(id)
	m.order = append(m.order, name)
}

// Get returns the entry for name.
func (m *DeclMap) Get(name uast.Name) (*OwnedIDs, bool) {
	ids, ok := m.entries[name]
	return ids, ok
}

// NumDeclared returns the number of distinct declared names.
func (m *DeclMap) NumDeclared() int {
	return len(m.entries)
}

// DeclaredNames returns the names in insertion order.
func (m *DeclMap) DeclaredNames() []uast.Name {
	return m.order
}

// Equals compares structurally.
func (m *DeclMap) Equals(other *DeclMap) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.entries) != len(other.entries) {
		return false
	}
	for name, ids := range m.entries {
		otherIDs, ok := other.entries[name]
		if !ok || !ids.Equals(otherIDs) {
			return false
		}
	}
	return true
}
