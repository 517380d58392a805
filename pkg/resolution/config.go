package resolution

import "strings"

// LookupConfig selects which sources and traversal rules a lookup uses.
// The flags combine independently.
type LookupConfig uint

const (
	// LookupDecls considers names declared directly in a scope.
	LookupDecls LookupConfig = 1 << iota
	// LookupImportAndUse considers names introduced by use/import clauses.
	LookupImportAndUse
	// LookupParents continues the search into parent scopes.
	LookupParents
	// LookupToplevel halts ascent once a module-level scope has been
	// searched, even when LookupParents is set.
	LookupToplevel
	// LookupInnermost stops at the first scope level producing a match.
	LookupInnermost
)

func (c LookupConfig) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c&LookupDecls != 0 {
		parts = append(parts, "decls")
	}
	if c&LookupImportAndUse != 0 {
		parts = append(parts, "use-import")
	}
	if c&LookupParents != 0 {
		parts = append(parts, "parents")
	}
	if c&LookupToplevel != 0 {
		parts = append(parts, "toplevel")
	}
	if c&LookupInnermost != 0 {
		parts = append(parts, "innermost")
	}
	return strings.Join(parts, "|")
}
