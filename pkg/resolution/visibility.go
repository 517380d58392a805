package resolution

import (
	"log"

	"github.com/quill-lang/quill/pkg/uast"
)

// VisibilityKind says which part of a use/import target a clause makes
// visible at the scope holding the clause.
type VisibilityKind uint8

const (
	// VisibilitySymbolOnly brings the named symbol itself only.
	VisibilitySymbolOnly VisibilityKind = iota
	// VisibilityAllContents brings everything the target declares.
	VisibilityAllContents
	// VisibilityContentsOnly brings only the contents named in the pairs.
	VisibilityContentsOnly
	// VisibilityContentsExcept brings everything except the named
	// contents; no renaming applies.
	VisibilityContentsExcept
)

func (k VisibilityKind) String() string {
	switch k {
	case VisibilitySymbolOnly:
		return "symbol-only"
	case VisibilityAllContents:
		return "all-contents"
	case VisibilityContentsOnly:
		return "contents-only"
	case VisibilityContentsExcept:
		return "contents-except"
	default:
		return "unknown"
	}
}

// NamePair maps a name as declared in the target scope to the name it
// goes by at the clause's scope.
type NamePair struct {
	Declared uast.Name
	Here     uast.Name
}

// VisibilitySymbols is the normalized form of one use/import clause.
type VisibilitySymbols struct {
	// SymbolID identifies the used/imported symbol, e.g. a module.
	SymbolID uast.ID
	// Kind says which contents become visible.
	Kind VisibilityKind
	// IsPrivate marks a clause not re-exported to importers.
	IsPrivate bool
	// Names lists the (declared, here) pairs, in source order.
	Names []NamePair
	// TargetResolved records whether SymbolID names a symbol that was
	// actually found during normalization. A placeholder target carries
	// only its path and contributes nothing to lookup; its nonexistence
	// surfaces downstream.
	TargetResolved bool
}

// NewVisibilitySymbols constructs a normalized clause model. Kind
// invariants (symbol-only has exactly one pair, all-contents has no
// pairs) are enforced: a violation is a front-end logic bug.
func NewVisibilitySymbols(symbolID uast.ID, kind VisibilityKind, isPrivate bool, names []NamePair) *VisibilitySymbols {
	switch kind {
	case VisibilitySymbolOnly:
		if len(names) != 1 {
			log.Panicf("fatal (symbol-only clause with %d names)", len(names))
		}
	case VisibilityAllContents:
		if len(names) != 0 {
			log.Panicf("fatal (all-contents clause with %d names)", len(names))
		}
	}
	return &VisibilitySymbols{
		SymbolID:       symbolID,
		Kind:           kind,
		IsPrivate:      isPrivate,
		Names:          names,
		TargetResolved: true,
	}
}

// declaredFor translates a name as used at the clause's scope back to
// the name declared in the target, honoring renames. The second result
// is false when the clause does not make name visible at all.
func (v *VisibilitySymbols) declaredFor(name uast.Name) (uast.Name, bool) {
	switch v.Kind {
	case VisibilitySymbolOnly, VisibilityContentsOnly:
		for _, pair := range v.Names {
			if pair.Here == name {
				return pair.Declared, true
			}
		}
		return uast.Name{}, false
	case VisibilityAllContents:
		return name, true
	case VisibilityContentsExcept:
		for _, pair := range v.Names {
			if pair.Declared == name {
				return uast.Name{}, false
			}
		}
		return name, true
	}
	return uast.Name{}, false
}

// Equals compares structurally. IsPrivate participates: a private and a
// public clause over the same symbol are distinct for memoization.
func (v *VisibilitySymbols) Equals(other *VisibilitySymbols) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.SymbolID != other.SymbolID || v.Kind != other.Kind ||
		v.IsPrivate != other.IsPrivate || v.TargetResolved != other.TargetResolved {
		return false
	}
	if len(v.Names) != len(other.Names) {
		return false
	}
	for i := range v.Names {
		if v.Names[i] != other.Names[i] {
			return false
		}
	}
	return true
}

// ResolvedVisibilityScope pairs a scope with its use/import clauses in
// source order. It exists only for scopes whose ContainsUseImport flag
// is set, built lazily and cached by the Context.
type ResolvedVisibilityScope struct {
	Scope   *Scope
	Clauses []*VisibilitySymbols
}

// Equals compares the owning scope by identity and clauses structurally.
func (r *ResolvedVisibilityScope) Equals(other *ResolvedVisibilityScope) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Scope != other.Scope || len(r.Clauses) != len(other.Clauses) {
		return false
	}
	for i := range r.Clauses {
		if !r.Clauses[i].Equals(other.Clauses[i]) {
			return false
		}
	}
	return true
}
