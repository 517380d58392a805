package uast

// Node is the read surface of a uAST construct. Scope construction and
// visibility resolution consume this interface only; they never retain
// anything but the stable IDs it hands out.
type Node interface {
	// ID returns the construct's stable identifier.
	ID() ID

	// Tag classifies the construct.
	Tag() Tag

	// DeclName returns the declared name for declaration constructs.
	DeclName() (Name, bool)

	// Children enumerates the construct's direct children, in source order.
	Children() []Node

	// Clause returns the use/import payload for TagUse/TagImport nodes,
	// nil for all other constructs.
	Clause() *UseClause
}

// BringKind says which part of a use/import target a clause brings into
// visibility.
type BringKind uint8

const (
	// BringSymbolOnly brings only the named symbol itself.
	BringSymbolOnly BringKind = iota
	// BringAllContents brings everything the target declares.
	BringAllContents
	// BringOnlyContents brings only the listed contents.
	BringOnlyContents
	// BringContentsExcept brings everything except the listed contents.
	BringContentsExcept
)

func (k BringKind) String() string {
	switch k {
	case BringSymbolOnly:
		return "symbol-only"
	case BringAllContents:
		return "all-contents"
	case BringOnlyContents:
		return "only-contents"
	case BringContentsExcept:
		return "contents-except"
	default:
		return "unknown"
	}
}

// Rename maps a name as declared in the target to the name it goes by at
// the use/import site. An un-renamed entry has Here == Declared.
type Rename struct {
	Declared string
	Here     string
}

// UseClause is the payload of a use or import statement.
type UseClause struct {
	// TargetPath is the dotted path naming the used/imported symbol.
	TargetPath string
	// Bring says which contents of the target become visible.
	Bring BringKind
	// Renames lists the affected names, in source order. Empty for
	// BringAllContents; exactly one entry for BringSymbolOnly.
	Renames []Rename
	// Private marks a clause not re-exported to importers of this scope.
	Private bool
}
