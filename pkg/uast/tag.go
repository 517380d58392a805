package uast

// Tag classifies the construct a uAST node represents.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagModule
	TagFunction
	TagBlock
	TagLoop
	TagCobegin
	TagConditional
	TagUse
	TagImport
	TagVariable
	TagFormal
	TagTypeDecl
	TagCall
	TagIdentifier
	TagDot
)

func (t Tag) String() string {
	switch t {
	case TagModule:
		return "module"
	case TagFunction:
		return "function"
	case TagBlock:
		return "block"
	case TagLoop:
		return "loop"
	case TagCobegin:
		return "cobegin"
	case TagConditional:
		return "conditional"
	case TagUse:
		return "use"
	case TagImport:
		return "import"
	case TagVariable:
		return "variable"
	case TagFormal:
		return "formal"
	case TagTypeDecl:
		return "type"
	case TagCall:
		return "call"
	case TagIdentifier:
		return "identifier"
	case TagDot:
		return "dot"
	default:
		return "unknown"
	}
}

// IsScopeCreating reports whether a construct with this tag introduces a
// new lexical scope.
func (t Tag) IsScopeCreating() bool {
	switch t {
	case TagModule, TagFunction, TagBlock, TagLoop, TagCobegin, TagConditional:
		return true
	default:
		return false
	}
}

// IsSymbolDefining reports whether the construct starts a new symbol path
// segment (modules and functions do; blocks and loops do not).
func (t Tag) IsSymbolDefining() bool {
	return t == TagModule || t == TagFunction
}

// IsDecl reports whether a construct with this tag declares a name in its
// enclosing scope.
func (t Tag) IsDecl() bool {
	switch t {
	case TagModule, TagFunction, TagVariable, TagFormal, TagTypeDecl:
		return true
	default:
		return false
	}
}

// IsUseImport reports whether the tag is a use or import statement.
func (t Tag) IsUseImport() bool {
	return t == TagUse || t == TagImport
}
