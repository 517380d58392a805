package uast

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/pkg/collections"
)

// synthetic is the Node implementation produced by Builder.
type synthetic struct {
	id       ID
	tag      Tag
	name     Name
	children []Node
	clause   *UseClause
}

// ID implements part of the Node interface.
func (n *synthetic) ID() ID { return n.id }

// Tag implements part of the Node interface.
func (n *synthetic) Tag() Tag { return n.tag }

// DeclName implements part of the Node interface.
func (n *synthetic) DeclName() (Name, bool) {
	if !n.tag.IsDecl() || n.name.IsEmpty() {
		return Name{}, false
	}
	return n.name, true
}

// Children implements part of the Node interface.
func (n *synthetic) Children() []Node { return n.children }

// Clause implements part of the Node interface.
func (n *synthetic) Clause() *UseClause { return n.clause }

// Builder constructs uAST trees programmatically. The front end uses it
// when lowering parse trees; tests use it directly. Nodes carry no IDs
// until Build assigns them.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Module(name string, children ...Node) Node {
	return &synthetic{tag: TagModule, name: InternName(name), children: children}
}

func (b *Builder) Function(name string, children ...Node) Node {
	return &synthetic{tag: TagFunction, name: InternName(name), children: children}
}

func (b *Builder) Block(children ...Node) Node {
	return &synthetic{tag: TagBlock, children: children}
}

func (b *Builder) Loop(children ...Node) Node {
	return &synthetic{tag: TagLoop, children: children}
}

func (b *Builder) Cobegin(children ...Node) Node {
	return &synthetic{tag: TagCobegin, children: children}
}

func (b *Builder) Conditional(children ...Node) Node {
	return &synthetic{tag: TagConditional, children: children}
}

func (b *Builder) Variable(name string) Node {
	return &synthetic{tag: TagVariable, name: InternName(name)}
}

func (b *Builder) Formal(name string) Node {
	return &synthetic{tag: TagFormal, name: InternName(name)}
}

func (b *Builder) TypeDecl(name string) Node {
	return &synthetic{tag: TagTypeDecl, name: InternName(name)}
}

func (b *Builder) Call(children ...Node) Node {
	return &synthetic{tag: TagCall, children: children}
}

func (b *Builder) Identifier(name string) Node {
	return &synthetic{tag: TagIdentifier, name: InternName(name)}
}

func (b *Builder) Dot(receiver Node, field string) Node {
	return &synthetic{tag: TagDot, name: InternName(field), children: []Node{receiver}}
}

func (b *Builder) Use(target string, bring BringKind, renames ...Rename) Node {
	return &synthetic{tag: TagUse, clause: &UseClause{
		TargetPath: target,
		Bring:      bring,
		Renames:    renames,
	}}
}

func (b *Builder) Import(target string, bring BringKind, renames ...Rename) Node {
	return &synthetic{tag: TagImport, clause: &UseClause{
		TargetPath: target,
		Bring:      bring,
		Renames:    renames,
	}}
}

func (b *Builder) PrivateUse(target string, bring BringKind, renames ...Rename) Node {
	return &synthetic{tag: TagUse, clause: &UseClause{
		TargetPath: target,
		Bring:      bring,
		Renames:    renames,
		Private:    true,
	}}
}

// Build assigns stable IDs to the tree rooted at root and returns it.
// Symbol-defining nodes are keyed by their dotted path; contained nodes
// get postorder ordinals within the nearest enclosing symbol. The root
// must be a module so that no node ends up outside a symbol path.
func (b *Builder) Build(root Node) Node {
	var path collections.Stack[string]
	var counters collections.Stack[int]
	counters.Push(0)
	number(root.(*synthetic), &path, &counters, map[string]int{})
	return root
}

func number(n *synthetic, path *collections.Stack[string], counters *collections.Stack[int], seen map[string]int) {
	if n.tag.IsSymbolDefining() {
		// repeated symbol names (overloaded functions) get distinct
		// paths so every declaration site keeps a distinct ID
		segment := n.name.Str()
		base := joinPath(append([]string(*path), segment))
		if k := seen[base]; k > 0 {
			segment = fmt.Sprintf("%s#%d", segment, k)
		}
		seen[base]++

		path.Push(segment)
		counters.Push(0)
		for _, child := range n.children {
			number(child.(*synthetic), path, counters, seen)
		}
		counters.Pop()
		n.id = ID{SymbolPath: joinPath(*path), PostOrder: -1}
		path.Pop()
		return
	}
	for _, child := range n.children {
		number(child.(*synthetic), path, counters, seen)
	}
	ord, _ := counters.Pop()
	counters.Push(ord + 1)
	n.id = ID{SymbolPath: joinPath(*path), PostOrder: ord}
}

func joinPath(segments []string) string {
	return strings.Join(segments, ".")
}
