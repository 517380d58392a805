package resolution

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dghubble/trie"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/quill-lang/quill/pkg/uast"
)

// Context owns the scope tree and the caches derived from it for one
// compilation unit. It is the longer-lived owner the non-owning parent
// pointers and borrowed ID views rely on: every Scope, PoiScope, and
// BorrowedIDs handed out is valid only while the Context is.
//
// Construction (BuildScopes, AddBuiltin) is not thread-safe with
// respect to itself, but lazy derivations (ResolveVisibility,
// MakePoiScope) tolerate concurrent first access and build each value
// at most once. Lookups are pure reads and may run concurrently.
type Context struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	root   *Scope
	scopes map[uast.ID]*Scope
	nodes  map[uast.ID]uast.Node
	paths  *trie.PathTrie
	vis    map[uast.ID]*ResolvedVisibilityScope
	pois   map[poiKey]*PoiScope

	visGroup singleflight.Group

	lookupsBegun atomic.Bool
}

// New constructs an empty Context with a root scope and no builtins.
func New(logger zerolog.Logger) *Context {
	return &Context{
		logger: logger,
		root:   NewRootScope(),
		scopes: make(map[uast.ID]*Scope),
		nodes:  make(map[uast.ID]uast.Node),
		paths: trie.NewPathTrieWithConfig(&trie.PathTrieConfig{
			Segmenter: pathSegmenter,
		}),
		vis:  make(map[uast.ID]*ResolvedVisibilityScope),
		pois: make(map[poiKey]*PoiScope),
	}
}

// pathSegmenter segments symbol paths by dot separators. For example,
// "a.b.c" -> ("a", 1), (".b", 3), (".c", -1) in successive calls. It
// does not allocate any heap memory.
func pathSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}

// RootScope returns the root scope holding builtin entries.
func (c *Context) RootScope() *Scope {
	return c.root
}

// AddBuiltin registers a builtin name on the root scope. Builtins must
// all be registered during initialization, before the first lookup.
func (c *Context) AddBuiltin(name uast.Name) {
	if c.lookupsBegun.Load() {
		log.Panicf("fatal (builtin %q registered after lookups began)", name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.root.AddBuiltin(name)
}

// BuildScopes walks the tree rooted at node once and registers a Scope
// for every scope-creating construct, parented into the root scope.
// Rebuilding after an edit reuses the cached Scope for any construct
// whose new scope is structurally unchanged, so dependents keyed on
// scope identity stay valid; a changed construct replaces its cached
// scope and drops its cached visibility resolution.
func (c *Context) BuildScopes(node uast.Node) (*Scope, error) {
	if !node.Tag().IsScopeCreating() {
		return nil, fmt.Errorf("cannot build scopes from %v node %v", node.Tag(), node.ID())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildWalk(node, c.root), nil
}

func (c *Context) buildWalk(node uast.Node, parent *Scope) *Scope {
	built := BuildScope(node, parent)
	kept := built
	if cached, ok := c.scopes[node.ID()]; ok {
		if cached.Equals(built) {
			kept = cached
		} else {
			delete(c.vis, node.ID())
			c.logger.Debug().Stringer("id", node.ID()).Msg("scope changed, cache dropped")
		}
	}
	c.scopes[node.ID()] = kept
	c.nodes[node.ID()] = node
	if node.Tag().IsSymbolDefining() {
		c.paths.Put(node.ID().SymbolPath, kept)
	}
	c.checkVisibilityStaleLocked(node, kept)
	c.walkChildren(node, kept)
	return kept
}

// checkVisibilityStaleLocked drops a cached visibility resolution whose
// clauses no longer match the rebuilt node. Scope structural equality
// does not cover clause payloads (swapping `use A` for `use B` leaves
// the scope equal), so the clause list has to be compared separately.
func (c *Context) checkVisibilityStaleLocked(node uast.Node, scope *Scope) {
	cached, ok := c.vis[node.ID()]
	if !ok {
		return
	}
	fresh, err := c.buildVisibilityLocked(scope)
	if err != nil || !cached.Equals(fresh) {
		delete(c.vis, node.ID())
		c.logger.Debug().Stringer("id", node.ID()).Msg("visibility clauses changed, cache dropped")
	}
}

func (c *Context) walkChildren(node uast.Node, enclosing *Scope) {
	for _, child := range node.Children() {
		if child.Tag().IsScopeCreating() {
			c.buildWalk(child, enclosing)
		} else {
			c.walkChildren(child, enclosing)
		}
	}
}

// PutScope registers an externally built scope. Registering a
// structurally different scope for an already-registered ID returns
// DuplicateScopeError; an equal re-registration keeps the cached one.
func (c *Context) PutScope(scope *Scope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.scopes[scope.ID()]; ok {
		if !cached.Equals(scope) {
			return NewDuplicateScopeError(scope.ID())
		}
		return nil
	}
	c.scopes[scope.ID()] = scope
	if scope.Tag().IsSymbolDefining() {
		c.paths.Put(scope.ID().SymbolPath, scope)
	}
	return nil
}

// ScopeForID returns the scope registered for the given construct ID.
func (c *Context) ScopeForID(id uast.ID) (*Scope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.scopes[id]
	return s, ok
}

// ScopeForPath returns the scope of the innermost symbol whose path is
// a prefix of the given dotted path.
func (c *Context) ScopeForPath(path string) (*Scope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scopeForPathLocked(path)
}

func (c *Context) scopeForPathLocked(path string) (*Scope, bool) {
	var last any
	c.paths.WalkPath(path, func(key string, value any) error {
		last = value
		return nil
	})
	if last == nil {
		return nil, false
	}
	return last.(*Scope), true
}

// ResolveVisibility returns the ordered use/import clauses of the given
// scope, building and caching them on first use. Scopes without
// use/import clauses resolve to nil. Concurrent first access builds the
// value at most once.
func (c *Context) ResolveVisibility(scope *Scope) (*ResolvedVisibilityScope, error) {
	if scope == nil || !scope.ContainsUseImport() {
		return nil, nil
	}
	c.mu.RLock()
	cached, ok := c.vis[scope.ID()]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}
	v, err, _ := c.visGroup.Do(scope.ID().String(), func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if cached, ok := c.vis[scope.ID()]; ok {
			return cached, nil
		}
		rvs, err := c.buildVisibilityLocked(scope)
		if err != nil {
			return nil, err
		}
		c.vis[scope.ID()] = rvs
		return rvs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ResolvedVisibilityScope), nil
}

// buildVisibilityLocked scans the scope's use/import children exactly
// once, in source order.
func (c *Context) buildVisibilityLocked(scope *Scope) (*ResolvedVisibilityScope, error) {
	node, ok := c.nodes[scope.ID()]
	if !ok {
		return nil, fmt.Errorf("scope %v was not built by this context", scope.ID())
	}
	rvs := &ResolvedVisibilityScope{Scope: scope}
	for _, child := range node.Children() {
		if !child.Tag().IsUseImport() {
			continue
		}
		clause := child.Clause()
		if clause == nil {
			return nil, fmt.Errorf("use/import node %v has no clause payload", child.ID())
		}
		rvs.Clauses = append(rvs.Clauses, c.normalizeClauseLocked(clause))
	}
	c.logger.Debug().
		Stringer("scope", scope.ID()).
		Int("clauses", len(rvs.Clauses)).
		Msg("resolved visibility")
	return rvs, nil
}

// normalizeClauseLocked converts one syntactic clause to its normalized
// VisibilitySymbols form, resolving the target path to a stable ID.
// A target that does not resolve gets a placeholder ID carrying the
// path; its nonexistence surfaces downstream when the target is used.
func (c *Context) normalizeClauseLocked(clause *uast.UseClause) *VisibilitySymbols {
	symbolID, declaredName, resolved := c.resolveTargetLocked(clause.TargetPath)

	var kind VisibilityKind
	switch clause.Bring {
	case uast.BringSymbolOnly:
		kind = VisibilitySymbolOnly
	case uast.BringAllContents:
		kind = VisibilityAllContents
	case uast.BringOnlyContents:
		kind = VisibilityContentsOnly
	case uast.BringContentsExcept:
		kind = VisibilityContentsExcept
	}

	var names []NamePair
	for _, r := range clause.Renames {
		names = append(names, NamePair{
			Declared: uast.InternName(r.Declared),
			Here:     uast.InternName(r.Here),
		})
	}
	if kind == VisibilitySymbolOnly && len(names) == 0 {
		// no explicit rename: the symbol goes by its declared name
		names = []NamePair{{Declared: declaredName, Here: declaredName}}
	}
	vs := NewVisibilitySymbols(symbolID, kind, clause.Private, names)
	vs.TargetResolved = resolved
	return vs
}

// resolveTargetLocked maps a dotted target path to the ID of the symbol
// it names, along with the symbol's declared name (its last segment).
// The third result reports whether the target was actually found; a
// placeholder ID for an unknown target still carries the path so that
// downstream resolution can name what is missing.
func (c *Context) resolveTargetLocked(path string) (uast.ID, uast.Name, bool) {
	last := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		last = path[i+1:]
	}
	declared := uast.InternName(last)

	if scope, ok := c.scopeForPathLocked(path); ok {
		if scope.ID().SymbolPath == path {
			// the path names a module/function symbol directly
			return scope.ID(), declared, true
		}
		// the path names a declaration inside the innermost symbol
		if ids, ok := scope.declared.Get(declared); ok {
			return ids.FirstID(), declared, true
		}
	}
	return uast.ID{SymbolPath: path, PostOrder: -1}, declared, false
}

// MakePoiScope returns the PoiScope for the given (call-site scope,
// enclosing instantiation) pair, reusing an existing value-equal one so
// structurally identical call sites share resolution work.
func (c *Context) MakePoiScope(inScope *Scope, inFnPoi *PoiScope) *PoiScope {
	key := poiKey{inScope: inScope, inFnPoi: inFnPoi}
	c.mu.RLock()
	cached, ok := c.pois[key]
	c.mu.RUnlock()
	if ok {
		return cached
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.pois[key]; ok {
		return cached
	}
	poi := &PoiScope{InScope: inScope, InFnPoi: inFnPoi}
	c.pois[key] = poi
	return poi
}
