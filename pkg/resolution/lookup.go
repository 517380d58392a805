package resolution

import "github.com/quill-lang/quill/pkg/uast"

// Lookup answers "what does name denote, visible from scope, under
// config". The result is one borrowed view per scope level that
// produced a match, innermost first; callers apply their own shadowing
// or overload-merging policy across levels. An empty result is not an
// error: the caller decides whether an undefined-symbol diagnostic is
// warranted.
func (c *Context) Lookup(name uast.Name, scope *Scope, config LookupConfig) []BorrowedIDs {
	c.lookupsBegun.Store(true)
	var result []BorrowedIDs
	c.doLookup(name, scope, config, nil, &result)
	c.logger.Trace().
		Stringer("name", name).
		Stringer("scope", scope).
		Stringer("config", config).
		Int("levels", len(result)).
		Msg("lookup")
	return result
}

// LookupInnermost stops at the first scope level producing any match
// and classifies it: exactly one candidate, more than one (so the
// caller can emit an ambiguity diagnostic), or none along the entire
// permitted chain.
func (c *Context) LookupInnermost(name uast.Name, scope *Scope, config LookupConfig) InnermostMatch {
	c.lookupsBegun.Store(true)
	var result []BorrowedIDs
	c.doLookup(name, scope, config|LookupInnermost, nil, &result)
	return classifyInnermost(result)
}

func classifyInnermost(result []BorrowedIDs) InnermostMatch {
	total := 0
	for _, ids := range result {
		total += ids.NumIDs()
	}
	switch total {
	case 0:
		return InnermostMatch{}
	case 1:
		return InnermostMatch{ID: result[0].FirstID(), Found: MatchedOne}
	default:
		return InnermostMatch{ID: result[0].FirstID(), Found: MatchedMany}
	}
}

// LookupInPoi resolves a name inside a generic instantiation: first an
// ordinary lookup along the declaration's lexical chain, then lookups
// from each point-of-instantiation scope outward through the POI chain.
// Scopes already searched in the first phase are skipped, so the result
// models declaration-visible union instantiation-visible without
// duplicating the overlap.
func (c *Context) LookupInPoi(name uast.Name, declScope *Scope, poi *PoiScope, config LookupConfig) []BorrowedIDs {
	c.lookupsBegun.Store(true)
	visited := make(map[uast.ID]bool)
	var result []BorrowedIDs
	if c.doLookup(name, declScope, config, visited, &result) && config&LookupInnermost != 0 {
		return result
	}
	for p := poi; p != nil; p = p.InFnPoi {
		if c.doLookup(name, p.InScope, config, visited, &result) && config&LookupInnermost != 0 {
			return result
		}
	}
	return result
}

// doLookup ascends from start, probing each scope level per config, and
// reports whether it appended any match. visited, when non-nil, records
// scope IDs across calls so POI phases skip already-searched scopes.
func (c *Context) doLookup(name uast.Name, start *Scope, config LookupConfig, visited map[uast.ID]bool, result *[]BorrowedIDs) bool {
	before := len(*result)
	for cur := start; cur != nil; cur = cur.ParentScope() {
		if visited == nil || !visited[cur.ID()] {
			if visited != nil {
				visited[cur.ID()] = true
			}
			levelStart := len(*result)
			if config&LookupDecls != 0 {
				cur.LookupInScope(name, result)
			}
			// a direct declaration silently shadows any import-introduced
			// match at the same scope
			if len(*result) == levelStart && config&LookupImportAndUse != 0 && cur.ContainsUseImport() {
				c.lookupInVisibility(name, cur, result)
			}
			if len(*result) > levelStart && config&LookupInnermost != 0 {
				return true
			}
		}
		if config&LookupParents == 0 {
			break
		}
		if config&LookupToplevel != 0 && cur.IsModuleScope() {
			break
		}
	}
	return len(*result) > before
}

// lookupInVisibility evaluates the scope's use/import clauses in source
// order, accumulating every clause that makes name visible here. Two
// clauses exposing the same name both contribute; an innermost-only
// query over such a scope reports more-than-one.
func (c *Context) lookupInVisibility(name uast.Name, scope *Scope, result *[]BorrowedIDs) bool {
	rvs, err := c.ResolveVisibility(scope)
	if err != nil || rvs == nil {
		return false
	}
	matched := false
	for _, clause := range rvs.Clauses {
		if c.evalClause(name, clause, result) {
			matched = true
		}
	}
	return matched
}

// evalClause appends the IDs one clause makes visible under name. A
// renamed entry matches the local name and resolves through to the
// declared name in the target's own scope. A clause whose target does
// not resolve contributes nothing; the missing target surfaces
// downstream when the target itself is resolved.
func (c *Context) evalClause(name uast.Name, clause *VisibilitySymbols, result *[]BorrowedIDs) bool {
	if !clause.TargetResolved {
		return false
	}
	declared, visible := clause.declaredFor(name)
	if !visible {
		return false
	}
	if clause.Kind == VisibilitySymbolOnly {
		*result = append(*result, BorrowOne(clause.SymbolID))
		return true
	}
	target, ok := c.ScopeForID(clause.SymbolID)
	if !ok {
		return false
	}
	return target.LookupInScope(declared, result)
}
