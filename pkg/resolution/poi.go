package resolution

// PoiScope tracks the point of instantiation of a generic function: the
// lexical scope at the instantiating call plus the PoiScope of the
// enclosing instantiation, if any. PoiScopes form their own tree,
// distinct from the Scope tree.
//
// PoiScopes do not record scopes already visible from the function's
// declaration; those are collapsed away since declaration-chain lookup
// covers them.
type PoiScope struct {
	// InScope is the lexical scope enclosing the instantiating call.
	InScope *Scope
	// InFnPoi is the instantiation context the call itself ran under.
	InFnPoi *PoiScope
}

// Equals compares by (InScope, InFnPoi) value so that structurally
// identical call sites can share resolution work. The Context
// deduplicates PoiScopes on this equality.
func (p *PoiScope) Equals(other *PoiScope) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.InScope == other.InScope && p.InFnPoi == other.InFnPoi
}

// poiKey is the value identity of a PoiScope, used as a cache key.
type poiKey struct {
	inScope *Scope
	inFnPoi *PoiScope
}
