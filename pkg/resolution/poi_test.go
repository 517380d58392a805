package resolution

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quill-lang/quill/pkg/uast"
)

func TestPoiScopeValueEquality(t *testing.T) {
	b := uast.NewBuilder()
	modM := b.Module("M")
	modN := b.Module("N")
	b.Build(modM)
	b.Build(modN)
	ctx := buildContext(t, modM, modN)
	scopeM := mustScope(t, ctx, modM)
	scopeN := mustScope(t, ctx, modN)

	outer := &PoiScope{InScope: scopeN}

	for name, tc := range map[string]struct {
		a, b      *PoiScope
		wantEqual bool
	}{
		"independently constructed, equal pair": {
			a:         &PoiScope{InScope: scopeM, InFnPoi: outer},
			b:         &PoiScope{InScope: scopeM, InFnPoi: outer},
			wantEqual: true,
		},
		"different call-site scope": {
			a:         &PoiScope{InScope: scopeM},
			b:         &PoiScope{InScope: scopeN},
			wantEqual: false,
		},
		"different enclosing poi": {
			a:         &PoiScope{InScope: scopeM, InFnPoi: outer},
			b:         &PoiScope{InScope: scopeM},
			wantEqual: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := tc.a.Equals(tc.b); got != tc.wantEqual {
				t.Errorf("Equals: want %v, got %v", tc.wantEqual, got)
			}
			if tc.wantEqual {
				ka := poiKey{inScope: tc.a.InScope, inFnPoi: tc.a.InFnPoi}
				kb := poiKey{inScope: tc.b.InScope, inFnPoi: tc.b.InFnPoi}
				if ka != kb {
					t.Error("equal PoiScopes must produce equal cache keys")
				}
			}
		})
	}
}

func TestMakePoiScopeDeduplicates(t *testing.T) {
	b := uast.NewBuilder()
	modM := b.Module("M")
	b.Build(modM)
	ctx := buildContext(t, modM)
	scopeM := mustScope(t, ctx, modM)

	first := ctx.MakePoiScope(scopeM, nil)
	second := ctx.MakePoiScope(scopeM, nil)
	if first != second {
		t.Error("structurally equal PoiScopes should be the same value")
	}
	nested := ctx.MakePoiScope(scopeM, first)
	if nested == first {
		t.Error("distinct pairs must not collapse")
	}
	if again := ctx.MakePoiScope(scopeM, first); again != nested {
		t.Error("nested PoiScope should also deduplicate")
	}
}

// A generic function body sees names from its declaration chain and,
// through the POI chain, names visible at its instantiation sites.
func TestLookupInPoiUnionsDeclarationAndCallSite(t *testing.T) {
	b := uast.NewBuilder()
	genericBody := b.Function("apply", b.Formal("arg"))
	libHelper := b.Function("libHelper")
	modLib := b.Module("Lib", genericBody, libHelper)

	callerHelper := b.Function("helper")
	modApp := b.Module("App", callerHelper)
	b.Build(modLib)
	b.Build(modApp)

	ctx := buildContext(t, modLib, modApp)
	declScope := mustScope(t, ctx, genericBody)
	poi := ctx.MakePoiScope(mustScope(t, ctx, modApp), nil)

	cfg := LookupDecls | LookupParents

	// visible only at the call site
	got := matchedIDs(ctx.LookupInPoi(uast.InternName("helper"), declScope, poi, cfg))
	want := []uast.ID{callerHelper.ID()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("call-site name (-want +got):\n%s", diff)
	}

	// visible only at the declaration
	got = matchedIDs(ctx.LookupInPoi(uast.InternName("libHelper"), declScope, poi, cfg))
	want = []uast.ID{libHelper.ID()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("declaration name (-want +got):\n%s", diff)
	}

	// nowhere
	if got := ctx.LookupInPoi(uast.InternName("nowhere"), declScope, poi, cfg); len(got) != 0 {
		t.Errorf("unexpected matches: %v", matchedIDs(got))
	}
}

// Scopes reachable from the declaration chain are collapsed out of the
// POI walk: a call site inside the declaring module contributes no
// duplicate matches.
func TestLookupInPoiCollapsesDeclarationVisibleScopes(t *testing.T) {
	b := uast.NewBuilder()
	shared := b.Function("shared")
	genericBody := b.Function("apply")
	callBlock := b.Block()
	modLib := b.Module("Lib", shared, genericBody, callBlock)
	b.Build(modLib)

	ctx := buildContext(t, modLib)
	declScope := mustScope(t, ctx, genericBody)
	poi := ctx.MakePoiScope(mustScope(t, ctx, callBlock), nil)

	got := matchedIDs(ctx.LookupInPoi(uast.InternName("shared"), declScope, poi, LookupDecls|LookupParents))
	want := []uast.ID{shared.ID()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("collapsed walk should match once (-want +got):\n%s", diff)
	}
}

// The POI chain follows InFnPoi outward: an instantiation made from
// inside another instantiation sees that outer call site too.
func TestLookupInPoiFollowsChain(t *testing.T) {
	b := uast.NewBuilder()
	inner := b.Function("inner")
	modLib := b.Module("Lib", inner)

	midHelper := b.Function("midHelper")
	modMid := b.Module("Mid", midHelper)

	outerHelper := b.Function("outerHelper")
	modOuter := b.Module("Outer", outerHelper)
	b.Build(modLib)
	b.Build(modMid)
	b.Build(modOuter)

	ctx := buildContext(t, modLib, modMid, modOuter)

	outerPoi := ctx.MakePoiScope(mustScope(t, ctx, modOuter), nil)
	midPoi := ctx.MakePoiScope(mustScope(t, ctx, modMid), outerPoi)
	declScope := mustScope(t, ctx, inner)

	cfg := LookupDecls | LookupParents
	got := matchedIDs(ctx.LookupInPoi(uast.InternName("outerHelper"), declScope, midPoi, cfg))
	want := []uast.ID{outerHelper.ID()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chained POI name (-want +got):\n%s", diff)
	}
	if got := matchedIDs(ctx.LookupInPoi(uast.InternName("midHelper"), declScope, midPoi, cfg)); len(got) != 1 {
		t.Errorf("direct POI name should still resolve, got %v", got)
	}
}
