package resolution

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quill-lang/quill/pkg/uast"
)

func declID(path string, ord int) uast.ID {
	return uast.ID{SymbolPath: path, PostOrder: ord}
}

func collectIDs(b BorrowedIDs) (ids []uast.ID) {
	b.Each(func(id uast.ID) bool {
		ids = append(ids, id)
		return true
	})
	return
}

func TestOwnedIDsAppend(t *testing.T) {
	for name, tc := range map[string]struct {
		first   uast.ID
		appends []uast.ID
		want    []uast.ID
	}{
		"single": {
			first: declID("M", 1),
			want:  []uast.ID{declID("M", 1)},
		},
		"promoted keeps original first": {
			first:   declID("M", 1),
			appends: []uast.ID{declID("M", 2)},
			want:    []uast.ID{declID("M", 1), declID("M", 2)},
		},
		"appends preserve order": {
			first:   declID("M", 1),
			appends: []uast.ID{declID("M", 5), declID("M", 3), declID("M", 9)},
			want:    []uast.ID{declID("M", 1), declID("M", 5), declID("M", 3), declID("M", 9)},
		},
	} {
		t.Run(name, func(t *testing.T) {
			owned := NewOwnedIDs(tc.first)
			for _, id := range tc.appends {
				owned.Append(id)
			}
			if got, want := owned.NumIDs(), len(tc.want); got != want {
				t.Fatalf("NumIDs: want %d, got %d", want, got)
			}
			got := collectIDs(owned.Borrow())
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

// A view borrowed while an entry is still single does not observe a
// later promoting append.
func TestBorrowBeforePromotingAppend(t *testing.T) {
	owned := NewOwnedIDs(declID("M", 1))
	stale := owned.Borrow()

	owned.Append(declID("M", 2))

	if got := stale.NumIDs(); got != 1 {
		t.Errorf("stale view NumIDs: want 1, got %d", got)
	}
	fresh := owned.Borrow()
	if got := fresh.NumIDs(); got != 2 {
		t.Errorf("fresh view NumIDs: want 2, got %d", got)
	}
	// a view over the promoted storage does observe further appends
	owned.Append(declID("M", 3))
	if got := fresh.NumIDs(); got != 3 {
		t.Errorf("promoted view NumIDs after append: want 3, got %d", got)
	}
}

func TestBorrowedIDsEquality(t *testing.T) {
	single := NewOwnedIDs(declID("M", 1))

	multiA := NewOwnedIDs(declID("M", 1))
	multiA.Append(declID("M", 2))
	multiB := NewOwnedIDs(declID("M", 1))
	multiB.Append(declID("M", 2))

	if !multiA.Equals(multiB) {
		t.Fatal("value-equal owned sets should compare equal structurally")
	}

	for name, tc := range map[string]struct {
		a, b      BorrowedIDs
		wantEqual bool
	}{
		"same single storage": {
			a:         single.Borrow(),
			b:         single.Borrow(),
			wantEqual: true,
		},
		"same multi storage": {
			a:         multiA.Borrow(),
			b:         multiA.Borrow(),
			wantEqual: true,
		},
		"equal content, distinct storage": {
			a:         multiA.Borrow(),
			b:         multiB.Borrow(),
			wantEqual: false,
		},
		"single vs multi": {
			a:         single.Borrow(),
			b:         multiA.Borrow(),
			wantEqual: false,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if got := tc.a.Equals(tc.b); got != tc.wantEqual {
				t.Errorf("Equals: want %v, got %v", tc.wantEqual, got)
			}
			if tc.wantEqual && tc.a.Hash() != tc.b.Hash() {
				t.Error("equal views must hash equal")
			}
		})
	}
}

func TestBorrowedIDsOutOfRange(t *testing.T) {
	owned := NewOwnedIDs(declID("M", 1))
	owned.Append(declID("M", 2))
	view := owned.Borrow()

	if got := view.ID(1); got != declID("M", 2) {
		t.Fatalf("ID(1): want %v, got %v", declID("M", 2), got)
	}

	defer func() {
		if recover() == nil {
			t.Error("indexing past NumIDs should panic")
		}
	}()
	view.ID(2)
}
