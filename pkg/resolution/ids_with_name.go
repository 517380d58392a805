package resolution

import (
	"hash/maphash"
	"log"

	"github.com/quill-lang/quill/pkg/uast"
)

// OwnedIDs collects the IDs declared under one name in a scope. A name
// with one declaration stores only that ID; appending a second one
// promotes the entry to a shared slice whose first element duplicates
// the original ID, so element 0 stays addressable without indirection.
type OwnedIDs struct {
	id   uast.ID
	more *[]uast.ID
}

// NewOwnedIDs constructs an OwnedIDs holding one ID.
func NewOwnedIDs(id uast.ID) *OwnedIDs {
	return &OwnedIDs{id: id}
}

// Append adds an ID after the existing ones, preserving declaration order.
func (o *OwnedIDs) Append(id uast.ID) {
	if o.more == nil {
		more := []uast.ID{o.id}
		o.more = &more
	}
	*o.more = append(*o.more, id)
}

// NumIDs returns the number of IDs stored.
func (o *OwnedIDs) NumIDs() int {
	if o.more == nil {
		return 1
	}
	return len(*o.more)
}

// FirstID returns the first stored ID.
func (o *OwnedIDs) FirstID() uast.ID {
	return o.id
}

// Borrow returns a non-owning view over this entry's storage. The view
// is valid only while o is; a view taken before a promoting Append keeps
// seeing the single-ID form.
func (o *OwnedIDs) Borrow() BorrowedIDs {
	return BorrowedIDs{id: o.id, more: o.more}
}

// Equals compares structurally (same IDs in the same order).
func (o *OwnedIDs) Equals(other *OwnedIDs) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.id != other.id {
		return false
	}
	if (o.more == nil) != (other.more == nil) {
		return false
	}
	if o.more == nil {
		return true
	}
	a, b := *o.more, *other.more
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BorrowedIDs is a lightweight non-owning view over the IDs stored in an
// OwnedIDs. Two views are equal iff they alias the same storage, not
// merely hold equal content; the lookup engine relies on this to
// deduplicate results without comparing ID sequences.
type BorrowedIDs struct {
	id   uast.ID
	more *[]uast.ID
}

// BorrowOne constructs a view over a single ID with no backing storage.
// Visibility clauses use it when a clause denotes the target symbol
// itself rather than an entry in some scope's declaration table.
func BorrowOne(id uast.ID) BorrowedIDs {
	return BorrowedIDs{id: id}
}

// NumIDs returns the number of IDs visible through this view.
func (b BorrowedIDs) NumIDs() int {
	if b.more == nil {
		return 1
	}
	return len(*b.more)
}

// ID returns the i'th ID. ID(0) is always available; an index beyond
// NumIDs-1 is a caller logic bug and panics.
func (b BorrowedIDs) ID(i int) uast.ID {
	if i == 0 {
		return b.id
	}
	if b.more == nil || i < 0 || i >= len(*b.more) {
		log.Panicf("fatal (index %d out of range for %d ids)", i, b.NumIDs())
	}
	return (*b.more)[i]
}

// FirstID returns the first ID in the view.
func (b BorrowedIDs) FirstID() uast.ID {
	return b.id
}

// Each calls fn for every ID in order, stopping early if fn returns false.
func (b BorrowedIDs) Each(fn func(uast.ID) bool) {
	if b.more == nil {
		fn(b.id)
		return
	}
	for _, id := range *b.more {
		if !fn(id) {
			return
		}
	}
}

// Equals reports whether two views alias the same storage.
func (b BorrowedIDs) Equals(other BorrowedIDs) bool {
	return b.id == other.id && b.more == other.more
}

var borrowedSeed = maphash.MakeSeed()

// Hash returns a hash consistent with Equals.
func (b BorrowedIDs) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(borrowedSeed)
	if b.more == nil {
		writeID(&h, b.id)
	} else {
		for _, id := range *b.more {
			writeID(&h, id)
		}
	}
	return h.Sum64()
}

func writeID(h *maphash.Hash, id uast.ID) {
	h.WriteString(id.SymbolPath)
	h.WriteByte(0)
	var buf [8]byte
	v := uint64(int64(id.PostOrder))
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
}
