package resolution

import (
	"fmt"

	"github.com/quill-lang/quill/pkg/uast"
)

// DuplicateScopeError is returned when a scope is registered twice for
// the same construct ID with differing contents. A structurally equal
// re-registration is not an error; the cached scope is kept instead.
type DuplicateScopeError struct {
	// The ID registered twice.
	ID uast.ID
}

func NewDuplicateScopeError(id uast.ID) *DuplicateScopeError {
	return &DuplicateScopeError{ID: id}
}

// Error implements the error interface.
func (e *DuplicateScopeError) Error() string {
	return fmt.Sprintf("duplicate scope registration for %v", e.ID)
}
