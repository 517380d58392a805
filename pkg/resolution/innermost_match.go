package resolution

import "github.com/quill-lang/quill/pkg/uast"

// MatchesFound classifies how many candidates an innermost-only lookup
// found at its stopping level.
type MatchesFound uint8

const (
	MatchedNone MatchesFound = iota
	MatchedOne
	MatchedMany
)

func (m MatchesFound) String() string {
	switch m {
	case MatchedOne:
		return "one"
	case MatchedMany:
		return "many"
	default:
		return "none"
	}
}

// InnermostMatch is the result of an innermost-only lookup: the first
// matched ID plus the match count classification. A MatchedMany result
// lets the caller emit an ambiguity diagnostic instead of silently
// picking a candidate.
type InnermostMatch struct {
	ID    uast.ID
	Found MatchesFound
}
