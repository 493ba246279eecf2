package matching

import (
	"sort"

	"github.com/campusconnect/campusconnect/internal/types"
)

// Suggestion count defaults observed at the two caller sites. Passed
// explicitly by each caller rather than hidden inside the assembler.
const (
	// DefaultSuggestionCount is the standalone partner-finder default.
	DefaultSuggestionCount = 5
	// FeedSuggestionCount is the default when matching is launched from the social feed.
	FeedSuggestionCount = 6
)

// BuildRequest assembles the oracle request. It is a pure constructor: the
// caller has already validated profileText, and desiredCount falls back to
// DefaultSuggestionCount when not positive. Priority ids are copied and
// sorted so the request is reproducible regardless of lookup order.
func BuildRequest(profileText, corpusText string, desiredCount int, priorityIDs []string) types.MatchRequest {
	if desiredCount <= 0 {
		desiredCount = DefaultSuggestionCount
	}

	ids := make([]string, len(priorityIDs))
	copy(ids, priorityIDs)
	sort.Strings(ids)

	return types.MatchRequest{
		CurrentUserProfile: profileText,
		Corpus:             corpusText,
		DesiredCount:       desiredCount,
		PriorityIDs:        ids,
	}
}
