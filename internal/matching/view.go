package matching

import "github.com/campusconnect/campusconnect/internal/types"

// ToViewModel maps ranked results into the shape the UI consumes. The
// priority flag is dropped on purpose: the UI derives ordering and badges
// purely from list position.
func ToViewModel(results []types.RankedResult) []types.DisplayCandidate {
	view := make([]types.DisplayCandidate, 0, len(results))
	for _, result := range results {
		view = append(view, types.DisplayCandidate{
			UserID:          result.UserID,
			Name:            result.Name,
			CommonInterests: result.CommonInterests,
			MatchScore:      result.MatchScore,
		})
	}
	return view
}
