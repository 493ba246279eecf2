// Package matching implements partner matching: request assembly, oracle
// invocation, and deterministic post-ranking of suggestions.
package matching

import (
	"sort"

	"github.com/campusconnect/campusconnect/internal/types"
)

// Rank reorders raw oracle candidates into the final, deterministic result
// order:
//
//  1. candidates matching currentUserID are dropped (the oracle is asked not
//     to suggest the requester to themselves, but is not trusted to comply),
//  2. scores are clamped into [0, 1],
//  3. each candidate is tagged IsPriority when its id is in priorityIDs,
//  4. the sequence is stable-sorted so priority candidates precede all others
//     regardless of score, and higher scores sort first within each group.
//
// When priorityIDs is empty the reordering is skipped entirely and candidates
// keep the oracle's order (still self-filtered and clamped). Duplicate userIds
// in the oracle response are passed through untouched.
func Rank(candidates []types.Candidate, priorityIDs []string, currentUserID string) []types.RankedResult {
	priority := make(map[string]struct{}, len(priorityIDs))
	for _, id := range priorityIDs {
		priority[id] = struct{}{}
	}

	results := make([]types.RankedResult, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.UserID == currentUserID {
			continue
		}
		candidate.MatchScore = clampScore(candidate.MatchScore)
		_, isPriority := priority[candidate.UserID]
		results = append(results, types.RankedResult{
			Candidate:  candidate,
			IsPriority: isPriority,
		})
	}

	if len(priority) > 0 {
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].IsPriority != results[j].IsPriority {
				return results[i].IsPriority
			}
			return results[i].MatchScore > results[j].MatchScore
		})
	}

	return results
}

// clampScore forces a score into the valid [0, 1] range.
func clampScore(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < 0.0 {
		return 0.0
	}
	return score
}
