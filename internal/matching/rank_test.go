package matching

import (
	"testing"

	"github.com/campusconnect/campusconnect/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id string, score float64) types.Candidate {
	return types.Candidate{UserID: id, Name: "User " + id, MatchScore: score}
}

func TestRank_SelfExclusion(t *testing.T) {
	candidates := []types.Candidate{
		candidate("me", 0.99),
		candidate("a", 0.6),
		candidate("b", 0.4),
	}

	results := Rank(candidates, nil, "me")

	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "me", r.UserID)
	}
}

func TestRank_PriorityPrecedesRegardlessOfScore(t *testing.T) {
	candidates := []types.Candidate{
		candidate("a", 0.6),
		candidate("b", 0.4),
		candidate("c", 0.9),
	}

	results := Rank(candidates, []string{"b"}, "me")

	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].UserID)
	assert.True(t, results[0].IsPriority)
	assert.Equal(t, "c", results[1].UserID)
	assert.Equal(t, "a", results[2].UserID)
}

func TestRank_ScoreOrderingWithinGroups(t *testing.T) {
	candidates := []types.Candidate{
		candidate("p1", 0.2),
		candidate("n1", 0.3),
		candidate("p2", 0.8),
		candidate("n2", 0.7),
	}

	results := Rank(candidates, []string{"p1", "p2"}, "me")

	require.Len(t, results, 4)
	assert.Equal(t, "p2", results[0].UserID)
	assert.Equal(t, "p1", results[1].UserID)
	assert.Equal(t, "n2", results[2].UserID)
	assert.Equal(t, "n1", results[3].UserID)
}

func TestRank_StabilityOnEqualKeys(t *testing.T) {
	// Same priority group, same score: original oracle order must survive.
	candidates := []types.Candidate{
		candidate("first", 0.5),
		candidate("second", 0.5),
		candidate("third", 0.5),
	}

	results := Rank(candidates, []string{"unrelated"}, "me")

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].UserID)
	assert.Equal(t, "second", results[1].UserID)
	assert.Equal(t, "third", results[2].UserID)
}

func TestRank_ScoreClamping(t *testing.T) {
	candidates := []types.Candidate{
		candidate("high", 1.5),
		candidate("low", -0.2),
	}

	results := Rank(candidates, nil, "me")

	require.Len(t, results, 2)
	assert.Equal(t, 1.0, results[0].MatchScore)
	assert.Equal(t, 0.0, results[1].MatchScore)
}

func TestRank_EmptyPriorityPassthrough(t *testing.T) {
	// Oracle order is intentionally not score-sorted; with no priority ids the
	// ranker must not reorder it.
	candidates := []types.Candidate{
		candidate("a", 0.1),
		candidate("b", 0.9),
		candidate("c", 0.5),
	}

	results := Rank(candidates, nil, "me")

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].UserID)
	assert.Equal(t, "b", results[1].UserID)
	assert.Equal(t, "c", results[2].UserID)
	for _, r := range results {
		assert.False(t, r.IsPriority)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	results := Rank(nil, []string{"b"}, "me")
	assert.Empty(t, results)
}

func TestRank_DuplicateUserIDsNotDeduplicated(t *testing.T) {
	// Current permissive behavior: duplicates from the oracle pass through.
	candidates := []types.Candidate{
		candidate("dup", 0.8),
		candidate("dup", 0.3),
	}

	results := Rank(candidates, nil, "me")

	assert.Len(t, results, 2)
}

func TestToViewModel_DropsPriorityFlag(t *testing.T) {
	results := []types.RankedResult{
		{Candidate: types.Candidate{UserID: "a", Name: "A", CommonInterests: []string{"AI"}, MatchScore: 0.9}, IsPriority: true},
		{Candidate: types.Candidate{UserID: "b", Name: "B", MatchScore: 0.5}},
	}

	view := ToViewModel(results)

	require.Len(t, view, 2)
	assert.Equal(t, "a", view[0].UserID)
	assert.Equal(t, []string{"AI"}, view[0].CommonInterests)
	assert.Equal(t, 0.9, view[0].MatchScore)
	assert.Equal(t, "b", view[1].UserID)
}

func TestBuildRequest_Defaults(t *testing.T) {
	req := BuildRequest("profile", "corpus", 0, nil)
	assert.Equal(t, DefaultSuggestionCount, req.DesiredCount)
	assert.Empty(t, req.PriorityIDs)

	req = BuildRequest("profile", "corpus", FeedSuggestionCount, []string{"z", "a"})
	assert.Equal(t, 6, req.DesiredCount)
	assert.Equal(t, []string{"a", "z"}, req.PriorityIDs, "priority ids are sorted for reproducibility")
}

func TestBuildRequest_CopiesPriorityIDs(t *testing.T) {
	ids := []string{"b", "a"}
	req := BuildRequest("profile", "corpus", 5, ids)

	assert.Equal(t, []string{"b", "a"}, ids, "caller slice must not be reordered")
	assert.Equal(t, []string{"a", "b"}, req.PriorityIDs)
}
