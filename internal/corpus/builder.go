// Package corpus flattens user records into the text corpus consumed by the matching oracle.
package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campusconnect/campusconnect/internal/types"
)

const (
	// entrySeparator separates one user's block from the next.
	entrySeparator = "\n\n---\n\n"
)

// Build serializes the full user list into a single corpus string, one block
// per user, sorted by id so output is stable across runs. The requesting user
// is NOT excluded here; self-match filtering is the ranker's job.
func Build(users []types.UserRecord) string {
	if len(users) == 0 {
		return ""
	}

	sorted := make([]types.UserRecord, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	blocks := make([]string, 0, len(sorted))
	for _, user := range sorted {
		blocks = append(blocks, formatEntry(user))
	}

	return strings.Join(blocks, entrySeparator)
}

// formatEntry renders one user as the line-per-field block the oracle prompt expects.
func formatEntry(user types.UserRecord) string {
	lines := []string{
		fmt.Sprintf("User ID: %s", user.ID),
		fmt.Sprintf("Name: %s", user.DisplayName),
		fmt.Sprintf("Interests: %s", strings.Join(user.Interests, ", ")),
		fmt.Sprintf("Skills: %s", strings.Join(user.Skills, ", ")),
		fmt.Sprintf("Bio: %s", user.Bio),
	}
	return strings.Join(lines, "\n")
}
