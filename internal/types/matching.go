// Package types provides type definitions for structured data used throughout the campusconnect system.
package types

// UserRecord is the directory's read-only projection of one account, as
// consumed by the matching core. The ID is opaque and stable for the
// lifetime of the account.
type UserRecord struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Interests   []string `json:"interests"`
	Skills      []string `json:"skills"`
	Bio         string   `json:"bio"`
}

// MatchRequest is the assembled input for the matching oracle.
type MatchRequest struct {
	CurrentUserProfile string   `json:"currentUserProfile"`
	Corpus             string   `json:"allUserProfiles"`
	DesiredCount       int      `json:"numberOfSuggestions"`
	PriorityIDs        []string `json:"connectedUserIds,omitempty"`
}

// Candidate is a single suggestion in the oracle's response.
type Candidate struct {
	UserID          string   `json:"userId"`
	Name            string   `json:"name"`
	CommonInterests []string `json:"commonInterests"`
	MatchScore      float64  `json:"matchScore"`
}

// RankedResult is a candidate after deterministic post-ranking. IsPriority
// marks suggestions the requesting user is already connected with.
type RankedResult struct {
	Candidate
	IsPriority bool `json:"isPriority"`
}

// DisplayCandidate is the shape handed to the UI layer. Priority is not
// exposed; the UI derives badges purely from list position.
type DisplayCandidate struct {
	UserID          string   `json:"userId"`
	Name            string   `json:"name"`
	CommonInterests []string `json:"commonInterests"`
	MatchScore      float64  `json:"matchScore"`
}
