// Package oracle adapts the external inference boundary into the matching
// core's Oracle contract: it shapes the prompt, invokes the model, and
// fail-closed validates the structured response.
package oracle

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/campusconnect/campusconnect/internal/llm"
	"github.com/campusconnect/campusconnect/internal/prompts"
	"github.com/campusconnect/campusconnect/internal/schemas"
	"github.com/campusconnect/campusconnect/internal/types"
)

// Adapter invokes the LLM with an assembled match request and parses its
// schema-validated response. It holds no local state beyond the client.
type Adapter struct {
	client llm.Client
}

// New creates an Adapter over the given LLM client.
func New(client llm.Client) *Adapter {
	return &Adapter{client: client}
}

// suggestionsResponse mirrors the oracle's wire shape.
type suggestionsResponse struct {
	Suggestions []types.Candidate `json:"suggestions"`
}

// Suggest sends the match request upstream and returns the raw candidate
// list. The priority-boost instruction embedded in the prompt is advisory
// only; the ranker is the authority on final ordering.
func (a *Adapter) Suggest(ctx context.Context, req types.MatchRequest) ([]types.Candidate, error) {
	prompt := buildPrompt(req)

	raw, err := a.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate suggestions", Cause: err}
	}

	raw = llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schemas.PartnerSuggestions, raw); err != nil {
		return nil, &ParseError{Message: "response failed schema validation", Cause: err}
	}

	var response suggestionsResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return nil, &ParseError{Message: "failed to decode response", Cause: err}
	}

	return response.Suggestions, nil
}

// buildPrompt renders the suggestion prompt, inserting the priority-boost
// instruction only when the requester has existing connections.
func buildPrompt(req types.MatchRequest) string {
	priorityBlock := ""
	if len(req.PriorityIDs) > 0 {
		boost := prompts.MustGet("matching.json", "priority-boost")
		priorityBlock = "\n" + prompts.Format(boost, map[string]string{
			"ConnectedUserIDs": strings.Join(req.PriorityIDs, ", "),
		}) + "\n"
	}

	template := prompts.MustGet("matching.json", "generate-partner-suggestions")
	return prompts.Format(template, map[string]string{
		"PriorityBlock":       priorityBlock,
		"CurrentUserProfile":  req.CurrentUserProfile,
		"AllUserProfiles":     req.Corpus,
		"NumberOfSuggestions": strconv.Itoa(req.DesiredCount),
	})
}
