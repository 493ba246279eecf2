package server

import (
	"encoding/json"
	"net/http"

	"github.com/campusconnect/campusconnect/internal/matching"
	"github.com/campusconnect/campusconnect/internal/server/middleware"
	"github.com/campusconnect/campusconnect/internal/types"
)

// ---------------------------------------------------------------------
// Partner Matching Handler
// ---------------------------------------------------------------------

// handleFindPartners runs the matching pipeline for the caller's profile
// text. Authenticated callers get their connections boosted; anonymous
// callers are matched without boosting.
func (s *Server) handleFindPartners(w http.ResponseWriter, r *http.Request) {
	var req types.FindPartnersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	currentUserID := ""
	if userID, err := middleware.GetUserID(r); err == nil {
		currentUserID = userID.String()
	}

	count := req.Count
	if count <= 0 {
		count = matching.FeedSuggestionCount
	}

	results, err := s.newFinder(count).FindPartners(r.Context(), currentUserID, req.ProfileText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"suggestions": matching.ToViewModel(results),
	})
}
