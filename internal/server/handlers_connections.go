package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusconnect/campusconnect/internal/directory"
	"github.com/campusconnect/campusconnect/internal/server/middleware"
)

// ---------------------------------------------------------------------
// Connection Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	connections, err := s.db.GetConnections(r.Context(), userID.String())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string][]string{"connections": connections})
}

func (s *Server) handleAddConnection(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	// The target must exist; a connection to a deleted account is useless.
	other, err := s.db.GetUser(r.Context(), otherID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if other == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if err := s.db.AddConnection(r.Context(), userID, otherID); err != nil {
		if errors.Is(err, directory.ErrSelfConnection) {
			s.errorResponse(w, http.StatusBadRequest, "Cannot connect with yourself")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"message": "Connection added"})
}

func (s *Server) handleRemoveConnection(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otherID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := s.db.RemoveConnection(r.Context(), userID, otherID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Connection removed"})
}
