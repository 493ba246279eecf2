package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/campusconnect/campusconnect/internal/server/middleware"
	"github.com/campusconnect/campusconnect/internal/types"
)

// maxAvatarBytes caps avatar uploads at 2 MiB.
const maxAvatarBytes = 2 << 20

var allowedAvatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// handleUploadAvatar accepts a multipart avatar upload, stores it, and
// records the resulting URL on the profile.
func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Avatar too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing 'avatar' file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedAvatarTypes[strings.ToLower(contentType)]
	if !ok {
		// Fall back to the filename extension for clients that omit the type.
		ext = strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".webp" {
			s.errorResponse(w, http.StatusBadRequest, "Unsupported avatar type")
			return
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	name := fmt.Sprintf("%s%s", userID, ext)
	url, err := s.avatars.Upload(r.Context(), data, name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store avatar")
		return
	}

	if err := s.db.UpdateProfile(r.Context(), userID, &types.UpdateProfileRequest{AvatarURL: &url}); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"avatar_url": url})
}
