package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/campusconnect/campusconnect/internal/identity"
	"github.com/campusconnect/campusconnect/internal/otp"
	"github.com/campusconnect/campusconnect/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *identity.Service
	db          DBClient
	otpStore    *otp.Store
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *identity.Service, db DBClient, otpStore *otp.Store) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		db:          db,
		otpStore:    otpStore,
		validator:   validator.New(),
	}
}

// Register handles account registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, types.LoginResponse{User: user, Token: token})
}

// Login handles login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, types.LoginResponse{User: user, Token: token})
}

// UpdatePasswordWithUserID handles password update requests for an
// authenticated account.
func (h *AuthHandler) UpdatePasswordWithUserID(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

type otpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code,omitempty"`
}

// RequestOTP issues a verification code for a registered email address.
// The response never reveals whether the address is registered.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "Failed to issue verification code", http.StatusInternalServerError)
		return
	}
	if user != nil {
		code, err := h.otpStore.Issue(req.Email)
		if err != nil {
			http.Error(w, "Failed to issue verification code", http.StatusInternalServerError)
			return
		}
		// TODO: send the code by email once an outbound mail provider is
		// configured. Until then it only appears in server logs.
		log.Printf("[otp] verification code for %s: %s", req.Email, code)
	}

	h.writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "If the address is registered, a verification code has been sent",
	})
}

// VerifyOTP checks a verification code and marks the email as verified.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		http.Error(w, "validation error: Code - required", http.StatusBadRequest)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "Failed to verify code", http.StatusInternalServerError)
		return
	}
	if user == nil || !h.otpStore.Verify(req.Email, req.Code) {
		err := &ErrInvalidOTP{}
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	if err := h.db.MarkEmailVerified(r.Context(), user.ID); err != nil {
		http.Error(w, "Failed to verify code", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

func (h *AuthHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response already sent; nothing useful to do.
		return
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
