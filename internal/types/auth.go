package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to register a new account with password authentication.
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	College   string `json:"college,omitempty"`
	Branch    string `json:"branch,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial profile update. Nil slices and empty
// strings mean "leave unchanged"; an empty (non-nil) slice clears the field.
type UpdateProfileRequest struct {
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}

// User represents a user profile for API responses (avoids import cycle with the directory package).
type User struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name,omitempty"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	College       string    `json:"college,omitempty"`
	Branch        string    `json:"branch,omitempty"`
	Interests     []string  `json:"interests"`
	Skills        []string  `json:"skills"`
	Bio           string    `json:"bio,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// FindPartnersRequest is the caller-facing input for partner matching.
type FindPartnersRequest struct {
	ProfileText string `json:"profile_text" validate:"required"`
	Count       int    `json:"count,omitempty" validate:"omitempty,min=1,max=20"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the FindPartnersRequest using the validator.
func (r *FindPartnersRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
