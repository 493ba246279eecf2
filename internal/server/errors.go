// Package server provides the HTTP REST API for CampusConnect.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusconnect/campusconnect/internal/matching"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrInvalidOTP indicates the verification code is wrong or expired
type ErrInvalidOTP struct{}

func (e *ErrInvalidOTP) Error() string {
	return "invalid or expired verification code"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Matching pipeline errors map onto gateway semantics: bad input is the
// caller's fault, oracle failures are an upstream problem, directory
// failures mean our own storage is unavailable.
func HTTPStatus(err error) int {
	var validationErr *matching.ValidationError
	var oracleErr *matching.OracleError
	var directoryErr *matching.DirectoryError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &oracleErr):
		return http.StatusBadGateway
	case errors.As(err, &directoryErr):
		return http.StatusServiceUnavailable
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrInvalidOTP:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
