package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect/internal/config"
	"github.com/campusconnect/campusconnect/internal/types"
)

func newTestUserService() (*UserService, *fakeDB) {
	db := newFakeDB()
	return NewUserService(db, &config.PasswordConfig{BcryptCost: 10}), db
}

func TestUserService_Register(t *testing.T) {
	service, db := newTestUserService()
	ctx := context.Background()

	user, err := service.Register(ctx, &types.CreateUserRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.edu",
		Password:  "password123",
		College:   "Engineering",
		Branch:    "CS",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, "Engineering", user.College)

	stored := db.users[user.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.PasswordSet)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	service, db := newTestUserService()
	db.addUser("Existing", "User", "alice@example.edu")

	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		FirstName: "Alice",
		Email:     "alice@example.edu",
		Password:  "password123",
	})

	var exists *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "alice@example.edu", exists.Email)
}

func TestUserService_Login(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	registered, err := service.Register(ctx, &types.CreateUserRequest{
		FirstName: "Alice",
		Email:     "alice@example.edu",
		Password:  "password123",
	})
	require.NoError(t, err)

	user, err := service.Login(ctx, &types.LoginRequest{
		Email:    "alice@example.edu",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_Login_Failures(t *testing.T) {
	service, db := newTestUserService()
	ctx := context.Background()

	_, err := service.Register(ctx, &types.CreateUserRequest{
		FirstName: "Alice",
		Email:     "alice@example.edu",
		Password:  "password123",
	})
	require.NoError(t, err)

	// Account with no password set yet (OTP-only signup).
	db.addUser("Bob", "NoPassword", "bob@example.edu")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.edu", "password123"},
		{"wrong password", "alice@example.edu", "wrong-password"},
		{"password not set", "bob@example.edu", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(ctx, &types.LoginRequest{Email: tt.email, Password: tt.password})
			var invalid *ErrInvalidCredentials
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	user, err := service.Register(ctx, &types.CreateUserRequest{
		FirstName: "Alice",
		Email:     "alice@example.edu",
		Password:  "password123",
	})
	require.NoError(t, err)

	require.NoError(t, service.UpdatePassword(ctx, user.ID, "password123", "newpassword456"))

	_, err = service.Login(ctx, &types.LoginRequest{Email: "alice@example.edu", Password: "newpassword456"})
	assert.NoError(t, err)
	_, err = service.Login(ctx, &types.LoginRequest{Email: "alice@example.edu", Password: "password123"})
	assert.Error(t, err)
}

func TestUserService_UpdatePassword_Failures(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	user, err := service.Register(ctx, &types.CreateUserRequest{
		FirstName: "Alice",
		Email:     "alice@example.edu",
		Password:  "password123",
	})
	require.NoError(t, err)

	var mismatch *ErrPasswordMismatch
	err = service.UpdatePassword(ctx, user.ID, "wrong-current", "newpassword456")
	assert.ErrorAs(t, err, &mismatch)

	var notFound *ErrUserNotFound
	err = service.UpdatePassword(ctx, uuid.New(), "password123", "newpassword456")
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_Register_DBFailure(t *testing.T) {
	service, db := newTestUserService()
	db.failWith = fmt.Errorf("connection refused")

	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		FirstName: "Alice",
		Email:     "alice@example.edu",
		Password:  "password123",
	})
	assert.Error(t, err)
}
