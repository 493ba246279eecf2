package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusconnect/campusconnect/internal/types"
)

const userColumns = `id, first_name, last_name, email, email_verified, optional_email,
	COALESCE(password_hash, ''), password_set, college, branch, interests, skills, bio, avatar_url,
	created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.EmailVerified,
		&user.OptionalEmail, &user.PasswordHash, &user.PasswordSet, &user.College, &user.Branch,
		&user.Interests, &user.Skills, &user.Bio, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new account and returns its id. Profile fields start
// empty; the email is unverified until the OTP flow confirms it.
func (db *DB) CreateUser(ctx context.Context, firstName, lastName, email, college, branch string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, college, branch, interests, skills, bio)
		 VALUES ($1, $2, $3, $4, $5, '[]', '[]', '')
		 RETURNING id`,
		firstName, lastName, email, college, branch,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by id. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// GetUserByEmail retrieves a user by primary email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// CheckEmailExists reports whether the primary email is already registered.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword stores a new password hash and marks the password as set.
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, password_set = TRUE, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateProfile applies a partial profile update. Nil fields are left
// unchanged; updated_at always advances.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *types.UpdateProfileRequest) error {
	query := `UPDATE users SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if patch.FirstName != nil {
		query += fmt.Sprintf(", first_name = $%d", argNum)
		args = append(args, *patch.FirstName)
		argNum++
	}
	if patch.LastName != nil {
		query += fmt.Sprintf(", last_name = $%d", argNum)
		args = append(args, *patch.LastName)
		argNum++
	}
	if patch.Bio != nil {
		query += fmt.Sprintf(", bio = $%d", argNum)
		args = append(args, *patch.Bio)
		argNum++
	}
	if patch.Interests != nil {
		query += fmt.Sprintf(", interests = $%d", argNum)
		args = append(args, StringArray(patch.Interests))
		argNum++
	}
	if patch.Skills != nil {
		query += fmt.Sprintf(", skills = $%d", argNum)
		args = append(args, StringArray(patch.Skills))
		argNum++
	}
	if patch.AvatarURL != nil {
		query += fmt.Sprintf(", avatar_url = $%d", argNum)
		args = append(args, *patch.AvatarURL)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, userID)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// DeleteUser removes the account and its connections (via cascade).
func (db *DB) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// MarkEmailVerified flags the primary email as verified.
func (db *DB) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// SetOptionalEmail replaces the optional email. Verification status for it
// resets on change, mirroring the account flow.
func (db *DB) SetOptionalEmail(ctx context.Context, userID uuid.UUID, email string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET optional_email = $1, updated_at = NOW() WHERE id = $2`, email, userID)
	if err != nil {
		return fmt.Errorf("failed to set optional email: %w", err)
	}
	return nil
}

// ListUsers retrieves all users as API shapes, ordered by creation time.
func (db *DB) ListUsers(ctx context.Context) ([]*types.User, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*types.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user.APIUser())
	}
	return users, nil
}

// GetAllUsers returns every user as a matching corpus record, ordered by id
// so corpus output is reproducible. No pagination: matching assumes a
// full-corpus fetch (a known scaling limitation).
func (db *DB) GetAllUsers(ctx context.Context) ([]types.UserRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	var records []types.UserRecord
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, user.Record())
	}
	return records, nil
}
