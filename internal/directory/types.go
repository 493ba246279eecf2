package directory

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campusconnect/internal/types"
)

// User is a directory row. PasswordHash never leaves this package.
type User struct {
	ID            uuid.UUID   `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name,omitempty"`
	Email         string      `json:"email"`
	EmailVerified bool        `json:"email_verified"`
	OptionalEmail string      `json:"optional_email,omitempty"`
	PasswordHash  string      `json:"-" db:"password_hash"`
	PasswordSet   bool        `json:"password_set" db:"password_set"`
	College       string      `json:"college,omitempty"`
	Branch        string      `json:"branch,omitempty"`
	Interests     StringArray `json:"interests"`
	Skills        StringArray `json:"skills"`
	Bio           string      `json:"bio,omitempty"`
	AvatarURL     string      `json:"avatar_url,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// DisplayName derives the human name from the first/last name fields.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Record projects the row into the read-only shape the matching core consumes.
func (u *User) Record() types.UserRecord {
	return types.UserRecord{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName(),
		Interests:   u.Interests,
		Skills:      u.Skills,
		Bio:         u.Bio,
	}
}

// APIUser converts the row for API responses, excluding the password hash.
func (u *User) APIUser() *types.User {
	return &types.User{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		College:       u.College,
		Branch:        u.Branch,
		Interests:     u.Interests,
		Skills:        u.Skills,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// StringArray handles JSONB string arrays.
type StringArray []string

// Scan implements the Scanner interface for StringArray.
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
