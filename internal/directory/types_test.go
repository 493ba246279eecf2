package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{"first and last", "Alice", "Smith", "Alice Smith"},
		{"first only", "Alice", "", "Alice"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.want, user.DisplayName())
		})
	}
}

func TestUser_Record(t *testing.T) {
	id := uuid.New()
	user := &User{
		ID:        id,
		FirstName: "Alice",
		LastName:  "Smith",
		Interests: StringArray{"AI"},
		Skills:    StringArray{"Go"},
		Bio:       "Hi.",
	}

	record := user.Record()

	assert.Equal(t, id.String(), record.ID)
	assert.Equal(t, "Alice Smith", record.DisplayName)
	assert.Equal(t, []string{"AI"}, record.Interests)
	assert.Equal(t, []string{"Go"}, record.Skills)
	assert.Equal(t, "Hi.", record.Bio)
}

func TestUser_APIUserExcludesPasswordHash(t *testing.T) {
	user := &User{
		ID:           uuid.New(),
		FirstName:    "Alice",
		Email:        "alice@example.edu",
		PasswordHash: "$2a$12$secret",
		PasswordSet:  true,
	}

	apiUser := user.APIUser()

	assert.Equal(t, user.Email, apiUser.Email)
	// types.User has no hash field at all; just make sure nothing else leaks.
	assert.NotContains(t, apiUser.Bio, "secret")
}

func TestStringArray_ScanValue(t *testing.T) {
	var arr StringArray
	require.NoError(t, arr.Scan([]byte(`["AI","Web"]`)))
	assert.Equal(t, StringArray{"AI", "Web"}, arr)

	require.NoError(t, arr.Scan(nil))
	assert.Empty(t, arr)

	val, err := StringArray{"Go"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["Go"]`, string(val.([]byte)))

	val, err = StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(val.([]byte)))
}

func TestStringArray_ScanRejectsNonBytes(t *testing.T) {
	var arr StringArray
	assert.Error(t, arr.Scan(42))
}
