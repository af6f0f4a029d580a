package admins

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamhack/hackctl/internal/domain/users"
)

func TestFromWire(t *testing.T) {
	a, err := FromWire(json.RawMessage(`{
		"id": "a1", "email": "org@itam.ru", "first_name": "Ольга", "role": "superadmin",
		"permissions": ["hackathons", "teams"], "is_active": false, "created_at": "2024-01-05T08:00:00Z"
	}`), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, []string{"hackathons", "teams"}, a.Permissions)
	assert.False(t, a.IsActive)
	assert.Equal(t, "05.01.2024", a.CreatedAt)

	a, err = FromWire(json.RawMessage(`{"id": 2, "email": "x@y.z"}`), nil)
	require.NoError(t, err)
	assert.True(t, a.IsActive)
}

func TestListFromWire(t *testing.T) {
	list, err := ListFromWire(json.RawMessage(`[{"id": "a"}, {"id": "b"}]`), time.UTC)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAsUser(t *testing.T) {
	u := Admin{ID: "a1", Email: "root@hack.local"}.AsUser()
	assert.Equal(t, "root", u.Name)
	assert.Equal(t, users.SystemRoleAdmin, u.UserRole)
	assert.True(t, u.IsAdmin())

	u = Admin{ID: "a2", Email: "o@itam.ru", FirstName: "Ольга", LastName: "Ким"}.AsUser()
	assert.Equal(t, "Ольга Ким", u.FullName())
}

func TestCreateInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		wantErr string
	}{
		{name: "valid", in: CreateInput{Email: "o@itam.ru", Password: "s3cret-pass"}},
		{name: "bad email", in: CreateInput{Email: "itam", Password: "s3cret-pass"}, wantErr: "email: must be a valid email"},
		{name: "short password", in: CreateInput{Email: "o@itam.ru", Password: "short"}, wantErr: "password: must be at least 8"},
		{name: "unknown role", in: CreateInput{Email: "o@itam.ru", Password: "s3cret-pass", Role: "root"}, wantErr: "role: must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProfileUpdateAndCredentials(t *testing.T) {
	assert.Error(t, ProfileUpdate{}.Validate())
	assert.NoError(t, ProfileUpdate{FirstName: "Ольга"}.Validate())
	assert.NoError(t, Credentials{Email: "o@itam.ru", Password: "x"}.Validate())
	assert.Error(t, Credentials{Email: "o@itam.ru"}.Validate())
}
