package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamhack/hackctl/internal/auth"
)

func TestAuthenticate(t *testing.T) {
	manager := auth.NewTokenIssuer("secret", time.Hour, "test")
	userToken, err := manager.Issue(auth.Identity{ID: "user-1", Role: auth.RoleUser})
	require.NoError(t, err)
	adminToken, err := manager.Issue(auth.Identity{ID: "admin-1", Role: auth.RoleAdmin})
	require.NoError(t, err)

	var subject string
	handler := Authenticate(manager, auth.RoleAdmin, auth.RoleSuperAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = Claims(r).Subject
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + userToken, status: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/teams", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "admin-1", subject)
			} else {
				assert.Contains(t, rec.Body.String(), `"detail"`)
			}
		})
	}
}

func TestClaimsWithoutAuth(t *testing.T) {
	assert.Nil(t, Claims(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Nil(t, Claims(nil))
}
