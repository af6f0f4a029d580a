package mockapi

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/itamhack/hackctl/internal/auth"
	"github.com/itamhack/hackctl/internal/config"
	"github.com/itamhack/hackctl/internal/mockapi/problem"
)

const (
	testAdminEmail    = "root@example.com"
	testAdminPassword = "correct-horse"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	cfg := config.MockAPIConfig{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
	}
	srv, err := New(cfg, zerolog.Nop(),
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return fixedNow }),
		WithVersion("test"),
	)
	require.NoError(t, err)
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func userToken(t *testing.T, h http.Handler, code string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/auth/code", "", map[string]string{"code": code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[codeLoginResponse](t, rec).AccessToken
}

func adminToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/auth/admin/login", "",
		map[string]string{"email": testAdminEmail, "password": testAdminPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[adminTokenResponse](t, rec).AccessToken
}

func TestLoginTokensCarryAccountKind(t *testing.T) {
	srv, h := newTestServer(t)

	participant, err := srv.jwt.Verify(userToken(t, h, SeedCodes[0]))
	require.NoError(t, err)
	assert.Equal(t, auth.KindParticipant, participant.Kind)
	assert.Equal(t, "Иван Иванов", participant.Name)
	assert.False(t, participant.Organizer())

	organizer, err := srv.jwt.Verify(adminToken(t, h))
	require.NoError(t, err)
	assert.True(t, organizer.Organizer())
	assert.Equal(t, "superadmin", organizer.Role)
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[healthResponse](t, rec)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "test", got.Version)
	assert.Equal(t, "2026-03-01T12:00:00Z", got.Timestamp)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLoginByCode(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/auth/code", "", map[string]string{"code": SeedCodes[0]})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[codeLoginResponse](t, rec)
	assert.NotEmpty(t, got.AccessToken)
	assert.Equal(t, "bearer", got.TokenType)
	assert.Equal(t, "Иван", got.User.FirstName)
	assert.True(t, got.HasAnketa)

	rec = do(t, h, http.MethodPost, "/api/v1/auth/code", "", map[string]string{"code": SeedCodes[5]})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[codeLoginResponse](t, rec).HasAnketa)
}

func TestLoginByCode_Invalid(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/api/v1/auth/code", "", map[string]string{"code": "nope"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	got := decode[problem.ProblemDetails](t, rec)
	assert.Equal(t, "Invalid or expired code", got.Detail)
}

func TestAdminLogin(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"ok", map[string]string{"email": testAdminEmail, "password": testAdminPassword}, http.StatusOK},
		{"wrong password", map[string]string{"email": testAdminEmail, "password": "nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "who@example.com", "password": "x"}, http.StatusUnauthorized},
		{"invalid email", map[string]string{"email": "not-an-email", "password": "x"}, http.StatusUnprocessableEntity},
		{"empty", map[string]string{}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/auth/admin/login", "", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	rec := do(t, h, http.MethodPost, "/api/v1/auth/admin/login", "",
		map[string]string{"email": testAdminEmail, "password": testAdminPassword})
	got := decode[adminTokenResponse](t, rec)
	assert.Equal(t, "superadmin", got.Admin.Role)
	assert.Equal(t, testAdminEmail, got.Admin.Email)
}

func TestAccessControl(t *testing.T) {
	_, h := newTestServer(t)
	user := userToken(t, h, SeedCodes[0])
	admin := adminToken(t, h)

	tests := []struct {
		name   string
		method string
		target string
		token  string
		status int
	}{
		{"public hackathons", http.MethodGet, "/api/v1/hackathons", "", http.StatusOK},
		{"public roles", http.MethodGet, "/api/v1/roles", "", http.StatusOK},
		{"teams without token", http.MethodGet, "/api/v1/teams", "", http.StatusUnauthorized},
		{"teams with garbage token", http.MethodGet, "/api/v1/teams", "garbage", http.StatusUnauthorized},
		{"teams as user", http.MethodGet, "/api/v1/teams", user, http.StatusOK},
		{"teams as admin", http.MethodGet, "/api/v1/teams", admin, http.StatusForbidden},
		{"admin teams as user", http.MethodGet, "/api/v1/admin/teams", user, http.StatusForbidden},
		{"admin teams as admin", http.MethodGet, "/api/v1/admin/teams", admin, http.StatusOK},
		{"add organizer as user", http.MethodPost, "/api/v1/organizers", user, http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/hackathons", "", http.StatusMethodNotAllowed},
		{"wrong method on shared path", http.MethodDelete, "/api/v1/organizers", admin, http.StatusMethodNotAllowed},
		{"wrong method on protected route", http.MethodPatch, "/api/v1/teams", user, http.StatusMethodNotAllowed},
		{"add organizer without token", http.MethodPost, "/api/v1/organizers", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.token, nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestParticipantFlow(t *testing.T) {
	srv, h := newTestServer(t)
	anna := userToken(t, h, SeedCodes[5])
	hackathonID := srv.Store().Hackathons()[2].ID

	rec := do(t, h, http.MethodGet, "/api/v1/anketa/me", anna, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/anketa", anna, map[string]string{"name": "Анна"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[problem.ProblemDetails](t, rec).Errors, "contacts: required")

	rec = do(t, h, http.MethodPost, "/api/v1/anketa", anna, map[string]string{
		"name": "Анна", "last_name": "Волкова", "role": "QA", "contacts": "@volkova",
		"skills": "Go, <b>Selenium</b>",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"skills":"Go, Selenium"`)

	rec = do(t, h, http.MethodPost, "/api/v1/hackathons/"+hackathonID+"/register", anna, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/hackathons/"+hackathonID+"/register", anna, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/teams", anna, map[string]any{"name": "Гамма", "hackathon_id": hackathonID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[teamView](t, rec)
	assert.Equal(t, "Гамма", created.Name)
	assert.Equal(t, hackathonID, created.IDHackathon)
	require.Len(t, created.Members, 1)
	assert.Equal(t, "Анна", created.Members[0].FirstName)

	rec = do(t, h, http.MethodGet, "/api/v1/hackathons/"+hackathonID+"/team", anna, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[teamView](t, rec).ID)

	rec = do(t, h, http.MethodGet, "/api/v1/hackathons/my", anna, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]hackathonView](t, rec)
	var found bool
	for _, v := range mine {
		if v.ID == hackathonID {
			found = true
			assert.Equal(t, "captain", v.Role)
		}
	}
	assert.True(t, found)
}

func TestInvitationFlow(t *testing.T) {
	srv, h := newTestServer(t)
	ivan := userToken(t, h, SeedCodes[0])

	rec := do(t, h, http.MethodGet, "/api/v1/invitations/my", ivan, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]invitationJSON](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Команда Бета", list[0].TeamName)
	require.NotNil(t, list[0].Sender)
	assert.Equal(t, "Елена", list[0].Sender.FirstName)

	rec = do(t, h, http.MethodPost, "/api/v1/invitations/"+list[0].ID+"/accept", ivan, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Invitation accepted", decode[messageResponse](t, rec).Message)

	_, err := srv.Store().TeamIn(decodeSubject(t, srv, ivan), srv.Store().Hackathons()[1].ID)
	assert.NoError(t, err)
}

func decodeSubject(t *testing.T, srv *Server, token string) string {
	t.Helper()
	claims, err := srv.jwt.Verify(token)
	require.NoError(t, err)
	return claims.Subject
}

func TestAdminCreateHackathon_JSON(t *testing.T) {
	_, h := newTestServer(t)
	admin := adminToken(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/admin/hackathons", admin, map[string]any{"describe": "no name"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[problem.ProblemDetails](t, rec).Errors, "name: required")

	rec = do(t, h, http.MethodPost, "/api/v1/admin/hackathons", admin, map[string]any{
		"name":           "Spring <script>alert(1)</script>Hack",
		"describe":       "<p>Hello <b>world</b></p>",
		"date_starts":    "2026-04-01T10:00:00Z",
		"date_end":       "2026-04-03",
		"register_start": "2026-03-01T00:00:00+03:00",
		"register_end":   "2026-03-31T00:00:00Z",
		"max_team_size":  "6",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[hackathonView](t, rec)
	assert.Equal(t, "Spring Hack", got.Name)
	assert.Equal(t, "<p>Hello <b>world</b></p>", got.Describe)
	assert.Equal(t, "2026-04-03T00:00:00Z", got.DateEnd)
	assert.Equal(t, "2026-02-28T21:00:00Z", got.RegisterStart)
	assert.Equal(t, 6, got.MaxTeamSize)

	rec = do(t, h, http.MethodPost, "/api/v1/admin/hackathons", admin, map[string]any{
		"name": "Bad", "date_starts": "tomorrow",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCreateHackathon_Multipart(t *testing.T) {
	_, h := newTestServer(t)
	admin := adminToken(t, h)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"name":           "Image Hack",
		"date_starts":    "2026-05-01T10:00:00Z",
		"date_end":       "2026-05-02T10:00:00Z",
		"register_start": "2026-04-01T10:00:00Z",
		"register_end":   "2026-04-30T10:00:00Z",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", "../cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/hackathons", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[hackathonView](t, rec)
	assert.True(t, strings.HasPrefix(got.ImageURL, "/uploads/"), got.ImageURL)
	assert.True(t, strings.HasSuffix(got.ImageURL, "-cover.png"), got.ImageURL)
	assert.Equal(t, 5, got.MaxTeamSize)
}

func TestAdminUpdateHackathon(t *testing.T) {
	srv, h := newTestServer(t)
	admin := adminToken(t, h)
	id := srv.Store().Hackathons()[0].ID

	rec := do(t, h, http.MethodPut, "/api/v1/admin/hackathons/"+id, admin, map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/admin/hackathons/"+id, admin, map[string]any{"location": "Казань"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Казань", decode[hackathonView](t, rec).Location)

	rec = do(t, h, http.MethodPut, "/api/v1/admin/hackathons/missing", admin, map[string]any{"location": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportHackathon(t *testing.T) {
	srv, h := newTestServer(t)
	admin := adminToken(t, h)
	id := srv.Store().Hackathons()[0].ID

	rec := do(t, h, http.MethodGet, "/api/v1/admin/hackathons/"+id+"/export", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="AI Hackathon-teams.csv"`, rec.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"team", "first_name", "last_name", "role", "telegram", "is_captain"}, rows[0])
	assert.Equal(t, []string{"Команда Альфа", "Иван", "Иванов", "Frontend", "@ivanov", "true"}, rows[1])
}

func TestAdminSettings(t *testing.T) {
	_, h := newTestServer(t)
	admin := adminToken(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/admin/settings", admin, map[string]string{
		"email": "helper@example.com", "password": "password123", "first_name": "Helper",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	helper := decode[adminView](t, rec)
	assert.Equal(t, "admin", helper.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(t, h, http.MethodPost, "/api/v1/admin/settings/"+helper.ID+"/deactivate", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/auth/admin/login", "",
		map[string]string{"email": "helper@example.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/admin/settings/me", admin, map[string]string{"company": "ITAM"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ITAM", decode[adminView](t, rec).Company)

	rec = do(t, h, http.MethodGet, "/api/v1/admin/settings", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]adminView](t, rec), 2)

	rec = do(t, h, http.MethodDelete, "/api/v1/admin/settings/"+helper.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/code", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decode[problem.ProblemDetails](t, rec).Detail)

	big := `{"code":"` + strings.Repeat("1", 6<<20) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/code", strings.NewReader(big))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCatalog(t *testing.T) {
	_, h := newTestServer(t)
	admin := adminToken(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/roles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	roles := decode[[]optionView](t, rec)
	require.NotEmpty(t, roles)
	assert.Equal(t, optionView{ID: "1", Name: "Frontend"}, roles[0])

	rec = do(t, h, http.MethodPost, "/api/v1/organizers", admin, map[string]string{"name": "Acme", "email": "acme@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/organizers", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "acme@example.com")
}
