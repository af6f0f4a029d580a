package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/session"
)

// newTestAPI serves routes from a map of "METHOD /path" to handlers.
func newTestAPI(t *testing.T, routes map[string]http.HandlerFunc) (*API, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c := New(srv.URL, WithTokenSource(store))
	return NewAPI(c, store, time.UTC), store
}

func jsonReply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestLogin_StoresToken(t *testing.T) {
	api, store := newTestAPI(t, map[string]http.HandlerFunc{
		"POST /api/v1/auth/code": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ABC123", body["code"])
			jsonReply(`{"access_token":"jwt-1","token_type":"bearer","has_anketa":true,
				"user":{"id":"u1","first_name":"Иван","last_name":"Петров"}}`)(w, r)
		},
		"GET /api/v1/hackathons": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
			jsonReply(`[]`)(w, r)
		},
	})
	require.NoError(t, store.SetIsAdmin(true))

	resp := api.Login(context.Background(), "ABC123")
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "Иван Петров", resp.Data.User.FullName())
	assert.Equal(t, users.SystemRoleUser, resp.Data.User.UserRole)
	assert.True(t, resp.Data.HasProfile)

	assert.Equal(t, "jwt-1", store.Token())
	assert.True(t, store.HasProfile())
	assert.False(t, store.IsAdmin())
	current, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u1", current.ID)

	assert.True(t, api.ListHackathons(context.Background()).Success)
}

func TestLogin_ProfileFlagFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "has_profile", body: `{"token":"t","has_profile":true,"user":{"id":"u"}}`, want: true},
		{name: "nested has_anketa", body: `{"token":"t","user":{"id":"u","has_anketa":true}}`, want: true},
		{name: "top level wins", body: `{"token":"t","has_anketa":false,"has_profile":true,"user":{"id":"u","has_anketa":true}}`, want: false},
		{name: "absent", body: `{"token":"t","user":{"id":"u"}}`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, store := newTestAPI(t, map[string]http.HandlerFunc{"POST /api/v1/auth/code": jsonReply(tt.body)})
			resp := api.Login(context.Background(), "c")
			require.True(t, resp.Success)
			assert.Equal(t, tt.want, resp.Data.HasProfile)
			assert.Equal(t, tt.want, store.HasProfile())
			assert.Equal(t, "t", store.Token())
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	api, store := newTestAPI(t, map[string]http.HandlerFunc{
		"POST /api/v1/auth/code": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid code"}`))
		},
	})
	resp := api.Login(context.Background(), "nope")
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid code", resp.Message)
	assert.Equal(t, "", store.Token())

	api, store = newTestAPI(t, map[string]http.HandlerFunc{"POST /api/v1/auth/code": jsonReply(`{"access_token":"t"}`)})
	resp = api.Login(context.Background(), "c")
	assert.False(t, resp.Success)
	assert.Equal(t, MsgInvalidCode, resp.Message)
	assert.Equal(t, "t", store.Token())
}

func TestAdminLogin(t *testing.T) {
	t.Run("with admin payload", func(t *testing.T) {
		api, store := newTestAPI(t, map[string]http.HandlerFunc{
			"POST /api/v1/auth/admin/login": jsonReply(`{"access_token":"adm","admin":{"id":"a1","email":"root@hack.local","role":"superadmin"}}`),
		})
		resp := api.AdminLogin(context.Background(), "root@hack.local", "admin12345")
		require.True(t, resp.Success, resp.Message)
		assert.Equal(t, "root", resp.Data.Name)
		assert.Equal(t, "superadmin", resp.Data.Role)
		assert.True(t, resp.Data.IsAdmin())
		assert.Equal(t, "adm", store.Token())
		assert.True(t, store.IsAdmin())
	})

	t.Run("token only", func(t *testing.T) {
		api, _ := newTestAPI(t, map[string]http.HandlerFunc{
			"POST /api/v1/auth/admin/login": jsonReply(`{"token":"adm"}`),
		})
		resp := api.AdminLogin(context.Background(), "root@hack.local", "admin12345")
		require.True(t, resp.Success)
		assert.Equal(t, "Admin", resp.Data.Name)
	})

	t.Run("nothing useful", func(t *testing.T) {
		api, store := newTestAPI(t, map[string]http.HandlerFunc{
			"POST /api/v1/auth/admin/login": jsonReply(`{}`),
		})
		resp := api.AdminLogin(context.Background(), "root@hack.local", "admin12345")
		assert.False(t, resp.Success)
		assert.Equal(t, MsgInvalidCredentials, resp.Message)
		assert.False(t, store.IsAdmin())
	})

	t.Run("invalid input never reaches the API", func(t *testing.T) {
		api, _ := newTestAPI(t, nil)
		resp := api.AdminLogin(context.Background(), "not-an-email", "")
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Message, "email: must be a valid email")
		assert.Equal(t, 0, resp.Status)
	})
}

func TestLogout(t *testing.T) {
	api, store := newTestAPI(t, nil)
	require.NoError(t, store.SetToken("t"))
	require.NoError(t, store.SetIsAdmin(true))
	require.NoError(t, store.SetTeamNameOverride("h1", "Team"))

	assert.True(t, api.Logout(context.Background()).Success)
	assert.Equal(t, "", store.Token())
	assert.False(t, store.IsAdmin())
	assert.Equal(t, "Team", store.TeamNameOverride("h1"))
}

func TestEndpointSelection_FollowsAdminFlag(t *testing.T) {
	api, store := newTestAPI(t, map[string]http.HandlerFunc{
		"GET /api/v1/teams":              jsonReply(`[{"id":"public"}]`),
		"GET /api/v1/admin/teams":        jsonReply(`[{"id":"admin"}]`),
		"GET /api/v1/users":              jsonReply(`[{"id":"public"}]`),
		"GET /api/v1/admin/participants": jsonReply(`[{"id":"admin"}]`),
	})
	ctx := context.Background()

	assert.Equal(t, "public", api.ListTeams(ctx).Data[0].ID)
	assert.Equal(t, "public", api.ListUsers(ctx).Data[0].ID)

	require.NoError(t, store.SetIsAdmin(true))
	assert.Equal(t, "admin", api.ListTeams(ctx).Data[0].ID)
	assert.Equal(t, "admin", api.ListUsers(ctx).Data[0].ID)
}

func TestGetMyTeam(t *testing.T) {
	api, _ := newTestAPI(t, map[string]http.HandlerFunc{
		"GET /api/v1/teams/my": jsonReply(`[
			{"id":"t1","name":"A","id_hackathon":"h1","id_capitan":"u1","members":[{"user_id":"u1"}]},
			{"id":"t2","name":"B","id_hackathon":"h2"}
		]`),
	})
	ctx := context.Background()

	resp := api.GetMyTeam(ctx, "h2")
	require.True(t, resp.Success)
	assert.Equal(t, "t2", resp.Data.ID)

	resp = api.GetMyTeam(ctx, "")
	require.True(t, resp.Success)
	assert.Equal(t, "t1", resp.Data.ID)
	captain, ok := resp.Data.Captain()
	require.True(t, ok)
	assert.Equal(t, "u1", captain.UserID)

	resp = api.GetMyTeam(ctx, "h9")
	assert.False(t, resp.Success)
	assert.Equal(t, MsgNoTeam, resp.Message)
	assert.Equal(t, teams.Team{}, resp.Data)
}

func TestTeamMutations(t *testing.T) {
	var seen []string
	record := func(reply string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			seen = append(seen, strings.TrimSpace(r.Method+" "+r.URL.Path+" "+string(body)))
			jsonReply(reply)(w, r)
		}
	}
	api, _ := newTestAPI(t, map[string]http.HandlerFunc{
		"POST /api/v1/teams":                                record(`{"id":"t9","name":"New"}`),
		"PUT /api/v1/teams/t9":                              record(`{"id":"t9","name":"Renamed"}`),
		"POST /api/v1/teams/t9/members":                     record(`{"message":"added"}`),
		"POST /api/v1/teams/t9/invite":                      record(`{"message":"sent"}`),
		"DELETE /api/v1/teams/t9/members/u2":                record(`{}`),
		"POST /api/v1/teams/t9/leave":                       record(`{}`),
		"POST /api/v1/admin/teams/t9/members":               record(`{}`),
		"POST /api/v1/admin/hackathons/h1/teams/t9/members": record(`{}`),
	})
	ctx := context.Background()

	created := api.CreateTeam(ctx, teams.CreateInput{Name: "New", HackathonID: "h1", MaxSize: 4})
	require.True(t, created.Success, created.Message)
	assert.Equal(t, "t9", created.Data.ID)

	assert.Equal(t, "Renamed", api.UpdateTeamName(ctx, "t9", "Renamed").Data.Name)
	assert.Equal(t, "added", api.AddMemberToTeam(ctx, "t9", "u2").Data.Message)
	assert.Equal(t, "sent", api.InviteUserToTeam(ctx, "t9", "u3").Data.Message)
	assert.True(t, api.RemoveMemberFromTeam(ctx, "t9", "u2").Success)
	assert.True(t, api.LeaveTeam(ctx, "t9").Success)
	assert.True(t, api.AddUserToTeam(ctx, "t9", "u4", "").Success)
	assert.True(t, api.AddUserToTeam(ctx, "t9", "u4", "h1").Success)

	assert.Equal(t, []string{
		`POST /api/v1/teams {"name":"New","hackathon_id":"h1","max_size":4}`,
		`PUT /api/v1/teams/t9 {"name":"Renamed"}`,
		`POST /api/v1/teams/t9/members {"user_id":"u2"}`,
		`POST /api/v1/teams/t9/invite {"user_id":"u3"}`,
		`DELETE /api/v1/teams/t9/members/u2`,
		`POST /api/v1/teams/t9/leave`,
		`POST /api/v1/admin/teams/t9/members {"user_id":"u4"}`,
		`POST /api/v1/admin/hackathons/h1/teams/t9/members {"user_id":"u4"}`,
	}, seen)

	invalid := api.CreateTeam(ctx, teams.CreateInput{})
	assert.False(t, invalid.Success)
	assert.Contains(t, invalid.Message, "name: required")
	assert.Len(t, seen, 8)
}

func TestCreateHackathon_JSONAndMultipart(t *testing.T) {
	var contentTypes []string
	api, _ := newTestAPI(t, map[string]http.HandlerFunc{
		"POST /api/v1/admin/hackathons": func(w http.ResponseWriter, r *http.Request) {
			contentTypes = append(contentTypes, r.Header.Get("Content-Type"))
			if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "ITAM Hack", r.FormValue("name"))
				assert.Equal(t, "2024-03-15T10:00:00Z", r.FormValue("date_starts"))
			}
			w.WriteHeader(http.StatusCreated)
			jsonReply(`{"id":"h1","name":"ITAM Hack","date_starts":"2024-03-15T10:00:00Z"}`)(w, r)
		},
	})
	start := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	in := hackathons.Input{
		Name:          "ITAM Hack",
		StartsAt:      start,
		EndsAt:        start.Add(48 * time.Hour),
		RegisterStart: start.AddDate(0, -1, 0),
		RegisterEnd:   start.AddDate(0, 0, -1),
	}
	ctx := context.Background()

	resp := api.CreateHackathon(ctx, in, nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "15.03.2024", resp.Data.Date)
	assert.Equal(t, http.StatusCreated, resp.Status)

	resp = api.CreateHackathon(ctx, in, &Image{Filename: "cover.png", Data: []byte("\x89PNG\r\n\x1a\n")})
	require.True(t, resp.Success, resp.Message)

	require.Len(t, contentTypes, 2)
	assert.Equal(t, "application/json", contentTypes[0])
	assert.True(t, strings.HasPrefix(contentTypes[1], "multipart/form-data; boundary="))

	resp = api.CreateHackathon(ctx, hackathons.Input{Name: "x"}, nil)
	assert.False(t, resp.Success)
	assert.Len(t, contentTypes, 2)
}

func TestAdminOperations(t *testing.T) {
	api, _ := newTestAPI(t, map[string]http.HandlerFunc{
		"POST /api/v1/admin/hackathons/h1/finish":   jsonReply(`{"message":"done","achievements_created":6,"achievements_skipped":1,"total_participants":7}`),
		"GET /api/v1/admin/analytics/hackathon/h1":  jsonReply(`{"hackathon_stats":{"hackathon_id":"h1","total_participants":7,"total_teams":2},"team_compositions":[]}`),
		"GET /api/v1/admin/settings":                jsonReply(`[{"id":"a1","email":"root@hack.local","is_active":true}]`),
		"POST /api/v1/admin/settings":               jsonReply(`{"id":"a2","email":"new@hack.local"}`),
		"POST /api/v1/admin/settings/a2/deactivate": jsonReply(`{"id":"a2","is_active":false}`),
		"DELETE /api/v1/admin/hackathons/h1": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})
	ctx := context.Background()

	finish := api.FinishHackathon(ctx, "h1")
	require.True(t, finish.Success)
	assert.Equal(t, 6, finish.Data.AchievementsCreated)

	stats := api.HackathonAnalytics(ctx, "h1")
	require.True(t, stats.Success)
	assert.Equal(t, 7, stats.Data.HackathonStats.TotalParticipants)

	list := api.ListAdmins(ctx)
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)

	created := api.CreateAdmin(ctx, admins.CreateInput{Email: "new@hack.local", Password: "password1"})
	require.True(t, created.Success, created.Message)
	assert.Equal(t, "a2", created.Data.ID)

	assert.True(t, api.DeactivateAdmin(ctx, "a2").Success)
	assert.True(t, api.DeleteHackathon(ctx, "h1").Success)

	missing := api.ActivateAdmin(ctx, "zzz")
	assert.False(t, missing.Success)
	assert.Equal(t, "Not Found", missing.Message)
}

func TestSendAnketa_MarksProfile(t *testing.T) {
	api, store := newTestAPI(t, map[string]http.HandlerFunc{
		"POST /api/v1/anketa": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})
	a := users.Anketa{Name: "Иван", LastName: "Петров", Role: "Frontend", Contacts: "@ivan"}

	resp := api.CreateOrUpdateAnketa(context.Background(), a)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, a, resp.Data)
	assert.True(t, store.HasProfile())
}
