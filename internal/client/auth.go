package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/domain/wire"
)

// LoginResult is the participant who logged in and whether they have filled
// in their questionnaire.
type LoginResult struct {
	User       users.User `json:"user"`
	HasProfile bool       `json:"has_profile"`
}

type loginPayload struct {
	AccessToken string          `json:"access_token"`
	Token       string          `json:"token"`
	User        json.RawMessage `json:"user"`
	HasAnketa   json.RawMessage `json:"has_anketa"`
	HasProfile  json.RawMessage `json:"has_profile"`
	Admin       json.RawMessage `json:"admin"`
}

func (p loginPayload) token() string {
	return wire.First(p.AccessToken, p.Token)
}

func (p loginPayload) hasProfile() bool {
	if v, ok := wire.Bool(p.HasAnketa); ok {
		return v
	}
	if v, ok := wire.Bool(p.HasProfile); ok {
		return v
	}
	var nested struct {
		HasAnketa json.RawMessage `json:"has_anketa"`
	}
	if len(p.User) > 0 && json.Unmarshal(p.User, &nested) == nil {
		v, _ := wire.Bool(nested.HasAnketa)
		return v
	}
	return false
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// Login exchanges a participant access code for a session. The token and
// profile flag are stored even when the response carries no user.
func (a *API) Login(ctx context.Context, code string) Response[LoginResult] {
	r := a.raw(ctx, http.MethodPost, "/api/v1/auth/code", map[string]string{"code": code})
	if !r.Success {
		return Forward[LoginResult](r)
	}

	var p loginPayload
	if err := json.Unmarshal(r.Data, &p); err != nil {
		return Fail[LoginResult](MsgInvalidCode, r.Status)
	}
	if token := p.token(); token != "" {
		if err := a.session.SetToken(token); err != nil {
			return Fail[LoginResult](fmt.Sprintf("save session: %v", err), r.Status)
		}
		if err := a.session.SetIsAdmin(false); err != nil {
			return Fail[LoginResult](fmt.Sprintf("save session: %v", err), r.Status)
		}
	}
	hasProfile := p.hasProfile()
	if err := a.session.SetHasProfile(hasProfile); err != nil {
		return Fail[LoginResult](fmt.Sprintf("save session: %v", err), r.Status)
	}
	if !present(p.User) {
		return Fail[LoginResult](MsgInvalidCode, r.Status)
	}

	u, err := users.FromWire(p.User)
	if err != nil {
		return Fail[LoginResult](err.Error(), r.Status)
	}
	if u.UserRole == "" {
		u.UserRole = users.SystemRoleUser
	}
	if err := a.session.SetCurrentUser(u); err != nil {
		return Fail[LoginResult](fmt.Sprintf("save session: %v", err), r.Status)
	}
	return OK(LoginResult{User: u, HasProfile: hasProfile}, r.Status)
}

// AdminLogin signs an organizer in with email and password.
func (a *API) AdminLogin(ctx context.Context, email, password string) Response[users.User] {
	creds := admins.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return invalid[users.User](err)
	}
	r := a.raw(ctx, http.MethodPost, "/api/v1/auth/admin/login", creds)
	if !r.Success {
		return Forward[users.User](r)
	}

	var p loginPayload
	if err := json.Unmarshal(r.Data, &p); err != nil {
		return Fail[users.User](MsgInvalidCredentials, r.Status)
	}
	token := p.token()
	if token != "" {
		if err := a.session.SetToken(token); err != nil {
			return Fail[users.User](fmt.Sprintf("save session: %v", err), r.Status)
		}
		if err := a.session.SetIsAdmin(true); err != nil {
			return Fail[users.User](fmt.Sprintf("save session: %v", err), r.Status)
		}
	}

	var u users.User
	switch {
	case present(p.Admin):
		admin, err := admins.FromWire(p.Admin, a.loc)
		if err != nil {
			return Fail[users.User](err.Error(), r.Status)
		}
		u = admin.AsUser()
		u.Role = admin.Role
	case token != "":
		u = users.User{Name: "Admin", Role: "admin", UserRole: users.SystemRoleAdmin}
	default:
		return Fail[users.User](MsgInvalidCredentials, r.Status)
	}
	if err := a.session.SetCurrentUser(u); err != nil {
		return Fail[users.User](fmt.Sprintf("save session: %v", err), r.Status)
	}
	return OK(u, r.Status)
}

// Logout forgets the token and session flags. It does not call the API.
func (a *API) Logout(context.Context) Response[Ack] {
	if err := a.session.ClearSession(); err != nil {
		return Fail[Ack](fmt.Sprintf("clear session: %v", err), 0)
	}
	return OK(Ack{}, 0)
}
