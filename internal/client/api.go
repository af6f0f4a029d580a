package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/domain/wire"
)

// Messages shown when the API gives nothing better.
const (
	MsgInvalidCode        = "Неверный код доступа"
	MsgInvalidCredentials = "Неверный email или пароль"
	MsgNoTeam             = "Вы не состоите в команде"
)

// Session is the client-side state API operations read and update.
// *session.Store implements it.
type Session interface {
	TokenSource
	SetToken(token string) error
	ClearSession() error
	SetHasProfile(v bool) error
	IsAdmin() bool
	SetIsAdmin(v bool) error
	SetCurrentUser(u users.User) error
}

// API exposes the hackathon endpoints as typed operations. Payloads are
// normalized through the domain packages before they are returned.
type API struct {
	c       *Client
	session Session
	loc     *time.Location
}

// NewAPI binds operations to a client and session. loc is the display
// timezone for dates; nil means time.Local.
func NewAPI(c *Client, s Session, loc *time.Location) *API {
	if loc == nil {
		loc = time.Local
	}
	return &API{c: c, session: s, loc: loc}
}

// Client returns the underlying HTTP client.
func (a *API) Client() *Client {
	return a.c
}

// IsAdmin reports whether the session belongs to an organizer.
func (a *API) IsAdmin() bool {
	return a.session.IsAdmin()
}

// Ack is the result of a call whose response body only matters for its message.
type Ack struct {
	Message string `json:"message,omitempty"`
}

func (a *API) raw(ctx context.Context, method, endpoint string, body any) Response[json.RawMessage] {
	return Request[json.RawMessage](ctx, a.c, endpoint, RequestOptions{Method: method, Body: body})
}

func (a *API) get(ctx context.Context, endpoint string) Response[json.RawMessage] {
	return a.raw(ctx, http.MethodGet, endpoint, nil)
}

func (a *API) ack(ctx context.Context, method, endpoint string, body any) Response[Ack] {
	return Map(a.raw(ctx, method, endpoint, body), func(raw json.RawMessage) (Ack, error) {
		var payload struct {
			Message json.RawMessage `json:"message"`
			Detail  json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Ack{}, nil
		}
		return Ack{Message: wire.First(wire.String(payload.Message), wire.String(payload.Detail))}, nil
	})
}

// invalid turns a validation error into a failed response without calling the API.
func invalid[T any](err error) Response[T] {
	return Fail[T](err.Error(), 0)
}

// path joins endpoint segments, escaping each id.
func path(prefix string, segments ...string) string {
	p := prefix
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}
