package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/users"
)

// ListUsers lists participants. Organizers use the admin endpoint.
func (a *API) ListUsers(ctx context.Context) Response[[]users.User] {
	endpoint := "/api/v1/users"
	if a.session.IsAdmin() {
		endpoint = "/api/v1/admin/participants"
	}
	return Map(a.get(ctx, endpoint), users.ListFromWire)
}

// ListUsersWithoutTeam lists a hackathon's participants who have no team yet.
func (a *API) ListUsersWithoutTeam(ctx context.Context, hackathonID string) Response[[]users.User] {
	return Map(a.get(ctx, path("/api/v1/admin/hackathons", hackathonID, "participants", "without-team")), users.ListFromWire)
}

func (a *API) GetUser(ctx context.Context, id string, admin bool) Response[users.User] {
	endpoint := path("/api/v1/profile", id)
	if admin {
		endpoint = path("/api/v1/admin/participants", id)
	}
	return Map(a.get(ctx, endpoint), users.FromWire)
}

func (a *API) ListUserAchievements(ctx context.Context, id string, admin bool) Response[[]users.Achievement] {
	endpoint := path("/api/v1/profile", id, "achievements")
	if admin {
		endpoint = path("/api/v1/admin/participants", id, "achievements")
	}
	return Map(a.get(ctx, endpoint), func(raw json.RawMessage) ([]users.Achievement, error) {
		return users.AchievementsFromWire(raw, a.loc)
	})
}

func (a *API) GetMyAnketa(ctx context.Context) Response[users.Anketa] {
	return Map(a.get(ctx, "/api/v1/anketa/me"), users.AnketaFromWire)
}

// CreateOrUpdateAnketa submits the questionnaire and marks the session as
// having a profile.
func (a *API) CreateOrUpdateAnketa(ctx context.Context, in users.Anketa) Response[users.Anketa] {
	return a.sendAnketa(ctx, http.MethodPost, "/api/v1/anketa", in)
}

func (a *API) UpdateMyAnketa(ctx context.Context, in users.Anketa) Response[users.Anketa] {
	return a.sendAnketa(ctx, http.MethodPut, "/api/v1/anketa/me", in)
}

func (a *API) sendAnketa(ctx context.Context, method, endpoint string, in users.Anketa) Response[users.Anketa] {
	if err := in.Validate(); err != nil {
		return invalid[users.Anketa](err)
	}
	r := Map(a.raw(ctx, method, endpoint, in), func(raw json.RawMessage) (users.Anketa, error) {
		if !present(raw) {
			return in, nil
		}
		return users.AnketaFromWire(raw)
	})
	if r.Success {
		if err := a.session.SetHasProfile(true); err != nil {
			return Fail[users.Anketa](fmt.Sprintf("save session: %v", err), r.Status)
		}
	}
	return r
}
