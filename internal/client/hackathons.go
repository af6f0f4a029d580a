package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/hackathons"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
)

func (a *API) ListHackathons(ctx context.Context) Response[[]hackathons.Hackathon] {
	return Map(a.get(ctx, "/api/v1/hackathons"), func(raw json.RawMessage) ([]hackathons.Hackathon, error) {
		return hackathons.ListFromWire(raw, a.loc)
	})
}

func (a *API) GetHackathon(ctx context.Context, id string) Response[hackathons.Hackathon] {
	return Map(a.get(ctx, path("/api/v1/hackathons", id, "info")), func(raw json.RawMessage) (hackathons.Hackathon, error) {
		return hackathons.FromWire(raw, a.loc)
	})
}

// ListMyHackathons lists the hackathons the current user takes part in.
func (a *API) ListMyHackathons(ctx context.Context) Response[[]hackathons.MyHackathon] {
	return Map(a.get(ctx, "/api/v1/hackathons/my"), func(raw json.RawMessage) ([]hackathons.MyHackathon, error) {
		return hackathons.MyListFromWire(raw, a.loc)
	})
}

func (a *API) RegisterForHackathon(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/hackathons", id, "register"), nil)
}

func (a *API) UnregisterFromHackathon(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodDelete, path("/api/v1/hackathons", id, "unregister"), nil)
}

func (a *API) ListHackathonParticipants(ctx context.Context, id string) Response[[]users.User] {
	return Map(a.get(ctx, path("/api/v1/hackathons", id, "participants")), users.ListFromWire)
}

// GetHackathonTeam returns the current user's team in a hackathon.
func (a *API) GetHackathonTeam(ctx context.Context, id string) Response[teams.Team] {
	r := a.get(ctx, path("/api/v1/hackathons", id, "team"))
	if !r.Success {
		return Forward[teams.Team](r)
	}
	team, ok, err := teams.PickForHackathon(r.Data, "", a.loc)
	if err != nil {
		return Fail[teams.Team](err.Error(), r.Status)
	}
	if !ok {
		return Fail[teams.Team](MsgNoTeam, r.Status)
	}
	return OK(team, r.Status)
}
