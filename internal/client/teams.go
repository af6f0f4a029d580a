package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/teams"
)

func (a *API) teamResponse(r Response[json.RawMessage]) Response[teams.Team] {
	return Map(r, func(raw json.RawMessage) (teams.Team, error) {
		return teams.FromWire(raw, a.loc)
	})
}

func (a *API) teamsResponse(r Response[json.RawMessage]) Response[[]teams.Team] {
	return Map(r, func(raw json.RawMessage) ([]teams.Team, error) {
		return teams.ListFromWire(raw, a.loc)
	})
}

func (a *API) GetTeam(ctx context.Context, id string) Response[teams.Team] {
	return a.teamResponse(a.get(ctx, path("/api/v1/teams", id)))
}

// GetMyTeam returns the current user's team. With a hackathon id the team of
// that hackathon is picked, otherwise the first one.
func (a *API) GetMyTeam(ctx context.Context, hackathonID string) Response[teams.Team] {
	r := a.get(ctx, "/api/v1/teams/my")
	if !r.Success {
		return Forward[teams.Team](r)
	}
	team, ok, err := teams.PickForHackathon(r.Data, hackathonID, a.loc)
	if err != nil {
		return Fail[teams.Team](err.Error(), r.Status)
	}
	if !ok {
		return Fail[teams.Team](MsgNoTeam, r.Status)
	}
	return OK(team, r.Status)
}

// ListTeams lists every team. Organizers use the admin endpoint.
func (a *API) ListTeams(ctx context.Context) Response[[]teams.Team] {
	endpoint := "/api/v1/teams"
	if a.session.IsAdmin() {
		endpoint = "/api/v1/admin/teams"
	}
	return a.teamsResponse(a.get(ctx, endpoint))
}

// ListUserTeams lists the teams a user has been in.
func (a *API) ListUserTeams(ctx context.Context, userID string, admin bool) Response[[]teams.Team] {
	endpoint := path("/api/v1/profile", userID, "teams")
	if admin {
		endpoint = path("/api/v1/admin/participants", userID, "teams")
	}
	return a.teamsResponse(a.get(ctx, endpoint))
}

func (a *API) CreateTeam(ctx context.Context, in teams.CreateInput) Response[teams.Team] {
	if err := in.Validate(); err != nil {
		return invalid[teams.Team](err)
	}
	return a.teamResponse(a.raw(ctx, http.MethodPost, "/api/v1/teams", in))
}

func (a *API) UpdateTeamName(ctx context.Context, teamID, name string) Response[teams.Team] {
	in := teams.RenameInput{Name: name}
	if err := in.Validate(); err != nil {
		return invalid[teams.Team](err)
	}
	return a.teamResponse(a.raw(ctx, http.MethodPut, path("/api/v1/teams", teamID), in))
}

type memberBody struct {
	UserID string `json:"user_id"`
}

// AddMemberToTeam adds a user to a team the current user captains.
func (a *API) AddMemberToTeam(ctx context.Context, teamID, userID string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/teams", teamID, "members"), memberBody{UserID: userID})
}

// AddUserToTeam is the organizer variant of AddMemberToTeam, optionally
// scoped to a hackathon.
func (a *API) AddUserToTeam(ctx context.Context, teamID, userID, hackathonID string) Response[Ack] {
	endpoint := path("/api/v1/admin/teams", teamID, "members")
	if hackathonID != "" {
		endpoint = path("/api/v1/admin/hackathons", hackathonID, "teams", teamID, "members")
	}
	return a.ack(ctx, http.MethodPost, endpoint, memberBody{UserID: userID})
}

func (a *API) RemoveMemberFromTeam(ctx context.Context, teamID, userID string) Response[Ack] {
	return a.ack(ctx, http.MethodDelete, path("/api/v1/teams", teamID, "members", userID), nil)
}

func (a *API) InviteUserToTeam(ctx context.Context, teamID, userID string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/teams", teamID, "invite"), memberBody{UserID: userID})
}

func (a *API) LeaveTeam(ctx context.Context, teamID string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/teams", teamID, "leave"), nil)
}
