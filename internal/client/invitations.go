package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/invitations"
)

func (a *API) ListInvitations(ctx context.Context) Response[[]invitations.Invitation] {
	return Map(a.get(ctx, "/api/v1/invitations/my"), func(raw json.RawMessage) ([]invitations.Invitation, error) {
		return invitations.ListFromWire(raw, a.loc)
	})
}

func (a *API) AcceptInvitation(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/invitations", id, "accept"), nil)
}

func (a *API) RejectInvitation(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/invitations", id, "reject"), nil)
}
