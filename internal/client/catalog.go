package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/catalog"
)

func (a *API) ListRoles(ctx context.Context) Response[[]catalog.FilterOption] {
	return Map(a.get(ctx, "/api/v1/roles"), catalog.OptionsFromWire)
}

func (a *API) ListStacks(ctx context.Context) Response[[]catalog.FilterOption] {
	return Map(a.get(ctx, "/api/v1/stacks"), catalog.OptionsFromWire)
}

func (a *API) ListOrganizers(ctx context.Context) Response[[]catalog.Organizer] {
	return Map(a.get(ctx, "/api/v1/organizers"), catalog.OrganizersFromWire)
}

func (a *API) AddOrganizer(ctx context.Context, in catalog.OrganizerInput) Response[catalog.Organizer] {
	if err := in.Validate(); err != nil {
		return invalid[catalog.Organizer](err)
	}
	return Map(a.raw(ctx, http.MethodPost, "/api/v1/organizers", in), func(raw json.RawMessage) (catalog.Organizer, error) {
		list, err := catalog.OrganizersFromWire(raw)
		if err != nil || len(list) == 0 {
			return catalog.Organizer{}, err
		}
		return list[0], nil
	})
}
