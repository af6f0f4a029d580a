package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/domain/analytics"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
)

// Image is an optional cover picture sent with a hackathon.
type Image struct {
	Filename string
	Data     []byte
}

// hackathonBody is JSON, or multipart when an image is attached.
func hackathonBody(in hackathons.Input, image *Image) any {
	if image == nil || len(image.Data) == 0 {
		return in.Wire()
	}
	fields := in.Fields()
	form := NewForm()
	for _, key := range []string{
		"name", "describe", "date_starts", "date_end", "register_start",
		"register_end", "location", "max_team_size", "image_url",
	} {
		if v, ok := fields[key]; ok {
			form.Field(key, v)
		}
	}
	return form.File("image", image.Filename, image.Data)
}

func (a *API) hackathonResponse(r Response[json.RawMessage]) Response[hackathons.Hackathon] {
	return Map(r, func(raw json.RawMessage) (hackathons.Hackathon, error) {
		return hackathons.FromWire(raw, a.loc)
	})
}

func (a *API) CreateHackathon(ctx context.Context, in hackathons.Input, image *Image) Response[hackathons.Hackathon] {
	if err := in.ValidateCreate(); err != nil {
		return invalid[hackathons.Hackathon](err)
	}
	return a.hackathonResponse(a.raw(ctx, http.MethodPost, "/api/v1/admin/hackathons", hackathonBody(in, image)))
}

func (a *API) ListAdminHackathons(ctx context.Context) Response[[]hackathons.Hackathon] {
	return Map(a.get(ctx, "/api/v1/admin/hackathons"), func(raw json.RawMessage) ([]hackathons.Hackathon, error) {
		return hackathons.ListFromWire(raw, a.loc)
	})
}

func (a *API) GetAdminHackathon(ctx context.Context, id string) Response[hackathons.Hackathon] {
	return a.hackathonResponse(a.get(ctx, path("/api/v1/admin/hackathons", id)))
}

func (a *API) UpdateHackathon(ctx context.Context, id string, in hackathons.Input, image *Image) Response[hackathons.Hackathon] {
	imageOnly := image != nil && in == (hackathons.Input{})
	if !imageOnly {
		if err := in.ValidateUpdate(); err != nil {
			return invalid[hackathons.Hackathon](err)
		}
	}
	return a.hackathonResponse(a.raw(ctx, http.MethodPut, path("/api/v1/admin/hackathons", id), hackathonBody(in, image)))
}

func (a *API) DeleteHackathon(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodDelete, path("/api/v1/admin/hackathons", id), nil)
}

// FinishHackathon closes a hackathon and awards achievements to its teams.
func (a *API) FinishHackathon(ctx context.Context, id string) Response[hackathons.FinishResult] {
	return Request[hackathons.FinishResult](ctx, a.c, path("/api/v1/admin/hackathons", id, "finish"),
		RequestOptions{Method: http.MethodPost})
}

func (a *API) HackathonAnalytics(ctx context.Context, id string) Response[analytics.Analytics] {
	return Map(a.get(ctx, path("/api/v1/admin/analytics/hackathon", id)), analytics.FromWire)
}

// ExportHackathon downloads the team roster of a hackathon as CSV.
func (a *API) ExportHackathon(ctx context.Context, id string) Response[ExportFile] {
	return Download(ctx, a.c, path("/api/v1/admin/hackathons", id, "export"))
}

func (a *API) ListAdmins(ctx context.Context) Response[[]admins.Admin] {
	return Map(a.get(ctx, "/api/v1/admin/settings"), func(raw json.RawMessage) ([]admins.Admin, error) {
		return admins.ListFromWire(raw, a.loc)
	})
}

func (a *API) adminResponse(r Response[json.RawMessage]) Response[admins.Admin] {
	return Map(r, func(raw json.RawMessage) (admins.Admin, error) {
		return admins.FromWire(raw, a.loc)
	})
}

func (a *API) CreateAdmin(ctx context.Context, in admins.CreateInput) Response[admins.Admin] {
	if err := in.Validate(); err != nil {
		return invalid[admins.Admin](err)
	}
	return a.adminResponse(a.raw(ctx, http.MethodPost, "/api/v1/admin/settings", in))
}

// UpdateAdminProfile edits the signed-in organizer's own profile.
func (a *API) UpdateAdminProfile(ctx context.Context, in admins.ProfileUpdate) Response[admins.Admin] {
	if err := in.Validate(); err != nil {
		return invalid[admins.Admin](err)
	}
	return a.adminResponse(a.raw(ctx, http.MethodPut, "/api/v1/admin/settings/me", in))
}

func (a *API) ActivateAdmin(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/admin/settings", id, "activate"), nil)
}

func (a *API) DeactivateAdmin(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodPost, path("/api/v1/admin/settings", id, "deactivate"), nil)
}

func (a *API) DeleteAdmin(ctx context.Context, id string) Response[Ack] {
	return a.ack(ctx, http.MethodDelete, path("/api/v1/admin/settings", id), nil)
}
