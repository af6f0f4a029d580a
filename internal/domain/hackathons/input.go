package hackathons

import (
	"errors"
	"strconv"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/validation"
)

// Input carries the fields an organizer sets when creating or editing a
// hackathon. Zero values mean "not set".
type Input struct {
	Name          string
	Description   string
	StartsAt      time.Time
	EndsAt        time.Time
	RegisterStart time.Time
	RegisterEnd   time.Time
	Location      string
	MaxTeamSize   int
	ImageURL      string
}

type createRules struct {
	Name          string    `json:"name" validate:"required,max=200"`
	DateStarts    time.Time `json:"date_starts" validate:"required"`
	DateEnd       time.Time `json:"date_end" validate:"required,gtefield=DateStarts"`
	RegisterStart time.Time `json:"register_start" validate:"required"`
	RegisterEnd   time.Time `json:"register_end" validate:"required,gtefield=RegisterStart"`
	MaxTeamSize   int       `json:"max_team_size" validate:"omitempty,min=1,max=20"`
	ImageURL      string    `json:"image_url" validate:"omitempty,url"`
}

type updateRules struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	MaxTeamSize int    `json:"max_team_size" validate:"omitempty,min=1,max=20"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// ValidateCreate requires a name and all four dates, with each end on or after
// its start.
func (in Input) ValidateCreate() error {
	return validation.Struct(createRules{
		Name:          in.Name,
		DateStarts:    in.StartsAt,
		DateEnd:       in.EndsAt,
		RegisterStart: in.RegisterStart,
		RegisterEnd:   in.RegisterEnd,
		MaxTeamSize:   in.MaxTeamSize,
		ImageURL:      in.ImageURL,
	})
}

// ValidateUpdate checks only the fields that are set. Date ordering is checked
// when both ends of a range are given.
func (in Input) ValidateUpdate() error {
	if in.empty() {
		return errors.New("nothing to update")
	}
	var problems validation.FieldErrors
	if err := validation.Struct(updateRules{Name: in.Name, MaxTeamSize: in.MaxTeamSize, ImageURL: in.ImageURL}); err != nil {
		var fe validation.FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		problems = append(problems, fe...)
	}
	if !in.StartsAt.IsZero() && !in.EndsAt.IsZero() && in.EndsAt.Before(in.StartsAt) {
		problems = append(problems, "date_end: must not be before date_starts")
	}
	if !in.RegisterStart.IsZero() && !in.RegisterEnd.IsZero() && in.RegisterEnd.Before(in.RegisterStart) {
		problems = append(problems, "register_end: must not be before register_start")
	}
	if len(problems) > 0 {
		return problems
	}
	return nil
}

func (in Input) empty() bool {
	return in.Name == "" && in.Description == "" && in.Location == "" && in.ImageURL == "" &&
		in.MaxTeamSize == 0 && in.StartsAt.IsZero() && in.EndsAt.IsZero() &&
		in.RegisterStart.IsZero() && in.RegisterEnd.IsZero()
}

// Fields renders the set fields under their wire names. Dates use the ISO
// wire form; numbers are rendered as decimal strings.
func (in Input) Fields() map[string]string {
	out := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	setTime := func(key string, t time.Time) {
		if !t.IsZero() {
			out[key] = dates.FormatISO(t)
		}
	}
	set("name", in.Name)
	set("describe", in.Description)
	set("location", in.Location)
	set("image_url", in.ImageURL)
	setTime("date_starts", in.StartsAt)
	setTime("date_end", in.EndsAt)
	setTime("register_start", in.RegisterStart)
	setTime("register_end", in.RegisterEnd)
	if in.MaxTeamSize > 0 {
		out["max_team_size"] = strconv.Itoa(in.MaxTeamSize)
	}
	return out
}

// Wire is the JSON request body: Fields with max_team_size as a number.
func (in Input) Wire() map[string]any {
	out := make(map[string]any, 9)
	for k, v := range in.Fields() {
		out[k] = v
	}
	if in.MaxTeamSize > 0 {
		out["max_team_size"] = in.MaxTeamSize
	}
	return out
}
