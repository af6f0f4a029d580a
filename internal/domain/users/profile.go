package users

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/validation"
)

// Achievement is a hackathon result on a participant's profile.
type Achievement struct {
	HackathonID   string `json:"hackathon_id,omitempty"`
	HackathonName string `json:"hackathon_name"`
	Result        string `json:"result,omitempty"`
	Role          string `json:"role,omitempty"`
	Date          string `json:"date,omitempty"`
}

type wireAchievement struct {
	HackathonID   json.RawMessage `json:"hackathon_id"`
	ID            json.RawMessage `json:"id"`
	HackathonName string          `json:"hackathon_name"`
	Name          string          `json:"name"`
	Result        string          `json:"result"`
	Description   string          `json:"description"`
	Role          string          `json:"role"`
	Date          string          `json:"date"`
}

// AchievementsFromWire decodes an achievement list.
func AchievementsFromWire(raw json.RawMessage, loc *time.Location) ([]Achievement, error) {
	if loc == nil {
		loc = time.Local
	}
	items, _ := wire.Items(raw)
	out := make([]Achievement, 0, len(items))
	for i, item := range items {
		var w wireAchievement
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("achievement %d: %w", i, err)
		}
		out = append(out, Achievement{
			HackathonID:   wire.First(wire.String(w.HackathonID), wire.String(w.ID)),
			HackathonName: wire.First(w.HackathonName, w.Name),
			Result:        wire.First(w.Result, w.Description),
			Role:          w.Role,
			Date:          dates.FormatToDisplayIn(w.Date, loc),
		})
	}
	return out, nil
}

// Anketa is a participant's questionnaire: the profile a user fills in after
// the first login.
type Anketa struct {
	Name       string `json:"name" yaml:"name" validate:"required,max=100"`
	LastName   string `json:"last_name" yaml:"last_name" validate:"required,max=100"`
	Role       string `json:"role" yaml:"role" validate:"required,max=100"`
	Contacts   string `json:"contacts" yaml:"contacts" validate:"required,max=200"`
	Skills     string `json:"skills,omitempty" yaml:"skills,omitempty" validate:"max=500"`
	Experience string `json:"experience,omitempty" yaml:"experience,omitempty" validate:"max=1000"`
	Bio        string `json:"bio,omitempty" yaml:"bio,omitempty" validate:"max=2000"`
}

func (a Anketa) Validate() error {
	return validation.Struct(a)
}

// AnketaFromWire decodes a questionnaire payload.
func AnketaFromWire(raw json.RawMessage) (Anketa, error) {
	var a Anketa
	if err := json.Unmarshal(raw, &a); err != nil {
		return Anketa{}, fmt.Errorf("decode anketa: %w", err)
	}
	return a, nil
}

// User projects the questionnaire onto a profile.
func (a Anketa) User(id string) User {
	return User{
		ID:      id,
		Name:    a.Name,
		Surname: a.LastName,
		Role:    a.Role,
		Skills:  wire.SplitList(a.Skills),
		About:   a.Bio,
	}
}
