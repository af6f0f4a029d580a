// Package teams normalizes team payloads. The captain is always the member
// named by the team's id_capitan field.
package teams

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/sanitize"
	"github.com/itamhack/hackctl/internal/validation"
)

type Member struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	JoinedAt  string `json:"joined_at,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

type Team struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	HackathonID   string   `json:"hackathon_id,omitempty"`
	HackathonName string   `json:"hackathon_name,omitempty"`
	CaptainID     string   `json:"captain_id,omitempty"`
	MaxSize       int      `json:"max_size,omitempty"`
	Status        string   `json:"status,omitempty"`
	Description   string   `json:"description,omitempty"`
	CreatedAt     string   `json:"created_at,omitempty"`
	IsActive      bool     `json:"is_active"`
	Members       []Member `json:"members"`
}

// Captain returns the member whose id matches CaptainID.
func (t Team) Captain() (Member, bool) {
	if t.CaptainID == "" {
		return Member{}, false
	}
	for _, m := range t.Members {
		if m.UserID == t.CaptainID {
			return m, true
		}
	}
	return Member{}, false
}

// IsCaptain reports whether userID leads the team.
func (t Team) IsCaptain(userID string) bool {
	return userID != "" && userID == t.CaptainID
}

// HasMember reports whether userID belongs to the team.
func (t Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// Full reports whether the team has reached MaxSize. Teams without a limit
// are never full.
func (t Team) Full() bool {
	return t.MaxSize > 0 && len(t.Members) >= t.MaxSize
}

// DisplayName prefers a locally saved name for the team's hackathon.
func (t Team) DisplayName(override string) string {
	if override = strings.TrimSpace(override); override != "" {
		return override
	}
	return t.Name
}

type wireMember struct {
	UserID     json.RawMessage `json:"user_id"`
	ID         json.RawMessage `json:"id"`
	FirstName  string          `json:"first_name"`
	Name       string          `json:"name"`
	LastName   string          `json:"last_name"`
	Surname    string          `json:"surname"`
	Role       string          `json:"role"`
	UserAvatar string          `json:"user_avatar"`
	AvatarURL  string          `json:"avatar_url"`
	Avatar     string          `json:"avatar"`
	JoinedAt   string          `json:"joined_at"`
}

type wireTeam struct {
	ID            json.RawMessage `json:"id"`
	Name          string          `json:"name"`
	IDHackathon   json.RawMessage `json:"id_hackathon"`
	HackathonID   json.RawMessage `json:"hackathon_id"`
	HackathonName string          `json:"hackathon_name"`
	IDCapitan     json.RawMessage `json:"id_capitan"`
	CaptainID     json.RawMessage `json:"captain_id"`
	MaxSize       json.RawMessage `json:"max_size"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	CreatedAt     string          `json:"created_at"`
	IsActive      json.RawMessage `json:"is_active"`
	Members       []wireMember    `json:"members"`
}

func (w wireTeam) team(loc *time.Location) Team {
	t := Team{
		ID:            wire.String(w.ID),
		Name:          sanitize.Text(w.Name),
		HackathonID:   wire.First(wire.String(w.IDHackathon), wire.String(w.HackathonID)),
		HackathonName: w.HackathonName,
		CaptainID:     wire.First(wire.String(w.IDCapitan), wire.String(w.CaptainID)),
		Status:        w.Status,
		Description:   sanitize.PlainText(w.Description),
		CreatedAt:     dates.FormatToDisplayIn(w.CreatedAt, loc),
		IsActive:      true,
		Members:       make([]Member, 0, len(w.Members)),
	}
	t.MaxSize, _ = wire.Int(w.MaxSize)
	if active, ok := wire.Bool(w.IsActive); ok {
		t.IsActive = active
	}
	for _, m := range w.Members {
		t.Members = append(t.Members, Member{
			UserID:    wire.First(wire.String(m.UserID), wire.String(m.ID)),
			FirstName: wire.First(m.FirstName, m.Name),
			LastName:  wire.First(m.LastName, m.Surname),
			Role:      m.Role,
			Avatar:    wire.First(m.UserAvatar, m.AvatarURL, m.Avatar),
			JoinedAt:  dates.FormatToDisplayIn(m.JoinedAt, loc),
		})
	}
	return t
}

// FromWire decodes one team object.
func FromWire(raw json.RawMessage, loc *time.Location) (Team, error) {
	var w wireTeam
	if err := json.Unmarshal(raw, &w); err != nil {
		return Team{}, fmt.Errorf("decode team: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return w.team(loc), nil
}

// ListFromWire decodes an array of teams, accepting a single object as a list of one.
func ListFromWire(raw json.RawMessage, loc *time.Location) ([]Team, error) {
	items, _ := wire.Items(raw)
	out := make([]Team, 0, len(items))
	for i, item := range items {
		t, err := FromWire(item, loc)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// PickForHackathon reads a "my team" payload, which may be one team or a list.
// From a list it picks the team of hackathonID, or the first team when
// hackathonID is empty. ok is false when no team matches.
func PickForHackathon(raw json.RawMessage, hackathonID string, loc *time.Location) (team Team, ok bool, err error) {
	list, err := ListFromWire(raw, loc)
	if err != nil {
		return Team{}, false, err
	}
	if len(list) == 0 {
		return Team{}, false, nil
	}
	if hackathonID == "" {
		return list[0], true, nil
	}
	for _, t := range list {
		if t.HackathonID == hackathonID {
			return t, true, nil
		}
	}
	return Team{}, false, nil
}

// MemberIDs collects the ids of everyone who belongs to any of the teams.
func MemberIDs(list []Team) map[string]bool {
	ids := make(map[string]bool)
	for _, t := range list {
		for _, m := range t.Members {
			if m.UserID != "" {
				ids[m.UserID] = true
			}
		}
	}
	return ids
}

// CreateInput is the body of a team creation request.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	HackathonID string `json:"hackathon_id,omitempty"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	MaxSize     int    `json:"max_size,omitempty" validate:"omitempty,min=1,max=20"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
}

func (in CreateInput) Validate() error {
	return validation.Struct(in)
}

// RenameInput is the body of a team rename request.
type RenameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (in RenameInput) Validate() error {
	return validation.Struct(in)
}
