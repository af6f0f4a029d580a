// Package invitations normalizes team invitations and join requests.
package invitations

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/wire"
)

// Type tells who started the exchange.
type Type string

const (
	TypeInvite  Type = "invite"
	TypeRequest Type = "request"
)

// Status of an invitation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Person is the sender as shown next to the invitation.
type Person struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

// Ref names a related hackathon or team.
type Ref struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Invitation struct {
	ID         string `json:"id"`
	Type       Type   `json:"type"`
	TeamID     string `json:"team_id,omitempty"`
	SenderID   string `json:"sender_id,omitempty"`
	ReceiverID string `json:"receiver_id,omitempty"`
	Status     Status `json:"status"`
	CreatedAt  string `json:"created_at,omitempty"`
	ReadAt     string `json:"read_at,omitempty"`
	FromUser   Person `json:"from_user"`
	Hackathon  Ref    `json:"hackathon"`
	Team       Ref    `json:"team"`
}

// Pending reports whether the invitation still awaits an answer.
func (i Invitation) Pending() bool {
	return i.Status == StatusPending
}

// Read reports whether the receiver has opened the invitation.
func (i Invitation) Read() bool {
	return i.ReadAt != ""
}

type wirePerson struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	FirstName string          `json:"first_name"`
	Surname   string          `json:"surname"`
	LastName  string          `json:"last_name"`
	Avatar    string          `json:"avatar"`
	AvatarURL string          `json:"avatar_url"`
}

type wireRef struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
}

type wireInvitation struct {
	ID             json.RawMessage `json:"id"`
	InvitationType string          `json:"invitation_type"`
	Type           string          `json:"type"`
	TeamID         json.RawMessage `json:"team_id"`
	SenderID       json.RawMessage `json:"sender_id"`
	ReceiverID     json.RawMessage `json:"receiver_id"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at"`
	CreatedAtCamel string          `json:"createdAt"`
	ReadAt         string          `json:"read_at"`
	Read           json.RawMessage `json:"read"`
	FromUser       *wirePerson     `json:"fromUser"`
	Sender         *wirePerson     `json:"sender"`
	Hackathon      *wireRef        `json:"hackathon"`
	Team           *wireRef        `json:"team"`
	TeamName       string          `json:"team_name"`
	HackathonName  string          `json:"hackathon_name"`
}

// FromWire decodes one invitation.
func FromWire(raw json.RawMessage, loc *time.Location) (Invitation, error) {
	var w wireInvitation
	if err := json.Unmarshal(raw, &w); err != nil {
		return Invitation{}, fmt.Errorf("decode invitation: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	inv := Invitation{
		ID:         wire.String(w.ID),
		Type:       Type(strings.ToLower(wire.First(w.InvitationType, w.Type, string(TypeInvite)))),
		TeamID:     wire.String(w.TeamID),
		SenderID:   wire.String(w.SenderID),
		ReceiverID: wire.String(w.ReceiverID),
		Status:     Status(strings.ToLower(wire.First(w.Status, string(StatusPending)))),
		CreatedAt:  dates.FormatToDisplayIn(wire.First(w.CreatedAt, w.CreatedAtCamel), loc),
		ReadAt:     dates.FormatToDisplayIn(w.ReadAt, loc),
		Team:       Ref{Name: w.TeamName},
		Hackathon:  Ref{Name: w.HackathonName},
	}
	if read, _ := wire.Bool(w.Read); read && inv.ReadAt == "" {
		inv.ReadAt = inv.CreatedAt
	}

	from := w.FromUser
	if from == nil {
		from = w.Sender
	}
	if from != nil {
		inv.FromUser = Person{
			ID:      wire.String(from.ID),
			Name:    wire.First(from.Name, from.FirstName),
			Surname: wire.First(from.Surname, from.LastName),
			Avatar:  wire.First(from.AvatarURL, from.Avatar),
		}
	}
	if inv.FromUser.ID == "" {
		inv.FromUser.ID = inv.SenderID
	}
	if inv.SenderID == "" {
		inv.SenderID = inv.FromUser.ID
	}
	if w.Team != nil {
		inv.Team = Ref{ID: wire.String(w.Team.ID), Name: wire.First(w.Team.Name, w.TeamName)}
	}
	if inv.Team.ID == "" {
		inv.Team.ID = inv.TeamID
	}
	if inv.TeamID == "" {
		inv.TeamID = inv.Team.ID
	}
	if w.Hackathon != nil {
		inv.Hackathon = Ref{ID: wire.String(w.Hackathon.ID), Name: wire.First(w.Hackathon.Name, w.HackathonName)}
	}
	return inv, nil
}

// ListFromWire decodes an invitation list.
func ListFromWire(raw json.RawMessage, loc *time.Location) ([]Invitation, error) {
	items, _ := wire.Items(raw)
	out := make([]Invitation, 0, len(items))
	for i, item := range items {
		inv, err := FromWire(item, loc)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, inv)
	}
	return out, nil
}

// PendingOnly keeps the invitations that still await an answer.
func PendingOnly(list []Invitation) []Invitation {
	out := make([]Invitation, 0, len(list))
	for _, inv := range list {
		if inv.Pending() {
			out = append(out, inv)
		}
	}
	return out
}

// CountUnread counts invitations the receiver has not opened.
func CountUnread(list []Invitation) int {
	n := 0
	for _, inv := range list {
		if !inv.Read() {
			n++
		}
	}
	return n
}
