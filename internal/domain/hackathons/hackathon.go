// Package hackathons normalizes hackathon payloads and implements the list
// filters the hackathon screens apply.
package hackathons

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/sanitize"
)

// Hackathon is the canonical hackathon. StartsAt and friends keep the wire
// value as received; Date is the display form of the start date.
type Hackathon struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date"`
	StartsAt      string `json:"date_starts,omitempty"`
	EndsAt        string `json:"date_end,omitempty"`
	RegisterStart string `json:"register_start,omitempty"`
	RegisterEnd   string `json:"register_end,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	Location      string `json:"location,omitempty"`
	MaxTeamSize   int    `json:"max_team_size,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Role a user holds in a hackathon they take part in.
type Role string

const (
	RoleCaptain Role = "captain"
	RoleMember  Role = "member"
)

// MyHackathon is a hackathon as listed for the current user.
type MyHackathon struct {
	Hackathon
	Role Role `json:"role"`
}

type wireHackathon struct {
	ID            json.RawMessage `json:"id"`
	HackathonID   json.RawMessage `json:"hackathon_id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Describe      string          `json:"describe"`
	Description   string          `json:"description"`
	DateStarts    string          `json:"date_starts"`
	StartDate     string          `json:"start_date"`
	Date          string          `json:"date"`
	DateEnd       string          `json:"date_end"`
	DateEnds      string          `json:"date_ends"`
	RegisterStart string          `json:"register_start"`
	RegisterEnd   string          `json:"register_end"`
	ImageURL      string          `json:"image_url"`
	ImageURLCamel string          `json:"imageUrl"`
	Image         string          `json:"image"`
	Location      string          `json:"location"`
	MaxTeamSize   json.RawMessage `json:"max_team_size"`
	CreatedAt     string          `json:"created_at"`
	Role          string          `json:"role"`
	IsCaptain     json.RawMessage `json:"is_captain"`
}

func (w wireHackathon) hackathon(loc *time.Location) Hackathon {
	h := Hackathon{
		ID:            wire.First(wire.String(w.ID), wire.String(w.HackathonID)),
		Name:          sanitize.Text(wire.First(w.Name, w.Title)),
		Description:   sanitize.PlainText(wire.First(w.Describe, w.Description)),
		StartsAt:      wire.First(w.DateStarts, w.StartDate),
		EndsAt:        wire.First(w.DateEnd, w.DateEnds),
		RegisterStart: w.RegisterStart,
		RegisterEnd:   w.RegisterEnd,
		ImageURL:      wire.First(w.ImageURL, w.ImageURLCamel, w.Image),
		Location:      w.Location,
		CreatedAt:     dates.FormatToDisplayIn(w.CreatedAt, loc),
	}
	h.MaxTeamSize, _ = wire.Int(w.MaxTeamSize)
	if h.StartsAt != "" {
		h.Date = dates.FormatToDisplayIn(h.StartsAt, loc)
	} else {
		// Older payloads carry a preformatted range like "15-17 марта 2024".
		h.Date = w.Date
	}
	return h
}

// FromWire decodes one hackathon payload. Display dates are rendered in loc;
// nil means time.Local.
func FromWire(raw json.RawMessage, loc *time.Location) (Hackathon, error) {
	var w wireHackathon
	if err := json.Unmarshal(raw, &w); err != nil {
		return Hackathon{}, fmt.Errorf("decode hackathon: %w", err)
	}
	return w.hackathon(orLocal(loc)), nil
}

// ListFromWire decodes a list payload, accepting a single object as a list of one.
func ListFromWire(raw json.RawMessage, loc *time.Location) ([]Hackathon, error) {
	items, _ := wire.Items(raw)
	out := make([]Hackathon, 0, len(items))
	for i, item := range items {
		h, err := FromWire(item, loc)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// MyListFromWire decodes the current user's hackathons. Entries without an
// explicit role are reported as member.
func MyListFromWire(raw json.RawMessage, loc *time.Location) ([]MyHackathon, error) {
	items, _ := wire.Items(raw)
	out := make([]MyHackathon, 0, len(items))
	for i, item := range items {
		var w wireHackathon
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("item %d: decode hackathon: %w", i, err)
		}
		role := RoleMember
		if captain, _ := wire.Bool(w.IsCaptain); captain || strings.EqualFold(w.Role, string(RoleCaptain)) {
			role = RoleCaptain
		}
		out = append(out, MyHackathon{Hackathon: w.hackathon(orLocal(loc)), Role: role})
	}
	return out, nil
}

// FilterByBuckets keeps the hackathons whose display date falls in any of the
// selected buckets. An empty selection keeps everything.
func FilterByBuckets(list []Hackathon, buckets []dates.Bucket, today time.Time) []Hackathon {
	out := make([]Hackathon, 0, len(list))
	for _, h := range list {
		if dates.MatchesAnyBucket(h.Date, buckets, today) {
			out = append(out, h)
		}
	}
	return out
}

// Search keeps hackathons whose name or description contains query, ignoring case.
func Search(list []Hackathon, query string) []Hackathon {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	out := make([]Hackathon, 0, len(list))
	for _, h := range list {
		if strings.Contains(strings.ToLower(h.Name), query) ||
			strings.Contains(strings.ToLower(h.Description), query) {
			out = append(out, h)
		}
	}
	return out
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
