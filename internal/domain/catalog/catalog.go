// Package catalog holds the reference lists the API serves for filters:
// participant roles, technology stacks and hackathon organizers.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/validation"
)

// FilterOption is one selectable filter value.
type FilterOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type wireOption struct {
	ID    json.RawMessage `json:"id"`
	Label string          `json:"label"`
	Name  string          `json:"name"`
	Value string          `json:"value"`
}

// OptionsFromWire accepts option objects or plain strings. Missing ids are
// numbered from 1 and a missing label falls back to the value.
func OptionsFromWire(raw json.RawMessage) ([]FilterOption, error) {
	items, _ := wire.Items(raw)
	out := make([]FilterOption, 0, len(items))
	for i, item := range items {
		opt := FilterOption{}
		if s := wire.String(item); s != "" {
			opt.Label, opt.Value = s, s
		} else {
			var w wireOption
			if err := json.Unmarshal(item, &w); err != nil {
				return nil, fmt.Errorf("option %d: %w", i, err)
			}
			opt = FilterOption{
				ID:    wire.String(w.ID),
				Label: wire.First(w.Label, w.Name, w.Value),
				Value: wire.First(w.Value, w.Label, w.Name),
			}
		}
		if opt.ID == "" {
			opt.ID = strconv.Itoa(i + 1)
		}
		if opt.Value == "" {
			continue
		}
		out = append(out, opt)
	}
	return out, nil
}

// OptionsFromValues builds options for distinct values in first-seen order.
func OptionsFromValues(values []string) []FilterOption {
	seen := make(map[string]bool, len(values))
	out := make([]FilterOption, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, FilterOption{ID: strconv.Itoa(len(out) + 1), Label: v, Value: v})
	}
	return out
}

// Organizer is a company or person running hackathons.
type Organizer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname,omitempty"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

type wireOrganizer struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	FirstName string          `json:"first_name"`
	Surname   string          `json:"surname"`
	LastName  string          `json:"last_name"`
	Company   string          `json:"company"`
	Email     string          `json:"email"`
	Avatar    string          `json:"avatar"`
	AvatarURL string          `json:"avatar_url"`
}

// OrganizersFromWire decodes the organizer list.
func OrganizersFromWire(raw json.RawMessage) ([]Organizer, error) {
	items, _ := wire.Items(raw)
	out := make([]Organizer, 0, len(items))
	for i, item := range items {
		var w wireOrganizer
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("organizer %d: %w", i, err)
		}
		out = append(out, Organizer{
			ID:      wire.String(w.ID),
			Name:    wire.First(w.Name, w.FirstName),
			Surname: wire.First(w.Surname, w.LastName),
			Company: w.Company,
			Email:   w.Email,
			Avatar:  wire.First(w.AvatarURL, w.Avatar),
		})
	}
	return out, nil
}

// OrganizerInput is the body for adding an organizer.
type OrganizerInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Surname string `json:"surname,omitempty" validate:"max=100"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Email   string `json:"email" validate:"required,email"`
}

func (in OrganizerInput) Validate() error {
	return validation.Struct(in)
}
