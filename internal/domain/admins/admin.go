// Package admins covers organizer accounts managed from the admin settings.
package admins

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/validation"
)

type Admin struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Role        string   `json:"role,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	Company     string   `json:"company,omitempty"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// AsUser presents the admin as the current user. The name falls back to the
// local part of the email address.
func (a Admin) AsUser() users.User {
	name := a.FirstName
	if name == "" {
		name, _, _ = strings.Cut(a.Email, "@")
	}
	return users.User{
		ID:       a.ID,
		Name:     name,
		Surname:  a.LastName,
		Email:    a.Email,
		UserRole: users.SystemRoleAdmin,
	}
}

type wireAdmin struct {
	ID          json.RawMessage `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        string          `json:"role"`
	Permissions json.RawMessage `json:"permissions"`
	Company     string          `json:"company"`
	IsActive    json.RawMessage `json:"is_active"`
	CreatedAt   string          `json:"created_at"`
}

// FromWire decodes one admin. Admins are active unless the payload says otherwise.
func FromWire(raw json.RawMessage, loc *time.Location) (Admin, error) {
	var w wireAdmin
	if err := json.Unmarshal(raw, &w); err != nil {
		return Admin{}, fmt.Errorf("decode admin: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	a := Admin{
		ID:          wire.String(w.ID),
		Email:       w.Email,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Role:        w.Role,
		Permissions: wire.StringList(w.Permissions),
		Company:     w.Company,
		IsActive:    true,
		CreatedAt:   dates.FormatToDisplayIn(w.CreatedAt, loc),
	}
	if active, ok := wire.Bool(w.IsActive); ok {
		a.IsActive = active
	}
	return a, nil
}

// ListFromWire decodes an admin list.
func ListFromWire(raw json.RawMessage, loc *time.Location) ([]Admin, error) {
	items, _ := wire.Items(raw)
	out := make([]Admin, 0, len(items))
	for i, item := range items {
		a, err := FromWire(item, loc)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// CreateInput is the body for creating an admin account.
type CreateInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name,omitempty" validate:"max=100"`
	LastName  string `json:"last_name,omitempty" validate:"max=100"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=admin superadmin"`
	Company   string `json:"company,omitempty" validate:"max=200"`
}

func (in CreateInput) Validate() error {
	return validation.Struct(in)
}

// ProfileUpdate changes the signed-in admin's own profile.
type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty" validate:"max=100"`
	LastName  string `json:"last_name,omitempty" validate:"max=100"`
	Company   string `json:"company,omitempty" validate:"max=200"`
}

func (in ProfileUpdate) Validate() error {
	if in == (ProfileUpdate{}) {
		return fmt.Errorf("nothing to update")
	}
	return validation.Struct(in)
}

// Credentials is the admin login body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c Credentials) Validate() error {
	return validation.Struct(c)
}
