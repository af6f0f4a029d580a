// Package users normalizes participant and profile payloads and implements the
// participant filters.
package users

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itamhack/hackctl/internal/domain/wire"
	"github.com/itamhack/hackctl/internal/sanitize"
)

// SystemRole separates organizers from participants.
type SystemRole string

const (
	SystemRoleUser  SystemRole = "user"
	SystemRoleAdmin SystemRole = "admin"
)

// User is the canonical participant. Role is the team role a participant
// plays (Frontend, Designer, ...), UserRole the system role.
type User struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Surname    string     `json:"surname" yaml:"surname"`
	TelegramID string     `json:"telegram_id,omitempty" yaml:"telegram_id,omitempty"`
	Role       string     `json:"role,omitempty" yaml:"role,omitempty"`
	UserRole   SystemRole `json:"user_role,omitempty" yaml:"user_role,omitempty"`
	Skills     []string   `json:"skills,omitempty" yaml:"skills,omitempty"`
	University string     `json:"university,omitempty" yaml:"university,omitempty"`
	About      string     `json:"about,omitempty" yaml:"about,omitempty"`
	Avatar     string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Email      string     `json:"email,omitempty" yaml:"email,omitempty"`
}

// FullName joins name and surname.
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// IsAdmin reports whether the user is an organizer.
func (u User) IsAdmin() bool {
	return u.UserRole == SystemRoleAdmin
}

type wireNested struct {
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	AvatarURL  string          `json:"avatar_url"`
	TelegramID json.RawMessage `json:"telegram_id"`
	Email      string          `json:"email"`
}

type wireUser struct {
	UserID         json.RawMessage `json:"user_id"`
	ID             json.RawMessage `json:"id"`
	FirstName      string          `json:"first_name"`
	Name           string          `json:"name"`
	FirstNameCamel string          `json:"firstName"`
	LastName       string          `json:"last_name"`
	Surname        string          `json:"surname"`
	LastNameCamel  string          `json:"lastName"`
	TelegramID     json.RawMessage `json:"telegram_id"`
	Role           string          `json:"role"`
	UserRole       string          `json:"user_role"`
	Skills         json.RawMessage `json:"skills"`
	Stack          json.RawMessage `json:"stack"`
	University     string          `json:"university"`
	Bio            string          `json:"bio"`
	About          string          `json:"about"`
	AvatarURL      string          `json:"avatar_url"`
	Avatar         string          `json:"avatar"`
	Email          string          `json:"email"`
	User           *wireNested     `json:"user"`
}

// FromWire decodes one user, resolving every field alias the API uses.
func FromWire(raw json.RawMessage) (User, error) {
	var w wireUser
	if err := json.Unmarshal(raw, &w); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	nested := wireNested{}
	if w.User != nil {
		nested = *w.User
	}
	skills := wire.StringList(w.Skills)
	if skills == nil {
		skills = wire.StringList(w.Stack)
	}
	u := User{
		ID:         wire.First(wire.String(w.UserID), wire.String(w.ID)),
		Name:       sanitize.Text(wire.First(w.FirstName, w.Name, w.FirstNameCamel, nested.FirstName)),
		Surname:    sanitize.Text(wire.First(w.LastName, w.Surname, w.LastNameCamel, nested.LastName)),
		TelegramID: wire.First(wire.String(w.TelegramID), wire.String(nested.TelegramID)),
		Role:       w.Role,
		Skills:     sanitize.TextSlice(skills),
		University: sanitize.Text(w.University),
		About:      sanitize.PlainText(wire.First(w.Bio, w.About)),
		Avatar:     wire.First(w.AvatarURL, w.Avatar, nested.AvatarURL),
		Email:      wire.First(w.Email, nested.Email),
	}
	switch SystemRole(strings.ToLower(w.UserRole)) {
	case SystemRoleAdmin:
		u.UserRole = SystemRoleAdmin
	case SystemRoleUser:
		u.UserRole = SystemRoleUser
	}
	return u, nil
}

// ListFromWire decodes a user list, accepting a single object as a list of one.
func ListFromWire(raw json.RawMessage) ([]User, error) {
	items, _ := wire.Items(raw)
	out := make([]User, 0, len(items))
	for i, item := range items {
		u, err := FromWire(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, u)
	}
	return out, nil
}
