package users

import (
	"fmt"
	"strings"

	"github.com/itamhack/hackctl/internal/domain/catalog"
)

// Status is a participant's team membership state.
type Status string

const (
	StatusFree   Status = "free"
	StatusInTeam Status = "in-team"
)

// ParseStatus accepts the status names used on the command line.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusFree:
		return StatusFree, nil
	case StatusInTeam, "busy", "in_team":
		return StatusInTeam, nil
	}
	return "", fmt.Errorf("unknown status %q (want free or in-team)", s)
}

// Filter selects participants. Within one dimension any selected value may
// match; dimensions combine with AND. Empty dimensions select everyone.
type Filter struct {
	Roles    []string
	Stacks   []string
	Statuses []Status
}

// Apply keeps the users that pass the filter. inTeam holds the ids of users
// that belong to a team.
func (f Filter) Apply(list []User, inTeam map[string]bool) []User {
	out := make([]User, 0, len(list))
	for _, u := range list {
		if f.matchRole(u) && f.matchStack(u) && f.matchStatus(u, inTeam) {
			out = append(out, u)
		}
	}
	return out
}

func (f Filter) matchRole(u User) bool {
	if len(f.Roles) == 0 {
		return true
	}
	for _, r := range f.Roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (f Filter) matchStack(u User) bool {
	if len(f.Stacks) == 0 {
		return true
	}
	for _, stack := range f.Stacks {
		needle := strings.ToLower(stack)
		for _, skill := range u.Skills {
			if strings.Contains(strings.ToLower(skill), needle) {
				return true
			}
		}
	}
	return false
}

func (f Filter) matchStatus(u User, inTeam map[string]bool) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		switch s {
		case StatusInTeam:
			if inTeam[u.ID] {
				return true
			}
		case StatusFree:
			if !inTeam[u.ID] {
				return true
			}
		}
	}
	return false
}

// RolesFromUsers derives role options from the participants themselves, for
// when the roles endpoint returns nothing.
func RolesFromUsers(list []User) []catalog.FilterOption {
	roles := make([]string, 0, len(list))
	for _, u := range list {
		roles = append(roles, u.Role)
	}
	return catalog.OptionsFromValues(roles)
}
