package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamhack/hackctl/internal/domain/catalog"
)

func participants() []User {
	return []User{
		{ID: "1", Name: "Иван", Role: "Frontend", Skills: []string{"React", "TypeScript"}},
		{ID: "2", Name: "Анна", Role: "Backend", Skills: []string{"Go", "PostgreSQL"}},
		{ID: "3", Name: "Олег", Role: "Designer", Skills: []string{"Figma"}},
		{ID: "4", Name: "Мария", Role: "Backend", Skills: []string{"Python", "Django"}},
	}
}

func ids(list []User) []string {
	out := []string{}
	for _, u := range list {
		out = append(out, u.ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	inTeam := map[string]bool{"1": true, "2": true}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"1", "2", "3", "4"}},
		{name: "role exact", filter: Filter{Roles: []string{"Backend"}}, want: []string{"2", "4"}},
		{name: "role is case sensitive", filter: Filter{Roles: []string{"backend"}}, want: []string{}},
		{name: "stack substring ignoring case", filter: Filter{Stacks: []string{"postgres"}}, want: []string{"2"}},
		{name: "any stack", filter: Filter{Stacks: []string{"figma", "py"}}, want: []string{"3", "4"}},
		{name: "free", filter: Filter{Statuses: []Status{StatusFree}}, want: []string{"3", "4"}},
		{name: "in team", filter: Filter{Statuses: []Status{StatusInTeam}}, want: []string{"1", "2"}},
		{name: "both statuses", filter: Filter{Statuses: []Status{StatusFree, StatusInTeam}}, want: []string{"1", "2", "3", "4"}},
		{
			name:   "dimensions combine",
			filter: Filter{Roles: []string{"Backend"}, Statuses: []Status{StatusFree}},
			want:   []string{"4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(participants(), inTeam)))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Free")
	require.NoError(t, err)
	assert.Equal(t, StatusFree, s)

	s, err = ParseStatus("busy")
	require.NoError(t, err)
	assert.Equal(t, StatusInTeam, s)

	_, err = ParseStatus("away")
	assert.Error(t, err)
}

func TestRolesFromUsers(t *testing.T) {
	got := RolesFromUsers(append(participants(), User{ID: "5"}))
	assert.Equal(t, []catalog.FilterOption{
		{ID: "1", Label: "Frontend", Value: "Frontend"},
		{ID: "2", Label: "Backend", Value: "Backend"},
		{ID: "3", Label: "Designer", Value: "Designer"},
	}, got)
}
