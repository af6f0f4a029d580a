// Package analytics holds the per-hackathon statistics shown to organizers.
package analytics

import (
	"encoding/json"
	"fmt"
)

type HackathonStats struct {
	HackathonID             string  `json:"hackathon_id"`
	HackathonName           string  `json:"hackathon_name"`
	TotalParticipants       int     `json:"total_participants"`
	TotalTeams              int     `json:"total_teams"`
	ParticipantsWithoutTeam int     `json:"participants_without_team"`
	TeamFormationPercentage float64 `json:"team_formation_percentage"`
}

type CompositionMember struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
	IsCaptain bool   `json:"is_captain"`
}

type TeamComposition struct {
	TeamID        string              `json:"team_id"`
	TeamName      string              `json:"team_name"`
	HackathonName string              `json:"hackathon_name"`
	CaptainName   string              `json:"captain_name"`
	MembersCount  int                 `json:"members_count"`
	MaxSize       int                 `json:"max_size"`
	Members       []CompositionMember `json:"members"`
}

// Analytics is the organizer view of one hackathon.
type Analytics struct {
	HackathonStats   HackathonStats    `json:"hackathon_stats"`
	TeamCompositions []TeamComposition `json:"team_compositions"`
}

// FromWire decodes an analytics payload. Teams without members are listed with
// an empty member slice.
func FromWire(raw json.RawMessage) (Analytics, error) {
	var a Analytics
	if err := json.Unmarshal(raw, &a); err != nil {
		return Analytics{}, fmt.Errorf("decode analytics: %w", err)
	}
	for i := range a.TeamCompositions {
		if a.TeamCompositions[i].Members == nil {
			a.TeamCompositions[i].Members = []CompositionMember{}
		}
	}
	return a, nil
}

// FormationPercentage is the share of participants that belong to a team,
// rounded to two decimals.
func FormationPercentage(total, withoutTeam int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(total-withoutTeam) / float64(total) * 100
	return float64(int(p*100+0.5)) / 100
}

// OpenSlots counts the places left across all teams.
func (a Analytics) OpenSlots() int {
	n := 0
	for _, tc := range a.TeamCompositions {
		if tc.MaxSize > tc.MembersCount {
			n += tc.MaxSize - tc.MembersCount
		}
	}
	return n
}
