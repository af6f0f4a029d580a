package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/admins"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
	"github.com/itamhack/hackctl/internal/domain/invitations"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/output"
)

func hackathonsTable(list []hackathons.Hackathon) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "NAME", "DATE", "LOCATION", "TEAM SIZE"}}
		for _, h := range list {
			t.AddRow(h.ID, h.Name, orDash(h.Date), orDash(h.Location), itoa(h.MaxTeamSize))
		}
		return t
	}
}

func myHackathonsTable(list []hackathons.MyHackathon) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "NAME", "DATE", "ROLE"}}
		for _, h := range list {
			t.AddRow(h.ID, h.Name, orDash(h.Date), orDash(string(h.Role)))
		}
		return t
	}
}

func hackathonDetails(h hackathons.Hackathon, loc *time.Location) func() output.Table {
	return func() output.Table {
		show := func(s string) string { return orDash(dates.FormatToDisplayIn(s, loc)) }
		return output.Details(
			"ID", h.ID,
			"Name", h.Name,
			"Date", orDash(h.Date),
			"Starts", show(h.StartsAt),
			"Ends", show(h.EndsAt),
			"Registration", show(h.RegisterStart)+" - "+show(h.RegisterEnd),
			"Location", orDash(h.Location),
			"Team size", itoa(h.MaxTeamSize),
			"Image", orDash(h.ImageURL),
			"Description", orDash(h.Description),
		)
	}
}

func teamsTable(list []teams.Team) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "NAME", "HACKATHON", "MEMBERS", "CAPTAIN"}}
		for _, team := range list {
			captain := "-"
			if c, ok := team.Captain(); ok {
				captain = c.FullName()
			}
			size := itoa(len(team.Members))
			if team.MaxSize > 0 {
				size = fmt.Sprintf("%d/%d", len(team.Members), team.MaxSize)
			}
			t.AddRow(team.ID, team.Name, orDash(team.HackathonName), size, captain)
		}
		return t
	}
}

// teamDetails shows a team with its roster. name overrides the team name when
// the user renamed it locally.
func teamDetails(team teams.Team, name string) func() output.Table {
	return func() output.Table {
		t := output.Details(
			"ID", team.ID,
			"Name", team.DisplayName(name),
			"Hackathon", orDash(team.HackathonName),
			"Description", orDash(team.Description),
			"Size", fmt.Sprintf("%d/%d", len(team.Members), team.MaxSize),
		)
		for _, m := range team.Members {
			label := m.FullName()
			if m.UserID == team.CaptainID {
				label += " (captain)"
			}
			t.AddRow("Member:", fmt.Sprintf("%s  %s  %s", label, orDash(m.Role), m.UserID))
		}
		return t
	}
}

func usersTable(list []users.User) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "NAME", "ROLE", "SKILLS", "TELEGRAM"}}
		for _, u := range list {
			t.AddRow(u.ID, u.FullName(), orDash(u.Role), orDash(strings.Join(u.Skills, ", ")), orDash(u.TelegramID))
		}
		return t
	}
}

func invitationsTable(list []invitations.Invitation) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "TEAM", "HACKATHON", "FROM", "STATUS", "SENT"}}
		for _, inv := range list {
			from := strings.TrimSpace(inv.FromUser.Name + " " + inv.FromUser.Surname)
			t.AddRow(inv.ID, orDash(inv.Team.Name), orDash(inv.Hackathon.Name), orDash(from), string(inv.Status), orDash(inv.CreatedAt))
		}
		return t
	}
}

func adminsTable(list []admins.Admin) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "EMAIL", "NAME", "ROLE", "ACTIVE"}}
		for _, a := range list {
			name := strings.TrimSpace(a.FirstName + " " + a.LastName)
			t.AddRow(a.ID, a.Email, orDash(name), orDash(a.Role), yesNo(a.IsActive))
		}
		return t
	}
}

func adminDetails(a admins.Admin) func() output.Table {
	return func() output.Table {
		return output.Details(
			"ID", a.ID,
			"Email", a.Email,
			"Name", orDash(strings.TrimSpace(a.FirstName+" "+a.LastName)),
			"Role", orDash(a.Role),
			"Company", orDash(a.Company),
			"Active", yesNo(a.IsActive),
		)
	}
}
