package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/client"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/output"
)

var (
	anketaFields = struct {
		name, lastName, role, contacts, skills, experience, bio string
	}{}
	profileDraftOnly bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View profiles and edit your questionnaire",
}

// profileView is a participant with their teams and results.
type profileView struct {
	User         users.User          `json:"user"`
	Teams        []teams.Team        `json:"teams"`
	Achievements []users.Achievement `json:"achievements"`
}

var profileShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a participant's profile",
	Long: `Show a participant with their teams and achievements. Without an id your
own profile is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			id := currentUserID(a)
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" {
				return errors.New("no user id given and nobody is signed in")
			}
			admin := a.api.IsAdmin()

			var (
				user         client.Response[users.User]
				userTeams    client.Response[[]teams.Team]
				achievements client.Response[[]users.Achievement]
			)
			client.Join(ctx,
				func(ctx context.Context) { user = a.api.GetUser(ctx, id, admin) },
				func(ctx context.Context) { userTeams = a.api.ListUserTeams(ctx, id, admin) },
				func(ctx context.Context) { achievements = a.api.ListUserAchievements(ctx, id, admin) },
			)
			u, err := unwrap(user)
			if err != nil {
				return err
			}
			// Teams and achievements are secondary; a failure only empties them.
			view := profileView{User: u, Teams: userTeams.Data, Achievements: achievements.Data}
			for _, err := range []error{userTeams.Err(), achievements.Err()} {
				if err != nil {
					a.logger.Warn().Err(err).Str("user_id", id).Msg("profile section unavailable")
				}
			}
			return a.out.Print(view, func() output.Table {
				t := output.Details(
					"ID", u.ID,
					"Name", u.FullName(),
					"Role", orDash(u.Role),
					"Skills", orDash(strings.Join(u.Skills, ", ")),
					"Telegram", orDash(u.TelegramID),
					"University", orDash(u.University),
					"About", orDash(u.About),
				)
				for _, team := range view.Teams {
					t.AddRow("Team:", fmt.Sprintf("%s (%s)", team.Name, orDash(team.HackathonName)))
				}
				for _, ach := range view.Achievements {
					t.AddRow("Achievement:", fmt.Sprintf("%s  %s  %s", ach.HackathonName, orDash(ach.Result), orDash(ach.Date)))
				}
				return t
			})
		})
	},
}

// meView is the signed-in user with the questionnaire, sent or drafted.
type meView struct {
	User   users.User    `json:"user"`
	Anketa *users.Anketa `json:"anketa,omitempty"`
	Draft  bool          `json:"draft,omitempty"`
	Avatar string        `json:"avatar,omitempty"`
}

var profileMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your questionnaire",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			u, ok := a.session.CurrentUser()
			if !ok {
				return errors.New("not logged in")
			}
			view := meView{User: u, Avatar: a.session.Avatar()}

			if !u.IsAdmin() {
				r := a.api.GetMyAnketa(ctx)
				switch {
				case r.Success:
					view.Anketa = &r.Data
				case r.Status == http.StatusNotFound:
					if draft, ok := a.session.ProfileDraft(); ok {
						view.Anketa, view.Draft = &draft, true
					}
				default:
					return r.Err()
				}
			}

			return a.out.Print(view, func() output.Table {
				t := output.Details(
					"ID", u.ID,
					"Name", u.FullName(),
					"Avatar", orDash(view.Avatar),
				)
				if view.Anketa == nil {
					t.AddRow("Questionnaire:", "not filled in")
					return t
				}
				if view.Draft {
					t.AddRow("Questionnaire:", "draft, not sent")
				}
				an := view.Anketa
				t.AddRow("First name:", orDash(an.Name))
				t.AddRow("Last name:", orDash(an.LastName))
				t.AddRow("Role:", orDash(an.Role))
				t.AddRow("Contacts:", orDash(an.Contacts))
				t.AddRow("Skills:", orDash(an.Skills))
				t.AddRow("Experience:", orDash(an.Experience))
				t.AddRow("Bio:", orDash(an.Bio))
				return t
			})
		})
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fill in or edit your questionnaire",
	Long: `Fill in or edit your questionnaire. Only the fields given as flags change;
the rest keep their current (or drafted) values.

With --draft the answers are only saved in the session. A questionnaire
that fails validation is also kept as a draft so nothing typed is lost.

Examples:
  hackctl profile update --name Анна --last-name Волкова --role QA --contacts @volkova
  hackctl profile update --skills "Go, Playwright"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			base, err := currentAnketa(ctx, a)
			if err != nil {
				return err
			}
			in := applyAnketaFlags(cmd, base)

			if profileDraftOnly {
				if err := a.session.SetProfileDraft(in); err != nil {
					return err
				}
				return a.out.Message("Draft saved")
			}

			send := a.api.CreateOrUpdateAnketa
			if a.session.HasProfile() {
				send = a.api.UpdateMyAnketa
			}
			r := send(ctx, in)
			if !r.Success {
				if r.Status == 0 && !r.Canceled {
					if err := a.session.SetProfileDraft(in); err != nil {
						a.logger.Warn().Err(err).Msg("could not keep draft")
					}
				}
				return r.Err()
			}
			if err := a.session.ClearProfileDraft(); err != nil {
				return err
			}
			return a.out.Print(r.Data, func() output.Table {
				return output.Details(
					"First name", r.Data.Name,
					"Last name", r.Data.LastName,
					"Role", r.Data.Role,
					"Contacts", r.Data.Contacts,
					"Skills", orDash(r.Data.Skills),
				)
			})
		})
	},
}

// currentAnketa is the questionnaire to edit: the sent one, else the draft,
// else an empty one.
func currentAnketa(ctx context.Context, a *app) (users.Anketa, error) {
	if a.session.HasProfile() {
		r := a.api.GetMyAnketa(ctx)
		if r.Success {
			return r.Data, nil
		}
		if r.Status != http.StatusNotFound {
			return users.Anketa{}, r.Err()
		}
	}
	draft, _ := a.session.ProfileDraft()
	return draft, nil
}

func applyAnketaFlags(cmd *cobra.Command, in users.Anketa) users.Anketa {
	set := func(flag string, dst *string, value string) {
		if cmd.Flags().Changed(flag) {
			*dst = strings.TrimSpace(value)
		}
	}
	set("name", &in.Name, anketaFields.name)
	set("last-name", &in.LastName, anketaFields.lastName)
	set("role", &in.Role, anketaFields.role)
	set("contacts", &in.Contacts, anketaFields.contacts)
	set("skills", &in.Skills, anketaFields.skills)
	set("experience", &in.Experience, anketaFields.experience)
	set("bio", &in.Bio, anketaFields.bio)
	return in
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar <file-or-url>",
	Short: "Set the avatar shown for you",
	Long: `Remember an avatar image for your profile. The API has no avatar upload,
so the choice is kept in the session. Local files are stored by absolute path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			avatar, err := avatarRef(args[0])
			if err != nil {
				return err
			}
			if err := a.session.SetAvatar(avatar); err != nil {
				return err
			}
			return a.out.Message("Avatar set to " + avatar)
		})
	},
}

func avatarRef(arg string) (string, error) {
	if u, err := url.Parse(arg); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return arg, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("avatar: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("avatar: %s is a directory", abs)
	}
	return abs, nil
}

func init() {
	f := profileUpdateCmd.Flags()
	f.StringVar(&anketaFields.name, "name", "", "first name")
	f.StringVar(&anketaFields.lastName, "last-name", "", "last name")
	f.StringVar(&anketaFields.role, "role", "", "team role, e.g. Frontend or Designer")
	f.StringVar(&anketaFields.contacts, "contacts", "", "how to reach you, e.g. a Telegram handle")
	f.StringVar(&anketaFields.skills, "skills", "", "skills, comma separated")
	f.StringVar(&anketaFields.experience, "experience", "", "experience")
	f.StringVar(&anketaFields.bio, "bio", "", "a few words about you")
	f.BoolVar(&profileDraftOnly, "draft", false, "only save a draft in the session")

	profileCmd.AddCommand(profileShowCmd, profileMeCmd, profileUpdateCmd, profileAvatarCmd)
}
