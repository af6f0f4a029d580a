package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/domain/teams"
)

var (
	teamHackathonID string
	teamName        string
	teamDescription string
	teamRenameLocal bool
	teamListAll     bool
)

var teamCmd = &cobra.Command{
	Use:     "team",
	Aliases: []string{"teams"},
	Short:   "Manage your team",
}

var teamMyCmd = &cobra.Command{
	Use:   "my [hackathon-id]",
	Short: "Show your team",
	Long: `Show your team in a hackathon, or your first team when no hackathon is given.

With --all every team you belong to is listed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			if teamListAll {
				list, err := unwrap(a.api.ListUserTeams(ctx, currentUserID(a), false))
				if err != nil {
					return err
				}
				return a.out.Print(list, teamsTable(list))
			}
			hackathonID := ""
			if len(args) == 1 {
				hackathonID = args[0]
			}
			t, err := unwrap(a.api.GetMyTeam(ctx, hackathonID))
			if err != nil {
				return err
			}
			return a.out.Print(t, teamDetails(t, a.session.TeamNameOverride(t.HackathonID)))
		})
	},
}

var teamShowCmd = &cobra.Command{
	Use:   "show <team-id>",
	Short: "Show a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			t, err := unwrap(a.api.GetTeam(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(t, teamDetails(t, a.session.TeamNameOverride(t.HackathonID)))
		})
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all teams",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListTeams(ctx))
			if err != nil {
				return err
			}
			return a.out.Print(list, teamsTable(list))
		})
	},
}

var teamCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a team in a hackathon",
	Long: `Create a team and become its captain.

Examples:
  hackctl team create --hackathon 3f1c... --name "Команда Гамма"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			t, err := unwrap(a.api.CreateTeam(ctx, teams.CreateInput{
				Name:        teamName,
				Description: teamDescription,
				HackathonID: teamHackathonID,
			}))
			if err != nil {
				return err
			}
			return a.out.Print(t, teamDetails(t, ""))
		})
	},
}

var teamRenameCmd = &cobra.Command{
	Use:   "rename <team-id> <name>",
	Short: "Rename a team you captain",
	Long: `Rename a team on the server.

With --local the new name is only remembered in the session and shown in
place of the server name.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			if teamRenameLocal {
				t, err := unwrap(a.api.GetTeam(ctx, args[0]))
				if err != nil {
					return err
				}
				if err := a.session.SetTeamNameOverride(t.HackathonID, args[1]); err != nil {
					return err
				}
				return a.out.Print(t, teamDetails(t, args[1]))
			}
			t, err := unwrap(a.api.UpdateTeamName(ctx, args[0], args[1]))
			if err != nil {
				return err
			}
			if err := a.session.SetTeamNameOverride(t.HackathonID, ""); err != nil {
				return err
			}
			return a.out.Print(t, teamDetails(t, ""))
		})
	},
}

var teamAddCmd = &cobra.Command{
	Use:   "add <team-id> <user-id>",
	Short: "Add a participant to your team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.AddMemberToTeam(ctx, args[0], args[1]), "Member added")
		})
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:   "remove <team-id> <user-id>",
	Short: "Remove a member from your team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.RemoveMemberFromTeam(ctx, args[0], args[1]), "Member removed")
		})
	},
}

var teamInviteCmd = &cobra.Command{
	Use:   "invite <team-id> <user-id>",
	Short: "Invite a participant to your team",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.InviteUserToTeam(ctx, args[0], args[1]), "Invitation sent")
		})
	},
}

var teamLeaveCmd = &cobra.Command{
	Use:   "leave <team-id>",
	Short: "Leave a team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.LeaveTeam(ctx, args[0]), "You left the team")
		})
	},
}

// currentUserID is the id of the signed-in user as cached at login.
func currentUserID(a *app) string {
	u, _ := a.session.CurrentUser()
	return u.ID
}

func init() {
	teamMyCmd.Flags().BoolVar(&teamListAll, "all", false, "list every team you belong to")

	teamCreateCmd.Flags().StringVar(&teamHackathonID, "hackathon", "", "hackathon id (required)")
	teamCreateCmd.Flags().StringVar(&teamName, "name", "", "team name (required)")
	teamCreateCmd.Flags().StringVar(&teamDescription, "description", "", "team description")
	_ = teamCreateCmd.MarkFlagRequired("hackathon")
	_ = teamCreateCmd.MarkFlagRequired("name")

	teamRenameCmd.Flags().BoolVar(&teamRenameLocal, "local", false, "only rename in this session")

	teamCmd.AddCommand(
		teamMyCmd,
		teamShowCmd,
		teamListCmd,
		teamCreateCmd,
		teamRenameCmd,
		teamAddCmd,
		teamRemoveCmd,
		teamInviteCmd,
		teamLeaveCmd,
	)
}
