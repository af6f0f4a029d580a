package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/itamhack/hackctl/internal/domain/analytics"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/output"
)

var (
	adminEmail       string
	adminPassword    string
	exportOutput     string
	adminTeamsFilter string
	addMemberHack    string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Organizer commands",
	Long:  `Commands for hackathon organizers. Sign in first with "hackctl admin login".`,
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an organizer",
	Long: `Sign in with an organizer email and password. Without --password the
password is prompted for without echo, or read from the first line of stdin
when stdin is not a terminal.

Examples:
  hackctl admin login --email admin@hack.local`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			var err error
			if password, err = readPassword(cmd); err != nil {
				return err
			}
		}
		return run(cmd, func(ctx context.Context, a *app) error {
			u, err := unwrap(a.api.AdminLogin(ctx, adminEmail, password))
			if err != nil {
				return err
			}
			return a.out.Print(u, func() output.Table {
				return output.Details("Signed in as", u.FullName(), "Email", orDash(u.Email), "Role", orDash(u.Role))
			})
		})
	},
}

// readPassword prompts on the terminal without echo. Piped input is read up
// to the first newline.
func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var adminAnalyticsCmd = &cobra.Command{
	Use:   "analytics <hackathon-id>",
	Short: "Show team formation statistics for a hackathon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			stats, err := unwrap(a.api.HackathonAnalytics(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(stats, analyticsTable(stats))
		})
	},
}

func analyticsTable(a analytics.Analytics) func() output.Table {
	return func() output.Table {
		s := a.HackathonStats
		t := output.Details(
			"Hackathon", s.HackathonName,
			"Participants", itoa(s.TotalParticipants),
			"Teams", itoa(s.TotalTeams),
			"Without team", itoa(s.ParticipantsWithoutTeam),
			"Formation", fmt.Sprintf("%.2f%%", s.TeamFormationPercentage),
			"Open slots", itoa(a.OpenSlots()),
		)
		for _, c := range a.TeamCompositions {
			t.AddRow("Team:", fmt.Sprintf("%s  %d/%d  captain %s", c.TeamName, c.MembersCount, c.MaxSize, orDash(c.CaptainName)))
		}
		return t
	}
}

var adminExportCmd = &cobra.Command{
	Use:   "export <hackathon-id>",
	Short: "Download the team roster of a hackathon as CSV",
	Long: `Download the team roster as CSV. The file is written to --file, or to
the name the server suggests in the current directory. Use "-" for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			file, err := unwrap(a.api.ExportHackathon(ctx, args[0]))
			if err != nil {
				return err
			}
			if exportOutput == "-" {
				_, err := cmd.OutOrStdout().Write(file.Data)
				return err
			}
			dest := exportOutput
			if dest == "" {
				dest = filepath.Base(file.Name)
			}
			if err := os.WriteFile(dest, file.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			a.logger.Debug().Str("file", dest).Int("bytes", len(file.Data)).Msg("export written")
			return a.out.Message(fmt.Sprintf("Saved %s (%d bytes)", dest, len(file.Data)))
		})
	},
}

var adminTeamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List all teams",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListTeams(ctx))
			if err != nil {
				return err
			}
			if adminTeamsFilter != "" {
				filtered := make([]teams.Team, 0, len(list))
				for _, t := range list {
					if t.HackathonID == adminTeamsFilter {
						filtered = append(filtered, t)
					}
				}
				list = filtered
			}
			return a.out.Print(list, teamsTable(list))
		})
	},
}

var adminAddMemberCmd = &cobra.Command{
	Use:   "add-member <team-id> <user-id>",
	Short: "Put a participant into a team",
	Long: `Put a participant into any team. With --hackathon the team must belong
to that hackathon.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.AddUserToTeam(ctx, args[0], args[1], addMemberHack), "Member added")
		})
	},
}

func init() {
	adminLoginCmd.Flags().StringVar(&adminEmail, "email", "", "organizer email (required)")
	adminLoginCmd.Flags().StringVar(&adminPassword, "password", "", "password (prompted for when omitted)")
	_ = adminLoginCmd.MarkFlagRequired("email")

	adminExportCmd.Flags().StringVar(&exportOutput, "file", "", "file to write, - for stdout")
	adminTeamsCmd.Flags().StringVar(&adminTeamsFilter, "hackathon", "", "only teams of this hackathon")
	adminAddMemberCmd.Flags().StringVar(&addMemberHack, "hackathon", "", "hackathon the team must belong to")

	adminCmd.AddCommand(
		adminLoginCmd,
		adminHackathonsCmd,
		adminAnalyticsCmd,
		adminExportCmd,
		adminAdminsCmd,
		adminTeamsCmd,
		adminAddMemberCmd,
	)
}
