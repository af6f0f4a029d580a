package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
)

var (
	hackathonsUpcoming []string
	hackathonsSearch   string
)

var hackathonsCmd = &cobra.Command{
	Use:     "hackathons",
	Aliases: []string{"hackathon", "h"},
	Short:   "Browse hackathons and manage registration",
}

var hackathonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hackathons",
	Long: `List every hackathon.

--upcoming keeps hackathons starting within the given windows, counted in
whole days from today: week (0-7), 2weeks (8-14), month (15-30).

Examples:
  hackctl hackathons list
  hackctl hackathons list --upcoming week,2weeks
  hackctl hackathons list --search ai -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		buckets, err := dates.ParseBuckets(hackathonsUpcoming)
		if err != nil {
			return err
		}
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListHackathons(ctx))
			if err != nil {
				return err
			}
			list = hackathons.FilterByBuckets(list, buckets, a.today())
			list = hackathons.Search(list, hackathonsSearch)
			return a.out.Print(list, hackathonsTable(list))
		})
	},
}

var hackathonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one hackathon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			h, err := unwrap(a.api.GetHackathon(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(h, hackathonDetails(h, a.cfg.Location()))
		})
	},
}

var hackathonsMyCmd = &cobra.Command{
	Use:   "my",
	Short: "List the hackathons you take part in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListMyHackathons(ctx))
			if err != nil {
				return err
			}
			return a.out.Print(list, myHackathonsTable(list))
		})
	},
}

var hackathonsRegisterCmd = &cobra.Command{
	Use:   "register <id>",
	Short: "Register for a hackathon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.RegisterForHackathon(ctx, args[0]), "Registered")
		})
	},
}

var hackathonsUnregisterCmd = &cobra.Command{
	Use:   "unregister <id>",
	Short: "Cancel a hackathon registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.UnregisterFromHackathon(ctx, args[0]), "Unregistered")
		})
	},
}

var hackathonsParticipantsCmd = &cobra.Command{
	Use:   "participants <id>",
	Short: "List the participants of a hackathon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListHackathonParticipants(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(list, usersTable(list))
		})
	},
}

func init() {
	hackathonsListCmd.Flags().StringSliceVar(&hackathonsUpcoming, "upcoming", nil, "start windows: week, 2weeks, month (comma separated)")
	hackathonsListCmd.Flags().StringVar(&hackathonsSearch, "search", "", "keep hackathons whose name or description contains this text")

	hackathonsCmd.AddCommand(
		hackathonsListCmd,
		hackathonsShowCmd,
		hackathonsMyCmd,
		hackathonsRegisterCmd,
		hackathonsUnregisterCmd,
		hackathonsParticipantsCmd,
	)
}
