package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/client"
	"github.com/itamhack/hackctl/internal/domain/teams"
	"github.com/itamhack/hackctl/internal/domain/users"
)

var (
	usersRoles       []string
	usersStacks      []string
	usersStatuses    []string
	usersWithoutTeam string
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"participants"},
	Short:   "Find participants",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List participants",
	Long: `List participants who filled in their questionnaire.

Filters combine: any listed role, any listed stack (matched against skills)
and any listed status must match. Status is free or in-team, decided by
membership in any team.

Organizers can list a hackathon's participants without a team with
--without-team.

Examples:
  hackctl users list --role Frontend --role Designer
  hackctl users list --stack go --status free
  hackctl users list --without-team 3f1c...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := users.Filter{Roles: usersRoles, Stacks: usersStacks}
		for _, s := range usersStatuses {
			status, err := users.ParseStatus(s)
			if err != nil {
				return err
			}
			filter.Statuses = append(filter.Statuses, status)
		}

		return run(cmd, func(ctx context.Context, a *app) error {
			if usersWithoutTeam != "" {
				list, err := unwrap(a.api.ListUsersWithoutTeam(ctx, usersWithoutTeam))
				if err != nil {
					return err
				}
				list = filter.Apply(list, nil)
				return a.out.Print(list, usersTable(list))
			}

			var (
				people client.Response[[]users.User]
				all    client.Response[[]teams.Team]
			)
			tasks := []func(context.Context){
				func(ctx context.Context) { people = a.api.ListUsers(ctx) },
			}
			if len(filter.Statuses) > 0 {
				tasks = append(tasks, func(ctx context.Context) { all = a.api.ListTeams(ctx) })
			}
			client.Join(ctx, tasks...)

			list, err := unwrap(people)
			if err != nil {
				return err
			}
			var inTeam map[string]bool
			if len(filter.Statuses) > 0 {
				teamList, err := unwrap(all)
				if err != nil {
					return err
				}
				inTeam = teams.MemberIDs(teamList)
			}
			list = filter.Apply(list, inTeam)
			return a.out.Print(list, usersTable(list))
		})
	},
}

func init() {
	usersListCmd.Flags().StringSliceVar(&usersRoles, "role", nil, "team role, e.g. Frontend (repeatable)")
	usersListCmd.Flags().StringSliceVar(&usersStacks, "stack", nil, "technology in the participant's skills (repeatable)")
	usersListCmd.Flags().StringSliceVar(&usersStatuses, "status", nil, "free or in-team (repeatable)")
	usersListCmd.Flags().StringVar(&usersWithoutTeam, "without-team", "", "hackathon id: only participants without a team (organizers)")

	usersCmd.AddCommand(usersListCmd)
}
