package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/domain/catalog"
	"github.com/itamhack/hackctl/internal/domain/users"
	"github.com/itamhack/hackctl/internal/output"
)

var organizerInput catalog.OrganizerInput

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List team roles, technology stacks and organizers",
}

func optionsTable(list []catalog.FilterOption) func() output.Table {
	return func() output.Table {
		t := output.Table{Headers: []string{"ID", "LABEL", "VALUE"}}
		for _, o := range list {
			t.AddRow(o.ID, o.Label, o.Value)
		}
		return t
	}
}

var catalogRolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List team roles",
	Long: `List the team roles participants can pick. When the API has none, the
roles participants already chose are listed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListRoles(ctx))
			if err != nil {
				return err
			}
			if len(list) == 0 {
				if people := a.api.ListUsers(ctx); people.Success {
					list = users.RolesFromUsers(people.Data)
				}
			}
			return a.out.Print(list, optionsTable(list))
		})
	},
}

var catalogStacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "List technology stacks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListStacks(ctx))
			if err != nil {
				return err
			}
			return a.out.Print(list, optionsTable(list))
		})
	},
}

var catalogOrganizersCmd = &cobra.Command{
	Use:   "organizers",
	Short: "List hackathon organizers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListOrganizers(ctx))
			if err != nil {
				return err
			}
			return a.out.Print(list, func() output.Table {
				t := output.Table{Headers: []string{"ID", "NAME", "COMPANY", "EMAIL"}}
				for _, o := range list {
					t.AddRow(o.ID, o.Name+" "+o.Surname, orDash(o.Company), orDash(o.Email))
				}
				return t
			})
		})
	},
}

var catalogAddOrganizerCmd = &cobra.Command{
	Use:   "add-organizer",
	Short: "Add an organizer (organizers only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			o, err := unwrap(a.api.AddOrganizer(ctx, organizerInput))
			if err != nil {
				return err
			}
			return a.out.Print(o, func() output.Table {
				return output.Details("ID", o.ID, "Name", o.Name+" "+o.Surname, "Company", orDash(o.Company), "Email", o.Email)
			})
		})
	},
}

func init() {
	f := catalogAddOrganizerCmd.Flags()
	f.StringVar(&organizerInput.Name, "name", "", "first name (required)")
	f.StringVar(&organizerInput.Surname, "surname", "", "last name")
	f.StringVar(&organizerInput.Company, "company", "", "company")
	f.StringVar(&organizerInput.Email, "email", "", "email (required)")

	catalogCmd.AddCommand(catalogRolesCmd, catalogStacksCmd, catalogOrganizersCmd, catalogAddOrganizerCmd)
}
