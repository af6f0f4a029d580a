package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/domain/admins"
)

var (
	newAdmin     admins.CreateInput
	adminProfile admins.ProfileUpdate
)

var adminAdminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "Manage organizer accounts",
	Long: `Manage organizer accounts. Creating superadmins and changing other
accounts needs the superadmin role.`,
}

var adminAdminsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizer accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListAdmins(ctx))
			if err != nil {
				return err
			}
			return a.out.Print(list, adminsTable(list))
		})
	},
}

var adminAdminsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an organizer account",
	Long: `Create an organizer account. Without --password the password is prompted
for.

Examples:
  hackctl admin admins create --email ops@hack.local --first-name Ольга --role admin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := newAdmin
		if in.Password == "" {
			pw, err := readPassword(cmd)
			if err != nil {
				return err
			}
			in.Password = pw
		}
		return run(cmd, func(ctx context.Context, a *app) error {
			created, err := unwrap(a.api.CreateAdmin(ctx, in))
			if err != nil {
				return err
			}
			return a.out.Print(created, adminDetails(created))
		})
	},
}

var adminAdminsUpdateMeCmd = &cobra.Command{
	Use:   "update-me",
	Short: "Change your own name or company",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			updated, err := unwrap(a.api.UpdateAdminProfile(ctx, adminProfile))
			if err != nil {
				return err
			}
			return a.out.Print(updated, adminDetails(updated))
		})
	},
}

var adminAdminsActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Re-enable an organizer account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.ActivateAdmin(ctx, args[0]), "Activated")
		})
	},
}

var adminAdminsDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Disable an organizer account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.DeactivateAdmin(ctx, args[0]), "Deactivated")
		})
	},
}

var adminAdminsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an organizer account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.DeleteAdmin(ctx, args[0]), "Deleted")
		})
	},
}

func init() {
	f := adminAdminsCreateCmd.Flags()
	f.StringVar(&newAdmin.Email, "email", "", "email (required)")
	f.StringVar(&newAdmin.Password, "password", "", "password, 8 to 72 characters (prompted for when omitted)")
	f.StringVar(&newAdmin.FirstName, "first-name", "", "first name")
	f.StringVar(&newAdmin.LastName, "last-name", "", "last name")
	f.StringVar(&newAdmin.Role, "role", "admin", "admin or superadmin")
	f.StringVar(&newAdmin.Company, "company", "", "company")
	_ = adminAdminsCreateCmd.MarkFlagRequired("email")

	f = adminAdminsUpdateMeCmd.Flags()
	f.StringVar(&adminProfile.FirstName, "first-name", "", "first name")
	f.StringVar(&adminProfile.LastName, "last-name", "", "last name")
	f.StringVar(&adminProfile.Company, "company", "", "company")

	adminAdminsCmd.AddCommand(
		adminAdminsListCmd,
		adminAdminsCreateCmd,
		adminAdminsUpdateMeCmd,
		adminAdminsActivateCmd,
		adminAdminsDeactivateCmd,
		adminAdminsDeleteCmd,
	)
}
