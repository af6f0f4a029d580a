package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/domain/invitations"
)

var invitationsPendingOnly bool

var invitationsCmd = &cobra.Command{
	Use:     "invitations",
	Aliases: []string{"inv"},
	Short:   "See and answer team invitations",
}

var invitationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invitations sent to you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListInvitations(ctx))
			if err != nil {
				return err
			}
			if invitationsPendingOnly {
				list = invitations.PendingOnly(list)
			}
			if err := a.out.Print(list, invitationsTable(list)); err != nil {
				return err
			}
			if n := invitations.CountUnread(list); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d unread\n", n)
			}
			return nil
		})
	},
}

var invitationsAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept an invitation and join the team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.AcceptInvitation(ctx, args[0]), "Invitation accepted")
		})
	},
}

var invitationsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject an invitation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.RejectInvitation(ctx, args[0]), "Invitation rejected")
		})
	},
}

func init() {
	invitationsListCmd.Flags().BoolVar(&invitationsPendingOnly, "pending", false, "only show invitations awaiting an answer")

	invitationsCmd.AddCommand(invitationsListCmd, invitationsAcceptCmd, invitationsRejectCmd)
}
