package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	logLevel     string
	logFormat    string
	apiURL       string
	outputFormat string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "hackctl",
		Short: "hackctl - hackathon platform client",
		Long: `hackctl talks to the hackathon platform API on behalf of participants
and organizers.

Participants can:
- Sign in with a one-time code and fill in their questionnaire
- Browse hackathons, register and see their team
- Create teams, invite people and answer invitations

Organizers can manage hackathons, see analytics, export team rosters and
manage admin accounts. "hackctl mockapi serve" runs a local API for trying
everything out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// SIGINT and SIGTERM cancel the command's context, which drops calls in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (optional, env vars take precedence)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: warn)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: console)")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (default: $HACKCTL_API_URL or http://localhost:8000)")
	cmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "table", "output format (table, json, yaml)")
}

// subcommands lists every top-level command in display order.
func subcommands() []*cobra.Command {
	return []*cobra.Command{
		loginCmd,
		logoutCmd,
		sessionCmd,
		hackathonsCmd,
		teamCmd,
		invitationsCmd,
		profileCmd,
		usersCmd,
		catalogCmd,
		adminCmd,
		mockapiCmd,
		versionCmd,
	}
}

func init() {
	addGlobalFlags(rootCmd)
	rootCmd.AddCommand(subcommands()...)
}
