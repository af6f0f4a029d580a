package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/client"
	"github.com/itamhack/hackctl/internal/dates"
	"github.com/itamhack/hackctl/internal/domain/hackathons"
	"github.com/itamhack/hackctl/internal/output"
)

// hackathonFlags holds the raw flag values; dates stay strings until they are
// parsed against the current time.
var hackathonFlags struct {
	name, description, location, imageURL, image string
	starts, ends, registerStart, registerEnd      string
	maxTeamSize                                   int
}

var adminHackathonsCmd = &cobra.Command{
	Use:     "hackathons",
	Aliases: []string{"hackathon", "h"},
	Short:   "Create and manage hackathons",
}

var adminHackathonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every hackathon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			list, err := unwrap(a.api.ListAdminHackathons(ctx))
			if err != nil {
				return err
			}
			return a.out.Print(list, hackathonsTable(list))
		})
	},
}

var adminHackathonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a hackathon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			h, err := unwrap(a.api.GetAdminHackathon(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(h, hackathonDetails(h, a.cfg.Location()))
		})
	},
}

var adminHackathonsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a hackathon",
	Long: `Create a hackathon. Dates accept ISO-8601 or free text in Russian or
English ("15 марта 2026 10:00", "next friday"), read in the display timezone.

Examples:
  hackctl admin hackathons create --name "Go Hack" --description "Build CLIs" \
    --starts "2026-06-01 10:00" --ends "2026-06-03 18:00" \
    --register-start 2026-05-01 --register-end 2026-05-31 --image cover.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			in, image, err := hackathonInput(cmd, a)
			if err != nil {
				return err
			}
			h, err := unwrap(a.api.CreateHackathon(ctx, in, image))
			if err != nil {
				return err
			}
			return a.out.Print(h, hackathonDetails(h, a.cfg.Location()))
		})
	},
}

var adminHackathonsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a hackathon",
	Long: `Change the fields given as flags. --image alone replaces only the cover.

Examples:
  hackctl admin hackathons update 3f1c... --location Казань
  hackctl admin hackathons update 3f1c... --image cover.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			in, image, err := hackathonInput(cmd, a)
			if err != nil {
				return err
			}
			h, err := unwrap(a.api.UpdateHackathon(ctx, args[0], in, image))
			if err != nil {
				return err
			}
			return a.out.Print(h, hackathonDetails(h, a.cfg.Location()))
		})
	},
}

var adminHackathonsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a hackathon with its teams and registrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			return a.ack(a.api.DeleteHackathon(ctx, args[0]), "Hackathon deleted")
		})
	},
}

var adminHackathonsFinishCmd = &cobra.Command{
	Use:   "finish <id>",
	Short: "Close a hackathon and record achievements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			res, err := unwrap(a.api.FinishHackathon(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(res, func() output.Table {
				return output.Details(
					"Result", orDash(res.Message),
					"Participants", itoa(res.TotalParticipants),
					"Achievements created", itoa(res.AchievementsCreated),
					"Achievements skipped", itoa(res.AchievementsSkipped),
				)
			})
		})
	},
}

// hackathonInput reads the flags that were set. Unset flags stay zero so an
// update only sends what changed.
func hackathonInput(cmd *cobra.Command, a *app) (hackathons.Input, *client.Image, error) {
	f := cmd.Flags()
	in := hackathons.Input{
		Name:        strings.TrimSpace(hackathonFlags.name),
		Description: strings.TrimSpace(hackathonFlags.description),
		Location:    strings.TrimSpace(hackathonFlags.location),
		ImageURL:    strings.TrimSpace(hackathonFlags.imageURL),
	}
	if f.Changed("max-team-size") {
		in.MaxTeamSize = hackathonFlags.maxTeamSize
	}

	now := a.today()
	for _, d := range []struct {
		flag, value string
		dst         *time.Time
	}{
		{"starts", hackathonFlags.starts, &in.StartsAt},
		{"ends", hackathonFlags.ends, &in.EndsAt},
		{"register-start", hackathonFlags.registerStart, &in.RegisterStart},
		{"register-end", hackathonFlags.registerEnd, &in.RegisterEnd},
	} {
		if !f.Changed(d.flag) {
			continue
		}
		t, err := dates.ParseFreeText(d.value, now)
		if err != nil {
			return in, nil, fmt.Errorf("--%s: %w", d.flag, err)
		}
		*d.dst = t
	}

	if hackathonFlags.image == "" {
		return in, nil, nil
	}
	data, err := os.ReadFile(hackathonFlags.image)
	if err != nil {
		return in, nil, fmt.Errorf("read image: %w", err)
	}
	return in, &client.Image{Filename: filepath.Base(hackathonFlags.image), Data: data}, nil
}

func addHackathonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&hackathonFlags.name, "name", "", "hackathon name")
	f.StringVar(&hackathonFlags.description, "description", "", "description (basic HTML allowed)")
	f.StringVar(&hackathonFlags.starts, "starts", "", "start date and time")
	f.StringVar(&hackathonFlags.ends, "ends", "", "end date and time")
	f.StringVar(&hackathonFlags.registerStart, "register-start", "", "registration opens")
	f.StringVar(&hackathonFlags.registerEnd, "register-end", "", "registration closes")
	f.StringVar(&hackathonFlags.location, "location", "", "city or venue")
	f.IntVar(&hackathonFlags.maxTeamSize, "max-team-size", 0, "maximum team size (default 5 on create)")
	f.StringVar(&hackathonFlags.image, "image", "", "cover image file to upload")
	f.StringVar(&hackathonFlags.imageURL, "image-url", "", "cover image URL")
}

func init() {
	addHackathonFlags(adminHackathonsCreateCmd)
	addHackathonFlags(adminHackathonsUpdateCmd)

	adminHackathonsCmd.AddCommand(
		adminHackathonsListCmd,
		adminHackathonsShowCmd,
		adminHackathonsCreateCmd,
		adminHackathonsUpdateCmd,
		adminHackathonsDeleteCmd,
		adminHackathonsFinishCmd,
	)
}
