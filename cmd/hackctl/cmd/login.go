package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/auth"
	"github.com/itamhack/hackctl/internal/output"
	"github.com/itamhack/hackctl/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <code>",
	Short: "Sign in with a one-time access code",
	Long: `Sign in as a participant with the access code sent by the bot.

The token is kept in the session file and used by every later command.
First-time participants are reminded to fill in their questionnaire.

Examples:
  hackctl login 123456`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			res, err := unwrap(a.api.Login(ctx, args[0]))
			if err != nil {
				return err
			}
			return a.out.Print(res, func() output.Table {
				t := output.Details(
					"Signed in as", res.User.FullName(),
					"User ID", res.User.ID,
					"Profile", yesNo(res.HasProfile),
				)
				if !res.HasProfile {
					t.AddRow("Next:", "fill in your questionnaire with 'hackctl profile update'")
				}
				return t
			})
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			if _, err := unwrap(a.api.Logout(ctx)); err != nil {
				return err
			}
			return a.out.Message("Signed out")
		})
	},
}

// sessionInfo is what "hackctl session" reports. The token is decoded without
// verification; expiry is shown, not enforced.
type sessionInfo struct {
	File       string     `json:"file,omitempty"`
	LoggedIn   bool       `json:"logged_in"`
	Admin      bool       `json:"admin"`
	HasProfile bool       `json:"has_profile"`
	Subject    string     `json:"subject,omitempty"`
	Role       string     `json:"role,omitempty"`
	Kind       string     `json:"kind,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Expired    bool       `json:"expired,omitempty"`
	User       string     `json:"user,omitempty"`
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show who is signed in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app) error {
			info := sessionInfo{
				File:       a.session.Path(),
				Admin:      a.session.IsAdmin(),
				HasProfile: a.session.HasProfile(),
			}
			token, err := a.session.RequireToken()
			if err != nil && !errors.Is(err, session.ErrNoToken) {
				return err
			}
			if token != "" {
				info.LoggedIn = true
				if claims, err := auth.Inspect(token); err == nil {
					info.Subject = claims.Subject
					info.Role = claims.Role
					info.Kind = string(claims.Kind)
					if claims.ExpiresAt != nil {
						exp := claims.ExpiresAt.Time
						info.ExpiresAt = &exp
						info.Expired = claims.ExpiresIn(a.now()) < 0
					}
				} else {
					a.logger.Debug().Err(err).Msg("session token is not a JWT")
				}
			}
			if u, ok := a.session.CurrentUser(); ok {
				info.User = u.FullName()
			}

			return a.out.Print(info, func() output.Table {
				if !info.LoggedIn {
					return output.Details("Session", "not signed in", "File", orDash(info.File))
				}
				expires := "-"
				if info.ExpiresAt != nil {
					expires = info.ExpiresAt.In(a.cfg.Location()).Format(time.RFC3339)
					if info.Expired {
						expires += " (expired)"
					}
				}
				return output.Details(
					"User", orDash(info.User),
					"Subject", orDash(info.Subject),
					"Role", orDash(info.Role),
					"Account", orDash(info.Kind),
					"Admin", yesNo(info.Admin),
					"Profile", yesNo(info.HasProfile),
					"Expires", expires,
					"File", orDash(info.File),
				)
			})
		})
	},
}
