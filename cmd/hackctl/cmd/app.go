package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/client"
	"github.com/itamhack/hackctl/internal/config"
	"github.com/itamhack/hackctl/internal/output"
	"github.com/itamhack/hackctl/internal/session"
	"github.com/itamhack/hackctl/internal/telemetry"
)

// app is what a command needs to talk to the API: configuration, the
// session, a typed client and a printer bound to the command's output.
type app struct {
	cfg     config.Config
	logger  zerolog.Logger
	session *session.Store
	api     *client.API
	out     *output.Printer
	now     func() time.Time

	shutdownTracing telemetry.ShutdownFunc
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	// Flags override file and environment
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	return cfg, nil
}

// newApp wires config, logging, tracing, the session store and the client for
// one command run. Callers must defer app.close.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(cfg.Logging)

	shutdown, err := telemetry.InitTracing(cmd.Context(), cfg.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	store, err := session.Open(cfg.Session.File)
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.API.BaseURL,
		client.WithTokenSource(store),
		client.WithLogger(logger),
		client.WithUserAgent("hackctl/"+Version),
		client.WithRateLimit(cfg.API.RateLimit),
		client.WithTimeout(cfg.API.Timeout),
	)
	logger.Debug().Str("api", c.BaseURL()).Str("session", store.Path()).Msg("client ready")

	return &app{
		cfg:             cfg,
		logger:          logger,
		session:         store,
		api:             client.NewAPI(c, store, cfg.Location()),
		out:             output.New(cmd.OutOrStdout(), format),
		now:             time.Now,
		shutdownTracing: shutdown,
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdownTracing(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("tracing shutdown")
	}
}

// today is the current date in the display timezone.
func (a *app) today() time.Time {
	return a.now().In(a.cfg.Location())
}

// run builds the app, runs fn and tears the app down again.
func run(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(cmd.Context(), a)
}

// unwrap turns a failed envelope into an error carrying the API message.
func unwrap[T any](r client.Response[T]) (T, error) {
	if err := r.Err(); err != nil {
		var zero T
		return zero, err
	}
	return r.Data, nil
}

// ack prints the outcome of a call that only returns a message.
func (a *app) ack(r client.Response[client.Ack], fallback string) error {
	res, err := unwrap(r)
	if err != nil {
		return err
	}
	if res.Message != "" {
		fallback = res.Message
	}
	return a.out.Message(fallback)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
