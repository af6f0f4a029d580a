package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/itamhack/hackctl/internal/config"
	"github.com/itamhack/hackctl/internal/metrics"
	"github.com/itamhack/hackctl/internal/mockapi"
	"github.com/itamhack/hackctl/internal/telemetry"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int

	healthcheckTimeout int
	healthcheckURL     string
)

var mockapiCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Run a local in-memory hackathon API",
}

var mockapiServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock API server",
	Long: `Start an in-memory implementation of the hackathon API, seeded with
sample hackathons, participants and teams. Data lives until the process exits.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Seed an organizer account from MOCKAPI_ADMIN_EMAIL / MOCKAPI_ADMIN_PASSWORD
- Print the participant login codes
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration
  hackctl mockapi serve

  # Start on a specific host and port
  hackctl mockapi serve --host 0.0.0.0 --port 9090

  # Point the client at it
  HACKCTL_API_URL=http://127.0.0.1:8000 hackctl login 100001`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMockAPI(cmd.Context())
	},
}

func runMockAPI(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.MockAPI.Host = serverHost
	}
	if serverPort != 0 {
		cfg.MockAPI.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting mock API")

	metrics.Init(Version, GitCommit, BuildDate)
	logger.Info().Str("version", Version).Msg("metrics initialized")

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	srv, err := mockapi.New(cfg.MockAPI, logger, mockapi.WithVersion(Version))
	if err != nil {
		return fmt.Errorf("create mock API: %w", err)
	}
	for i, code := range mockapi.SeedCodes {
		logger.Info().Int("participant", i+1).Str("code", code).Msg("login code")
	}
	if cfg.MockAPI.AdminEmail != "" {
		logger.Info().Str("email", cfg.MockAPI.AdminEmail).Msg("organizer account seeded")
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.MockAPI.Host, strconv.Itoa(cfg.MockAPI.Port)),
		Handler:           srv.Handler(),
		ReadTimeout:       10 * time.Second, // Total time to read request
		WriteTimeout:      30 * time.Second, // Total time to write response
		ReadHeaderTimeout: 5 * time.Second,  // Time to read headers
		MaxHeaderBytes:    1 << 20,          // 1 MB max header size
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return gracefulShutdown(ctx, server, serveErr, logger)
}

// gracefulShutdown waits for the command context to end (SIGINT/SIGTERM) or
// the listener to fail, then drains open requests.
func gracefulShutdown(ctx context.Context, server *http.Server, serveErr <-chan error, logger zerolog.Logger) error {
	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			logger.Error().Err(err).Msg("http server error")
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

var mockapiHealthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check if the mock API is healthy",
	Long: `Performs a health check by calling the /healthz endpoint.

Exits with code 0 if the server is healthy, non-zero otherwise.`,
	Args: cobra.NoArgs,
	RunE: runHealthcheck,
}

// HealthResponse matches the mock API's /healthz body.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	url := healthcheckURL
	if url == "" {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		url = cfg.API.BaseURL + "/healthz"
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(healthcheckTimeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error closing response body: %v\n", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("parse health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("unhealthy: status=%s", health.Status)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "healthy (version %s)\n", health.Version)
	return nil
}

func init() {
	mockapiServeCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 127.0.0.1)")
	mockapiServeCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8000)")

	mockapiHealthcheckCmd.Flags().IntVar(&healthcheckTimeout, "timeout", 5, "timeout in seconds")
	mockapiHealthcheckCmd.Flags().StringVar(&healthcheckURL, "url", "", "health check URL (default: API base URL + /healthz)")

	mockapiCmd.AddCommand(mockapiServeCmd, mockapiHealthcheckCmd)
}
