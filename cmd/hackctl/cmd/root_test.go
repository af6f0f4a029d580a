package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectError    bool
	}{
		{
			name:           "help flag",
			args:           []string{"--help"},
			expectedOutput: "hackathon platform API",
			expectError:    false,
		},
		{
			name:           "short help flag",
			args:           []string{"-h"},
			expectedOutput: "hackathon platform API",
			expectError:    false,
		},
		{
			name:           "invalid flag",
			args:           []string{"--invalid-flag"},
			expectedOutput: "",
			expectError:    true,
		},
		{
			name:           "subcommand help",
			args:           []string{"team", "--help"},
			expectedOutput: "invite",
			expectError:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a new root command for each test to avoid state pollution
			cmd := newRootCommand()

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			output := buf.String()

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !strings.Contains(output, tt.expectedOutput) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.expectedOutput, output)
			}
		})
	}
}

func TestRootCommandInvalidFlagError(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--invalid-flag"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown flag: --invalid-flag") {
		t.Errorf("expected unknown flag error, got %v", err)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	cmd := newRootCommand()

	// Test that persistent flags are available
	flags := []string{"config", "log-level", "log-format", "api-url", "format"}
	for _, flag := range flags {
		if f := cmd.PersistentFlags().Lookup(flag); f == nil {
			t.Errorf("expected persistent flag %q to be defined", flag)
		}
	}
	if f := cmd.PersistentFlags().ShorthandLookup("o"); f == nil || f.Name != "format" {
		t.Errorf("expected -o to be shorthand for --format")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	cmd := newRootCommand()

	// Test that expected subcommands are available
	expectedCommands := []string{
		"login", "logout", "session", "hackathons", "team", "invitations",
		"profile", "users", "catalog", "admin", "mockapi", "version",
	}
	for _, cmdName := range expectedCommands {
		found := false
		for _, subCmd := range cmd.Commands() {
			if subCmd.Name() == cmdName {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", cmdName)
		}
	}
}

func TestRootCommandRejectsUnknownFormat(t *testing.T) {
	t.Setenv("HACKCTL_SESSION_FILE", t.TempDir()+"/session.json")

	cmd := newRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"session", "-o", "xml"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown output format")
	}
}

// newRootCommand creates a fresh root command for testing
func newRootCommand() *cobra.Command {
	testRootCmd := &cobra.Command{
		Use:   rootCmd.Use,
		Short: rootCmd.Short,
		Long:  rootCmd.Long,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Rebinding the flags also resets them to their defaults
	addGlobalFlags(testRootCmd)

	// Remove commands from any previous parent to avoid state pollution
	// This is necessary because commands are package-level variables
	for _, sub := range subcommands() {
		if sub.HasParent() {
			sub.Parent().RemoveCommand(sub)
		}
	}
	testRootCmd.AddCommand(subcommands()...)

	return testRootCmd
}
