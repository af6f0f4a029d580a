package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	// Save original version variables
	origVersion := Version
	origGitCommit := GitCommit
	origBuildDate := BuildDate
	defer func() {
		Version = origVersion
		GitCommit = origGitCommit
		BuildDate = origBuildDate
	}()

	Version = "1.0.0"
	GitCommit = "abc123"
	BuildDate = "2026-09-01T12:00:00Z"

	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := buf.String()

	expectedStrings := []string{
		"hackctl",
		"Version:    1.0.0",
		"Git commit: abc123",
		"Build date: 2026-09-01T12:00:00Z",
		"Go version:",
		"Platform:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("expected output to contain %q, got:\n%s", expected, output)
		}
	}
}

func TestVersionCommandDefaultValues(t *testing.T) {
	origVersion := Version
	origGitCommit := GitCommit
	origBuildDate := BuildDate
	defer func() {
		Version = origVersion
		GitCommit = origGitCommit
		BuildDate = origBuildDate
	}()

	// Set to default values (as they would be without ldflags)
	Version = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := buf.String()

	for _, expected := range []string{
		"Version:    dev",
		"Git commit: unknown",
		"Build date: unknown",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("expected output to contain %q, got:\n%s", expected, output)
		}
	}
}

func TestVersionCommandHelp(t *testing.T) {
	root := newRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"version", "--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version command --help failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Print the version number") {
		t.Errorf("expected help text to contain version description, got:\n%s", buf.String())
	}
}
