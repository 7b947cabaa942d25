package claude

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubClaude drops a fake claude binary onto PATH that echoes its
// arguments.
func stubClaude(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"ran with: $*\"\n"
	if err := os.WriteFile(filepath.Join(dir, "claude"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func TestRunPassesPrompt(t *testing.T) {
	stubClaude(t)

	out, err := NewCLI().Run(context.Background(), "summarize the release")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "-p summarize the release") {
		t.Errorf("output = %q, want the prompt passed through", out)
	}
	if !strings.Contains(out, "--output-format text") {
		t.Errorf("output = %q, want text output format", out)
	}
	if strings.Contains(out, "--dangerously-skip-permissions") {
		t.Errorf("output = %q, permissions flag set without SkipPermissions", out)
	}
}

func TestRunSkipPermissions(t *testing.T) {
	stubClaude(t)

	cli := &CLI{SkipPermissions: true}
	out, err := cli.Run(context.Background(), "edit the config")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out, "--dangerously-skip-permissions") {
		t.Errorf("output = %q, want the permissions flag", out)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	if _, err := os.Stat("/usr/local/bin/claude"); err == nil {
		t.Skip("claude installed system-wide")
	}
	t.Setenv("PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if _, err := NewCLI().Run(context.Background(), "anything"); err == nil {
		t.Fatal("Run() error = nil, want missing-executable error")
	}
}
