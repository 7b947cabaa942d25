package claude

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CLI runs prompts through the local claude binary. SkipPermissions is for
// the interactive bot, which is expected to edit the repository it runs in.
type CLI struct {
	SkipPermissions bool
}

func NewCLI() *CLI {
	return &CLI{}
}

func (c *CLI) Run(ctx context.Context, prompt string) (string, error) {
	path, err := findExecutable()
	if err != nil {
		return "", err
	}

	args := []string{"-p", prompt}
	if c.SkipPermissions {
		args = append(args, "--dangerously-skip-permissions")
	}
	args = append(args, "--output-format", "text")

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), "CLAUDE_CODE_DISABLE_NONESSENTIAL_TRAFFIC=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("claude timed out")
		}
		return "", fmt.Errorf("claude failed: %w (%s)", err, firstLine(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

func findExecutable() (string, error) {
	if path, err := exec.LookPath("claude"); err == nil {
		return path, nil
	}

	candidates := []string{
		"/usr/local/bin/claude",
		filepath.Join(os.Getenv("HOME"), ".local", "bin", "claude"),
		filepath.Join(os.Getenv("HOME"), ".claude", "local", "claude"),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", errors.New("claude CLI not found")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "no stderr"
	}
	return s
}
