package bot

import (
	"fmt"
	"os/exec"
	"strings"
)

// GitWorkspace wraps the repository the bot edits on behalf of chat
// commands.
type GitWorkspace struct {
	dir string
}

func NewGitWorkspace(dir string) *GitWorkspace {
	return &GitWorkspace{dir: dir}
}

func (w *GitWorkspace) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = w.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w (%s)", args[0], err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// Changes reports uncommitted modifications, or "" for a clean tree.
func (w *GitWorkspace) Changes() (string, error) {
	return w.git("status", "--porcelain")
}

// CommitAndPush stages everything, commits with a message derived from the
// user request, and pushes. A push failure is reported separately because
// the commit itself already succeeded.
func (w *GitWorkspace) CommitAndPush(request string) (pushed bool, pushErr string, err error) {
	if _, err := w.git("add", "-A"); err != nil {
		return false, "", err
	}

	message := "Auto: " + truncateMessage(request, 60)
	if _, err := w.git("commit", "-m", message); err != nil {
		return false, "", err
	}

	if _, err := w.git("push"); err != nil {
		return false, err.Error(), nil
	}
	return true, "", nil
}

// LastCommitStat returns the file-change summary of the latest commit.
func (w *GitWorkspace) LastCommitStat() (string, error) {
	return w.git("log", "-1", "--stat", "--format=")
}

// LastCommitSubject returns the latest commit's subject line.
func (w *GitWorkspace) LastCommitSubject() (string, error) {
	return w.git("log", "-1", "--format=%s")
}

func truncateMessage(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
