package prompt

import (
	"os/exec"
	"regexp"
	"strings"
)

var branchRegex = regexp.MustCompile(`On branch (.*)\n`)

// Repository reports version control state of the working directory.
type Repository interface {
	// Branch returns the checked out branch, ok is false outside a
	// repository or on a detached head.
	Branch() (name string, ok bool)
	// Dirty returns true if there are staged changes.
	Dirty() bool
}

// GitCLI implements Repository by running git.
type GitCLI struct {
	// Dir to run git in, the working directory if empty.
	Dir string
}

var _ Repository = (*GitCLI)(nil)

func (g *GitCLI) output(args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return string(out)
}

// Branch implements Repository.Branch.
func (g *GitCLI) Branch() (string, bool) {
	status := g.output("status")
	if !strings.HasPrefix(status, "On branch ") {
		return "", false
	}

	match := branchRegex.FindStringSubmatch(status)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Dirty implements Repository.Dirty.
func (g *GitCLI) Dirty() bool {
	return strings.HasPrefix(g.output("diff", "--cached"), "diff")
}
