// Package prompt renders the interactive prompt from a template.
package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTemplate is the prompt used when none is configured.
const DefaultTemplate = " ➜ "

// Mode selects how a template is rendered.
type Mode string

const (
	// ModeBasic shows the template verbatim.
	ModeBasic Mode = "basic"
	// ModeReactive fills in the working directory and git state.
	ModeReactive Mode = "reactive"
)

// ParseMode converts a mode name.
func ParseMode(name string) (Mode, error) {
	switch mode := Mode(name); mode {
	case ModeBasic, ModeReactive:
		return mode, nil
	default:
		return "", errors.New("invalid mode")
	}
}

// Prompt holds the prompt settings of a shell session.
type Prompt struct {
	Template string
	Mode     Mode

	// Repo is queried for {branch} and {dirty} in reactive mode.
	Repo Repository
	// Getwd returns the working directory for {pwd} and {pwd-end}.
	Getwd func() (string, error)
}

// New creates a prompt that reads git state with the git CLI.
func New(template string, mode Mode) *Prompt {
	return &Prompt{
		Template: template,
		Mode:     mode,
		Repo:     &GitCLI{},
		Getwd:    os.Getwd,
	}
}

// Display renders the prompt.
func (p *Prompt) Display() string {
	if p.Mode != ModeReactive {
		return p.Template
	}

	out := p.Template

	if strings.Contains(out, "{pwd") {
		pwd, err := p.Getwd()
		if err != nil {
			pwd = "?"
		}
		out = strings.ReplaceAll(out, "{pwd}", pwd)
		out = strings.ReplaceAll(out, "{pwd-end}", filepath.Base(pwd))
	}

	if strings.Contains(out, "{branch}") || strings.Contains(out, "{dirty}") {
		branch, ok := p.Repo.Branch()
		dirty := ""
		if ok && p.Repo.Dirty() {
			dirty = "!"
		}
		out = strings.ReplaceAll(out, "{branch}", branch)
		out = strings.ReplaceAll(out, "{dirty}", dirty)
	}

	return out
}
