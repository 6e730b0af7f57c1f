package shell

import (
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/prompt"
)

const (
	KeyBindingsEmacs = "emacs"
	KeyBindingsVi    = "vi"

	commentPrefix = "#"
)

var errInvalidMode = errors.New("invalid mode")

// Shell is one interpreter session. It is not safe for concurrent use, lines
// are evaluated one at a time.
type Shell struct {
	// Home replaces ~ in every line.
	Home string

	Aliases *AliasTable
	Prompt  *prompt.Prompt
	IO      VIO
	Log     *Logger
	Exec    *Executor

	// Lines supplies input in interactive mode and persists history. It's nil
	// when evaluating scripts.
	Lines LineReader

	keyBindings string
	history     []string
}

// NewShell creates a session with an empty alias table.
func NewShell(home string, vio VIO) *Shell {
	return &Shell{
		Home:    home,
		Aliases: NewAliasTable(),
		Prompt:  prompt.New(prompt.DefaultTemplate, prompt.ModeBasic),
		IO:      vio,
		Log: &Logger{
			Stdout: vio.Stdout(),
			Stderr: vio.Stderr(),
		},
		Exec:        NewExecutor(vio),
		keyBindings: KeyBindingsEmacs,
	}
}

// Configure applies user settings to the session.
func (s *Shell) Configure(cfg *config.Configuration) error {
	s.Prompt.Template = cfg.Prompt

	mode, err := prompt.ParseMode(cfg.PromptMode)
	if err != nil {
		return err
	}
	s.Prompt.Mode = mode

	s.Log.Color = cfg.UseColor()
	return s.SetKeyBindings(cfg.KeyBindings)
}

// SetKeyBindings switches between vi and emacs line editing.
func (s *Shell) SetKeyBindings(mode string) error {
	switch mode {
	case KeyBindingsVi, KeyBindingsEmacs:
	default:
		return errInvalidMode
	}

	s.keyBindings = mode
	if s.Lines != nil {
		s.Lines.SetVimMode(mode == KeyBindingsVi)
	}
	return nil
}

// KeyBindings returns the current line editing mode.
func (s *Shell) KeyBindings() string {
	return s.keyBindings
}

// History returns the lines recorded during this session.
func (s *Shell) History() []string {
	return s.history
}

// ClearHistory forgets the lines recorded during this session.
func (s *Shell) ClearHistory() {
	s.history = nil
	if s.Lines != nil {
		s.Lines.ResetHistory()
	}
}

func (s *Shell) recordHistory(line string) {
	s.history = append(s.history, line)
	if s.Lines == nil {
		return
	}
	if err := s.Lines.SaveHistory(line); err != nil {
		s.Log.Warnf("failed to save history: %v", err)
	}
}

// Eval runs every line of script. Evaluation stops early only if a line
// exits the shell, in which case ErrExit is returned.
func (s *Shell) Eval(script string) error {
	for _, line := range strings.Split(strings.TrimSuffix(script, "\n"), "\n") {
		if err := s.Line(strings.TrimSuffix(line, "\r")); err != nil {
			return err
		}
	}
	return nil
}

// Source evaluates the startup script named in the configuration, if it
// exists.
func (s *Shell) Source(cfg *config.Configuration) error {
	script, err := cfg.ReadRC()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.Log.Warnf("couldn't find %s", cfg.RCPath())
		return nil
	case err != nil:
		s.Log.Warnf("couldn't open %s: %v", cfg.RCPath(), err)
		return nil
	}

	return s.Eval(string(script))
}

// Line evaluates a single line of input. Failures are reported to the user
// and never returned, the only error is ErrExit.
func (s *Shell) Line(line string) error {
	if strings.HasPrefix(line, commentPrefix) {
		return nil
	}

	input := Substitute(line, s.Home)
	if strings.TrimSpace(input) == "" {
		return nil
	}

	s.recordHistory(input)

	return s.run(BuildPipeline(input, s.Aliases))
}

func (s *Shell) run(pipeline *Pipeline) error {
	var prev *RunningProcess

Segments:
	for i := range pipeline.Segments {
		segment := &pipeline.Segments[i]

		if segment.IsBuiltin() {
			err := segment.Builtin.Main(s, segment.Words)

			var usageErr *UsageError
			switch {
			case err == nil:
				continue
			case errors.Is(err, ErrExit):
				if prev != nil {
					prev.Release()
				}
				return err
			case errors.As(err, &usageErr):
				s.Log.Error(err)
				break Segments
			default:
				s.Log.Error(err)
				continue
			}
		}

		proc, err := s.Exec.Start(segment, prev, pipeline.feedsNext(i))
		if prev != nil {
			prev.Release()
		}
		prev = proc

		if err != nil {
			s.Log.Error(err)
			break
		}
	}

	switch {
	case prev == nil:
	case prev.output != nil:
		// The consumer of this stage was never started.
		prev.Release()
	default:
		if err := prev.Wait(); err != nil {
			s.Log.Error(err)
		}
	}

	return nil
}

// Run reads and evaluates lines until the input ends or the shell exits.
func (s *Shell) Run() error {
	for {
		s.Lines.SetPrompt(s.Prompt.Display())
		line, err := s.Lines.Readline()

		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue // Interrupt clears line.

		case err != nil:
			return err

		case len(line) == 0:
			continue
		}

		if err := s.Line(line); errors.Is(err, ErrExit) {
			return nil
		}
	}
}

// Close flushes history and releases the line reader.
func (s *Shell) Close() error {
	if s.Lines == nil {
		return nil
	}
	return s.Lines.Close()
}
