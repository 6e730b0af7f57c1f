package cmd

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	commandLine string
)

// exitError carries the process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode maps an OS error to a process exit status: the errno if there is
// one, otherwise 1.
func exitCode(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}
	return 1
}

// homeDir returns the user's home directory, or the working directory if it
// can't be determined.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./"
	}
	return home
}

// session holds everything needed to evaluate input.
type session struct {
	cfg   *config.Configuration
	shell *shell.Shell
}

func newSession(fs afero.Fs, vio shell.VIO) *session {
	home := homeDir()
	dir := cfgPath
	if dir == "" {
		dir = home
	}

	sh := shell.NewShell(home, vio)

	cfg, err := config.Load(fs, dir)
	if err != nil {
		sh.Log.Warnf("couldn't load settings: %v", err)
		cfg = config.Default(fs, dir)
	}

	if err := sh.Configure(cfg); err != nil {
		sh.Log.Warnf("couldn't apply settings: %v", err)
	}

	return &session{cfg: cfg, shell: sh}
}

// runScript evaluates a script file and stops.
func (s *session) runScript(path string) error {
	script, err := s.cfg.ReadScript(path)
	if err != nil {
		s.shell.Log.Error(err)
		return &exitError{code: exitCode(err), err: err}
	}

	if err := s.shell.Eval(string(script)); err != nil && !errors.Is(err, shell.ErrExit) {
		return err
	}
	return nil
}

// runInteractive evaluates the startup script and then reads lines until the
// input ends or the shell exits.
func (s *session) runInteractive(vio shell.VIO) error {
	lines, err := shell.NewLineReader(s.cfg, vio, s.shell.Log)
	if err != nil {
		return err
	}
	s.shell.Lines = lines
	defer s.shell.Close()

	if err := s.shell.Source(s.cfg); err != nil {
		if errors.Is(err, shell.ErrExit) {
			return nil
		}
		return err
	}

	return s.shell.Run()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gosh [script]",
	Short: "A small interactive shell",
	Long: `An interactive command interpreter with aliases and pipelines.

With no arguments the startup script is evaluated and lines are read from the
terminal. Given a script, each of its lines is evaluated and the shell exits.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		vio := shell.NewVIOAdapter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		s := newSession(afero.NewOsFs(), vio)

		switch {
		case cmd.Flags().Changed("command"):
			if err := s.shell.Line(commandLine); err != nil && !errors.Is(err, shell.ErrExit) {
				return err
			}
			return nil
		case len(args) == 1:
			return s.runScript(args[0])
		default:
			return s.runInteractive(vio)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(run(rootCmd, os.Args[1:], os.Stderr))
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	log := &shell.Logger{Stdout: stderr, Stderr: stderr}
	log.Error(err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "settings directory (default is the home directory)")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "evaluate a single line and exit")
}
