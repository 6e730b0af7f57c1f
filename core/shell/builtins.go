package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/josephlewis42/gosh/core/prompt"
	"github.com/pborman/getopt/v2"
)

// ErrExit is returned when the shell should stop, it is not a failure.
var ErrExit = errors.New("exit")

// UsageError is returned by a builtin that was called without a required
// argument. It abandons the rest of the line.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageError(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Builtin is a command that runs inside the shell process. The args include
// the builtin's name.
type Builtin interface {
	Main(s *Shell, args []string) error
}

// BuiltinFunc adapts a function to a Builtin.
type BuiltinFunc func(s *Shell, args []string) error

func (f BuiltinFunc) Main(s *Shell, args []string) error {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// allBuiltins holds the fixed set of builtins, they can't be shadowed by
// aliases.
var allBuiltins = make(map[string]Builtin)

// LookupBuiltin finds a builtin by name.
func LookupBuiltin(name string) (Builtin, bool) {
	builtin, ok := allBuiltins[name]
	return builtin, ok
}

// BuiltinNames returns the sorted names of all builtins.
func BuiltinNames() []string {
	var names []string
	for name := range allBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinCommand parses the options of a builtin.
type builtinCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the builtin.
	Short string
	// HelpOnly builtins take no options except a leading -h/--help, every
	// other word is passed through as an argument.
	HelpOnly bool

	flags *getopt.Set
}

// Flags gets the builtin's flag set.
func (b *builtinCommand) Flags() *getopt.Set {
	if b.flags == nil {
		b.flags = getopt.New()
	}
	return b.flags
}

// PrintHelp writes help for the builtin to the given writer.
func (b *builtinCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, b.Use)
	fmt.Fprintln(w, b.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	b.Flags().PrintOptions(w)
}

// Run parses args and calls the callback with the remaining arguments.
func (b *builtinCommand) Run(s *Shell, args []string, callback func(args []string) error) error {
	if b.HelpOnly {
		if len(args) > 1 && (args[1] == "-h" || args[1] == "--help") {
			b.PrintHelp(s.IO.Stdout())
			return nil
		}
		return callback(args[1:])
	}

	opts := b.Flags()
	showHelp := opts.BoolLong("help", 'h', "show this help and exit")

	if err := opts.Getopt(args, nil); err != nil {
		return usageError("%s: %v", args[0], err)
	}

	if *showHelp {
		b.PrintHelp(s.IO.Stdout())
		return nil
	}

	return callback(opts.Args())
}

// Cd changes the working directory, to / if no path is given.
func Cd(s *Shell, args []string) error {
	dir := "/"
	if len(args) > 1 {
		dir = args[1]
	}
	return os.Chdir(dir)
}

// Exit stops the shell.
func Exit(s *Shell, args []string) error {
	return ErrExit
}

// Exec runs the rest of the line and then stops the shell.
func Exec(s *Shell, args []string) error {
	if err := s.Line(strings.Join(args[1:], " ")); err != nil && !errors.Is(err, ErrExit) {
		return err
	}
	return ErrExit
}

// Alias creates or replaces an alias.
func Alias(s *Shell, args []string) error {
	cmd := &builtinCommand{
		Use:      "alias NAME WORD...",
		Short:    "Define NAME as a shorthand for the command WORD...",
		HelpOnly: true,
	}

	return cmd.Run(s, args, func(words []string) error {
		switch len(words) {
		case 0:
			return usageError("missing alias")
		case 1:
			return usageError("missing alias target")
		}

		s.Aliases.Set(words[0], strings.Join(words[1:], " "))
		return nil
	})
}

// Aliases lists the alias table.
func Aliases(s *Shell, args []string) error {
	cmd := &builtinCommand{
		Use:   "aliases",
		Short: "List defined aliases.",
	}

	return cmd.Run(s, args, func([]string) error {
		w := s.IO.Stdout()
		for _, pair := range s.Aliases.Pairs() {
			fmt.Fprintf(w, "%s: %s\n", pair.Name, pair.Phrase)
		}
		return nil
	})
}

// SetMode switches the line editor's key bindings.
func SetMode(s *Shell, args []string) error {
	cmd := &builtinCommand{
		Use:   "set-mode vi|emacs",
		Short: "Set the line editing key bindings.",
	}

	return cmd.Run(s, args, func(words []string) error {
		if len(words) == 0 {
			return usageError("missing mode")
		}
		return s.SetKeyBindings(words[0])
	})
}

// SetPrompt sets the prompt template.
func SetPrompt(s *Shell, args []string) error {
	s.Prompt.Template = strings.Join(args[1:], " ")
	return nil
}

// SetPromptMode chooses how the prompt template is rendered.
func SetPromptMode(s *Shell, args []string) error {
	cmd := &builtinCommand{
		Use:   "set-prompt-mode basic|reactive",
		Short: "Set how the prompt template is rendered.",
	}

	return cmd.Run(s, args, func(words []string) error {
		if len(words) == 0 {
			return usageError("missing mode")
		}

		mode, err := prompt.ParseMode(words[0])
		if err != nil {
			return err
		}
		s.Prompt.Mode = mode
		return nil
	})
}

// History lists or clears the lines entered in this session.
func History(s *Shell, args []string) error {
	cmd := &builtinCommand{
		Use:   "history [-c]",
		Short: "Display or clear the history list.",
	}
	clearOpt := cmd.Flags().Bool('c', "clear the history by deleting all entries")

	return cmd.Run(s, args, func([]string) error {
		if *clearOpt {
			s.ClearHistory()
			return nil
		}

		for i, line := range s.History() {
			fmt.Fprintf(s.IO.Stdout(), "% 5d  %s\n", i, line)
		}
		return nil
	})
}

// Help lists the builtins.
func Help(s *Shell, args []string) error {
	cmd := &builtinCommand{
		Use:   "help",
		Short: "List the shell builtins.",
	}

	return cmd.Run(s, args, func([]string) error {
		w := s.IO.Stdout()
		fmt.Fprintln(w, "These shell commands are defined internally.")
		fmt.Fprintln(w, "Anything else is run as a program, after alias expansion.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Join(BuiltinNames(), "\n"))
		return nil
	})
}

func init() {
	allBuiltins["cd"] = BuiltinFunc(Cd)
	allBuiltins["exit"] = BuiltinFunc(Exit)
	allBuiltins["exec"] = BuiltinFunc(Exec)
	allBuiltins["alias"] = BuiltinFunc(Alias)
	allBuiltins["aliases"] = BuiltinFunc(Aliases)
	allBuiltins["set-mode"] = BuiltinFunc(SetMode)
	allBuiltins["set-prompt"] = BuiltinFunc(SetPrompt)
	allBuiltins["set-prompt-mode"] = BuiltinFunc(SetPromptMode)
	allBuiltins["history"] = BuiltinFunc(History)
	allBuiltins["help"] = BuiltinFunc(Help)
}
