package shell

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/gosh/core/prompt"
	"github.com/stretchr/testify/assert"
)

// fakeLines is a scripted LineReader.
type fakeLines struct {
	input   []string
	err     []error
	prompts []string
	saved   []string
	vimMode []bool
	resets  int
	closed  bool
}

var _ LineReader = (*fakeLines)(nil)

func (f *fakeLines) SetPrompt(prompt string) {
	f.prompts = append(f.prompts, prompt)
}

func (f *fakeLines) Readline() (string, error) {
	if len(f.input) == 0 {
		return "", io.EOF
	}
	line, err := f.input[0], f.err[0]
	f.input, f.err = f.input[1:], f.err[1:]
	return line, err
}

func (f *fakeLines) SaveHistory(line string) error {
	f.saved = append(f.saved, line)
	return nil
}

func (f *fakeLines) ResetHistory() {
	f.resets++
}

func (f *fakeLines) SetVimMode(on bool) {
	f.vimMode = append(f.vimMode, on)
}

func (f *fakeLines) Close() error {
	f.closed = true
	return nil
}

func (f *fakeLines) add(line string, err error) *fakeLines {
	f.input = append(f.input, line)
	f.err = append(f.err, err)
	return f
}

func newBuiltinShell() (*Shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewShell("/home/u", NewVIOAdapter(nil, out, out)), out
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{
		"alias",
		"aliases",
		"cd",
		"exec",
		"exit",
		"help",
		"history",
		"set-mode",
		"set-prompt",
		"set-prompt-mode",
	}, BuiltinNames())

	_, ok := LookupBuiltin("echo")
	assert.False(t, ok, "echo runs as a program")
}

func TestCd(t *testing.T) {
	t.Run("to directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(os.TempDir())
		s, out := newBuiltinShell()

		assert.Nil(t, s.Line("cd "+dir))
		wd, err := os.Getwd()
		assert.Nil(t, err)
		assert.Equal(t, resolved(t, dir), resolved(t, wd))
		assert.Empty(t, out.String())
	})

	t.Run("defaults to root", func(t *testing.T) {
		t.Chdir(t.TempDir())
		s, _ := newBuiltinShell()

		assert.Nil(t, s.Line("cd"))
		wd, err := os.Getwd()
		assert.Nil(t, err)
		assert.Equal(t, "/", wd)
	})

	t.Run("failure keeps directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		s, out := newBuiltinShell()

		assert.Nil(t, s.Line("cd "+filepath.Join(dir, "missing")))
		wd, err := os.Getwd()
		assert.Nil(t, err)
		assert.Equal(t, resolved(t, dir), resolved(t, wd))
		assert.Contains(t, out.String(), "error: ")
	})

	t.Run("tilde", func(t *testing.T) {
		home := t.TempDir()
		t.Chdir(os.TempDir())
		s, _ := newBuiltinShell()
		s.Home = home

		assert.Nil(t, s.Line("cd ~"))
		wd, err := os.Getwd()
		assert.Nil(t, err)
		assert.Equal(t, resolved(t, home), resolved(t, wd))
	})
}

func resolved(t *testing.T, path string) string {
	t.Helper()

	out, err := filepath.EvalSymlinks(path)
	assert.Nil(t, err)
	return out
}

func TestExitBuiltin(t *testing.T) {
	s, _ := newBuiltinShell()

	assert.ErrorIs(t, s.Line("exit"), ErrExit)
	assert.ErrorIs(t, s.Line("exit 3"), ErrExit)
}

func TestExecBuiltin(t *testing.T) {
	s, out := newBuiltinShell()

	assert.ErrorIs(t, s.Line("exec echo replaced"), ErrExit)
	assert.Equal(t, "replaced\n", out.String())
}

func TestAlias(t *testing.T) {
	s, out := newBuiltinShell()

	assert.Nil(t, s.Line("alias ll ls -la"))
	assert.Nil(t, s.Line("alias g git"))
	assert.Nil(t, s.Line("alias ll ls -lah"))
	assert.Empty(t, out.String())

	assert.Nil(t, s.Line("aliases"))
	assert.Equal(t, "g: git\nll: ls -lah\n", out.String())

	t.Run("help", func(t *testing.T) {
		out.Reset()
		assert.Nil(t, s.Line("alias --help"))
		assert.Contains(t, out.String(), "usage: alias NAME WORD...")
		assert.Equal(t, 2, s.Aliases.Len())
	})

	t.Run("option-like names", func(t *testing.T) {
		out.Reset()
		assert.Nil(t, s.Line("alias -n echo -n"))
		assert.Empty(t, out.String())

		phrase, ok := s.Aliases.Get("-n")
		assert.True(t, ok)
		assert.Equal(t, "echo -n", phrase)

		name, args := s.Aliases.Expand("-n", []string{"hi"})
		assert.Equal(t, "echo", name)
		assert.Equal(t, []string{"-n", "hi"}, args)
	})
}

func TestSetMode(t *testing.T) {
	s, out := newBuiltinShell()
	lines := &fakeLines{}
	s.Lines = lines

	assert.Nil(t, s.Line("set-mode vi"))
	assert.Equal(t, KeyBindingsVi, s.KeyBindings())

	assert.Nil(t, s.Line("set-mode emacs"))
	assert.Equal(t, KeyBindingsEmacs, s.KeyBindings())

	assert.Nil(t, s.Line("set-mode nano"))
	assert.Equal(t, KeyBindingsEmacs, s.KeyBindings())

	assert.Equal(t, []bool{true, false}, lines.vimMode)
	assert.Equal(t, "error: invalid mode\n", out.String())
}

func TestSetPrompt(t *testing.T) {
	s, _ := newBuiltinShell()

	assert.Nil(t, s.Line("set-prompt {pwd-end} $ "))
	assert.Equal(t, "{pwd-end} $", s.Prompt.Template)

	assert.Nil(t, s.Line("set-prompt-mode reactive"))
	assert.Equal(t, prompt.ModeReactive, s.Prompt.Mode)

	s.Prompt.Getwd = func() (string, error) { return "/src/gosh", nil }
	assert.Equal(t, "gosh $", s.Prompt.Display())

	assert.Nil(t, s.Line("set-prompt-mode basic"))
	assert.Equal(t, "{pwd-end} $", s.Prompt.Display())
}

func TestHistory(t *testing.T) {
	s, out := newBuiltinShell()
	lines := &fakeLines{}
	s.Lines = lines

	assert.Nil(t, s.Line("alias a b"))
	assert.Nil(t, s.Line("history"))
	assert.Equal(t, "    0  alias a b\n    1  history\n", out.String())

	assert.Nil(t, s.Line("history -c"))
	assert.Empty(t, s.History())
	assert.Equal(t, 1, lines.resets)
	assert.Equal(t, []string{"alias a b", "history", "history -c"}, lines.saved)
}

func TestHelp(t *testing.T) {
	s, out := newBuiltinShell()

	assert.Nil(t, s.Line("help"))
	for _, name := range BuiltinNames() {
		assert.Contains(t, out.String(), "\n"+name+"\n")
	}
}
