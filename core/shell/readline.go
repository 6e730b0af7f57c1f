package shell

import (
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/gosh/core/config"
	"golang.org/x/term"
)

// LineReader is an interactive line source that also keeps history.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	SaveHistory(line string) error
	ResetHistory()
	SetVimMode(on bool)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// NewLineReader creates a line editor on the session's streams using the
// history and key binding settings. If the history file can't be used a
// warning is logged and history is only kept in memory.
func NewLineReader(cfg *config.Configuration, vio VIO, log *Logger) (*readline.Instance, error) {
	historyFile := cfg.HistoryPath()
	if err := cfg.CheckHistory(); err != nil {
		log.Warnf("failed to load history: %v", err)
		historyFile = ""
	}

	historyLimit := cfg.HistorySize
	if historyLimit == 0 {
		// readline treats 0 as the default size, negative disables history.
		historyLimit = -1
	}

	rlCfg := &readline.Config{
		HistoryFile:            historyFile,
		HistoryLimit:           historyLimit,
		DisableAutoSaveHistory: true,
		VimMode:                cfg.KeyBindings == KeyBindingsVi,
		Stdin:                  readline.NewCancelableStdin(vio.Stdin()),
		Stdout:                 vio.Stdout(),
		Stderr:                 vio.Stderr(),
		FuncIsTerminal: func() bool {
			return isTerminal(vio.Stdin()) && isTerminal(vio.Stdout())
		},
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(rlCfg)
}

func isTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
