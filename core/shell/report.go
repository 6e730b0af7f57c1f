package shell

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	errorPrefix = "error: "
	warnPrefix  = "warn: "
)

// Logger reports problems to the user. Errors go to Stderr and warnings to
// Stdout, each behind a colored prefix.
type Logger struct {
	Stdout io.Writer
	Stderr io.Writer
	Color  bool
}

// Errorf reports a failure that aborted part of a line.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.print(l.Stderr, color.FgRed, errorPrefix, format, args...)
}

// Warnf reports a non-fatal problem with an optional subsystem.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.print(l.Stdout, color.FgGreen, warnPrefix, format, args...)
}

// Error reports err with Errorf.
func (l *Logger) Error(err error) {
	l.Errorf("%v", err)
}

func (l *Logger) print(w io.Writer, attr color.Attribute, prefix, format string, args ...interface{}) {
	c := color.New(attr)
	if l.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	c.Fprint(w, prefix)
	fmt.Fprintf(w, format+"\n", args...)
}
