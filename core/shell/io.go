package shell

import (
	"io"
	"strings"
)

// VIO holds the standard streams of a shell session.
type VIO interface {
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer
}

// VIOAdapter implements VIO over arbitrary readers and writers.
type VIOAdapter struct {
	IStdin  io.Reader
	IStdout io.Writer
	IStderr io.Writer
}

var _ VIO = (*VIOAdapter)(nil)

// NewVIOAdapter creates a VIO, nil streams read as empty and discard writes.
func NewVIOAdapter(stdin io.Reader, stdout, stderr io.Writer) *VIOAdapter {
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	return &VIOAdapter{
		IStdin:  stdin,
		IStdout: stdout,
		IStderr: stderr,
	}
}

func (pr *VIOAdapter) Stdin() io.Reader {
	return pr.IStdin
}

func (pr *VIOAdapter) Stdout() io.Writer {
	return pr.IStdout
}

func (pr *VIOAdapter) Stderr() io.Writer {
	return pr.IStderr
}
