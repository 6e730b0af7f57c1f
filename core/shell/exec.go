package shell

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// RunningProcess is a spawned pipeline stage.
type RunningProcess struct {
	cmd *exec.Cmd

	// output is the read end of the stage's stdout, nil when the stage
	// writes straight to the shell's stdout.
	output *os.File
}

// Pid returns the OS process ID.
func (p *RunningProcess) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the process exits. A non-zero exit status is not an
// error.
func (p *RunningProcess) Wait() error {
	p.closeOutput()

	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// Release gives up ownership of the process without blocking. Its output
// pipe is closed and the process is reaped in the background.
func (p *RunningProcess) Release() {
	p.closeOutput()
	go p.cmd.Wait()
}

func (p *RunningProcess) closeOutput() {
	if p.output != nil {
		p.output.Close()
		p.output = nil
	}
}

// Executor spawns pipeline stages as OS processes.
type Executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env holds the environment of spawned processes, nil inherits the
	// shell's environment.
	Env []string
}

// NewExecutor creates an executor using the session's streams.
func NewExecutor(vio VIO) *Executor {
	return &Executor{
		Stdin:  vio.Stdin(),
		Stdout: vio.Stdout(),
		Stderr: vio.Stderr(),
	}
}

// Start spawns the external command of segment.
//
// The stage reads from prev's output, or the shell's stdin if prev is nil.
// If piped is set its stdout is captured for the next stage, otherwise it
// inherits the shell's stdout. The caller remains the owner of prev.
func (e *Executor) Start(segment *Segment, prev *RunningProcess, piped bool) (*RunningProcess, error) {
	cmd := exec.Command(segment.Name, segment.Args...)
	cmd.Env = e.Env
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if prev != nil && prev.output != nil {
		cmd.Stdin = prev.output
	}

	var pipeReader, pipeWriter *os.File
	if piped {
		var err error
		pipeReader, pipeWriter, err = os.Pipe()
		if err != nil {
			return nil, err
		}
		cmd.Stdout = pipeWriter
	}

	err := cmd.Start()

	// The child holds its own copy of the write end.
	if pipeWriter != nil {
		pipeWriter.Close()
	}

	if err != nil {
		if pipeReader != nil {
			pipeReader.Close()
		}
		return nil, err
	}

	return &RunningProcess{cmd: cmd, output: pipeReader}, nil
}
