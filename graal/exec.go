package graal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// Result is what an [Executor] reports about a native-image run.
type Result struct {
	Exe      string
	Args     []string
	ExitCode int // -1 if the process could not be run
	Output   []byte
}

func (r *Result) Success() bool { return r.ExitCode == 0 }

// Executor runs an external process and waits for it to terminate.
type Executor interface {
	Exec(ctx context.Context, exe string, args []string) (*Result, error)
}

type ExecutorFunc func(ctx context.Context, exe string, args []string) (*Result, error)

func (f ExecutorFunc) Exec(ctx context.Context, exe string, args []string) (*Result, error) {
	return f(ctx, exe, args)
}

// ProcExecutor runs processes with os/exec. Stdout and stderr of the process
// are captured into Result.Output and also streamed to Stdout and Stderr if
// they are set.
type ProcExecutor struct {
	Dir            string
	Env            []string // nil: inherit the current process environment
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

var _ Executor = (*ProcExecutor)(nil)

func (x *ProcExecutor) Exec(ctx context.Context, exe string, args []string) (*Result, error) {
	var (
		out lockedBuffer
		cmd = exec.CommandContext(ctx, exe, args...)
	)
	cmd.Dir = x.Dir
	cmd.Env = x.Env
	cmd.Stdin = x.Stdin
	cmd.Stdout = teeTo(&out, x.Stdout)
	cmd.Stderr = teeTo(&out, x.Stderr)
	res := &Result{Exe: exe, Args: args}
	err := cmd.Run()
	res.Output = out.Bytes()
	if err == nil {
		return res, nil
	}
	var xerr *exec.ExitError
	if errors.As(err, &xerr) {
		res.ExitCode = xerr.ExitCode()
	} else {
		res.ExitCode = -1
	}
	return res, &ProcessError{Result: res, Err: err}
}

func teeTo(capture io.Writer, w io.Writer) io.Writer {
	if w == nil {
		return capture
	}
	return io.MultiWriter(capture, w)
}

// Stdout and stderr are copied by separate goroutines of os/exec
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}
