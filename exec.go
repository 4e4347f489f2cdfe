package graalmk

import (
	"fmt"
	"hash"
	"log/slog"
	"os"
	"path/filepath"

	"git.fractalqb.de/fractalqb/graalmk/graal"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// CmdOp runs an external command with the standard I/O and the variables of
// the action's [Env]. A relative CWD is relative to the project directory.
type CmdOp struct {
	CWD             string
	Exe             string
	Args            []string
	InFile, OutFile string
	Desc            string

	// OutPrefix is written at the start of each line the command writes to
	// the env's Out and Err.
	OutPrefix string
}

var _ Operation = (*CmdOp)(nil)

func (op *CmdOp) Describe(*Action, *Env) string {
	if op.Desc == "" {
		return fmt.Sprintf("%s%v", filepath.Base(op.Exe), op.Args)
	}
	return op.Desc
}

func (op *CmdOp) Do(tr *Trace, a *Action, env *Env) error {
	x := envExecutor(tr, a, env)
	if op.CWD != "" {
		x.Dir = mustRet(a.Project().AbsPath(op.CWD))
	}
	if op.InFile != "" {
		r, err := os.Open(op.InFile)
		if err != nil {
			return err
		}
		defer r.Close()
		x.Stdin = r
	}
	if op.OutFile != "" {
		w, err := os.Create(op.OutFile)
		if err != nil {
			return err
		}
		defer w.Close()
		x.Stdout = w
	} else if op.OutPrefix != "" && x.Stdout != nil {
		x.Stdout = mkore.NewPrefixWriter(x.Stdout, op.OutPrefix)
	}
	if op.OutPrefix != "" && x.Stderr != nil {
		x.Stderr = mkore.NewPrefixWriter(x.Stderr, op.OutPrefix)
	}
	log := env.Logger()
	log.Debug("exec `cmd` in `dir`",
		slog.String("cmd", op.Exe),
		slog.Any("args", op.Args),
		slog.String("dir", x.Dir),
	)
	_, err := x.Exec(tr.Ctx(), op.Exe, op.Args)
	if err != nil {
		log.Error("failed `cmd` in `dir` with `error`",
			slog.String("cmd", op.Exe),
			slog.String("dir", x.Dir),
			slog.String("error", err.Error()),
		)
	}
	return err
}

func (op *CmdOp) WriteHash(h hash.Hash, _ *Action, _ *Env) (bool, error) {
	fmt.Fprintln(h, op.CWD)
	fmt.Fprintln(h, op.Exe)
	for _, arg := range op.Args {
		fmt.Fprintln(h, arg)
	}
	fmt.Fprintln(h, op.InFile)
	fmt.Fprintln(h, op.OutFile)
	return true, nil
}

// envExecutor runs processes in the project directory of a with the standard
// I/O and command variables of env.
func envExecutor(tr *Trace, a *Action, env *Env) *graal.ProcExecutor {
	xenv, err := env.CmdEnv()
	if err != nil {
		tr.Warn("`action` env: `error`", `action`, a, `error`, err)
	}
	return &graal.ProcExecutor{
		Dir:    a.Project().Dir,
		Env:    xenv,
		Stdin:  env.In,
		Stdout: env.Out,
		Stderr: env.Err,
	}
}
