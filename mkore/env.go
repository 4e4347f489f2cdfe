package mkore

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
)

// Env is the environment actions run in: standard I/O, a logger and the
// variables passed to external commands. A sub-environment falls back to the
// variables of its parent.
type Env struct {
	In       io.Reader
	Out, Err io.Writer
	Log      *slog.Logger

	vars   map[string]string
	unset  map[string]bool
	parent *Env

	cmdEnv    []string
	cmdEnvErr error
}

// DefaultEnv uses the standard I/O, the default logger and the environment
// of the current process.
func DefaultEnv() *Env {
	env := &Env{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		Log: slog.Default(),
	}
	env.SetVars(os.Environ()...)
	return env
}

// Logger returns e.Log or the default logger if e has none.
func (e *Env) Logger() *slog.Logger {
	if e.Log == nil {
		return slog.Default()
	}
	return e.Log
}

func (e *Env) Sub() *Env {
	return &Env{
		In: e.In, Out: e.Out, Err: e.Err,
		Log:    e.Log,
		parent: e,
	}
}

func (e *Env) Var(key string) (string, bool) {
	for e != nil {
		if v, ok := e.vars[key]; ok {
			return v, true
		}
		if e.unset[key] {
			break
		}
		e = e.parent
	}
	return "", false
}

func (e *Env) SetVar(key, val string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[key] = val
	delete(e.unset, key)
	e.cmdEnv, e.cmdEnvErr = nil, nil
}

// SetVars sets variables from "key=value" strings. A string without '=' sets
// the variable to the empty string.
func (e *Env) SetVars(kvs ...string) {
	for _, kv := range kvs {
		k, v, _ := strings.Cut(kv, "=")
		e.SetVar(k, v)
	}
}

func (e *Env) Unset(key string) {
	delete(e.vars, key)
	if e.parent != nil {
		if e.unset == nil {
			e.unset = make(map[string]bool)
		}
		e.unset[key] = true
	}
	e.cmdEnv, e.cmdEnvErr = nil, nil
}

// BadVarNames is returned by [Env.CmdEnv] for variables that cannot be
// passed to an external command.
type BadVarNames []string

func (e BadVarNames) Error() string {
	return fmt.Sprintf("illegal command env names: %s", strings.Join(e, ", "))
}

func (BadVarNames) Is(target error) bool {
	_, ok := target.(BadVarNames)
	return ok
}

// CmdEnv returns the variables sorted by name in the form expected by
// os/exec. Variables with illegal names are skipped and reported as
// [BadVarNames] error. The result is never nil, an Env without variables
// gives external commands an empty environment.
func (e *Env) CmdEnv() ([]string, error) {
	if e.cmdEnv == nil {
		e.cmdEnv = []string{}
		var bad []string
		vars := e.merged()
		for _, k := range slices.Sorted(maps.Keys(vars)) {
			switch {
			case k == "":
				bad = append(bad, `""`)
			case strings.ContainsRune(k, '='):
				bad = append(bad, k)
			default:
				e.cmdEnv = append(e.cmdEnv, k+"="+vars[k])
			}
		}
		if len(bad) > 0 {
			e.cmdEnvErr = BadVarNames(bad)
		}
	}
	return e.cmdEnv, e.cmdEnvErr
}

func (e *Env) merged() map[string]string {
	if e.parent == nil {
		return maps.Clone(e.vars)
	}
	res := e.parent.merged()
	if res == nil {
		res = make(map[string]string)
	}
	for k := range e.unset {
		delete(res, k)
	}
	maps.Copy(res, e.vars)
	return res
}
