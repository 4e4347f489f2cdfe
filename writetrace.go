package graalmk

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
	"git.fractalqb.de/fractalqb/sllm/v3"
)

// WriteTracer writes one line per trace event to W. Each line starts with
// the build ID and the tag of the traced object. Log selects which events are
// written.
type WriteTracer struct {
	W   io.Writer
	Log mkore.TraceLog
}

var _ mkore.Tracer = (*WriteTracer)(nil)

func DefaultTracer() *WriteTracer {
	return &WriteTracer{W: os.Stderr, Log: mkore.TraceWarn}
}

// ParseLogFlag sets Log from one of off, warn, info or debug. The empty
// string keeps the current setting.
func (tr *WriteTracer) ParseLogFlag(f string) error {
	switch f {
	case "":
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = mkore.TraceWarn
	case "info", "i":
		tr.Log = mkore.TraceWarn | mkore.TraceInfo
	case "debug", "d":
		tr.Log = mkore.TraceWarn | mkore.TraceInfo | mkore.TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr *WriteTracer) Debug(t *mkore.Trace, msg string, args ...any) {
	tr.message(t, mkore.TraceDebug, "DEBUG", msg, args)
}

func (tr *WriteTracer) Info(t *mkore.Trace, msg string, args ...any) {
	tr.message(t, mkore.TraceInfo, "INFO ", msg, args)
}

func (tr *WriteTracer) Warn(t *mkore.Trace, msg string, args ...any) {
	tr.message(t, mkore.TraceWarn, "WARN ", msg, args)
}

func (tr *WriteTracer) StartProject(t *mkore.Trace, p *mkore.Project, activity string) {
	if tr.Log != 0 {
		tr.line(t, "{ %s project '%s' in %s", activity, p, p.Dir)
	}
}

func (tr *WriteTracer) DoneProject(t *mkore.Trace, p *mkore.Project, activity string, dt time.Duration) {
	if tr.Log != 0 {
		tr.line(t, "} %s project '%s' took %s", activity, p, dt)
	}
}

func (tr *WriteTracer) RunAction(t *mkore.Trace, a *mkore.Action) {
	if tr.Log&(mkore.TraceInfo|mkore.TraceDebug) != 0 {
		tr.line(t, "  run action (%s)", a)
	}
}

func (tr *WriteTracer) RunImplicitAction(t *mkore.Trace, _ *mkore.Action) {
	if tr.Log&mkore.TraceDebug != 0 {
		tr.line(t, "  implicit action")
	}
}

func (tr *WriteTracer) ActionHash(t *mkore.Trace, a *mkore.Action, sum []byte) {
	if tr.Log&mkore.TraceDebug != 0 {
		tr.line(t, "  hash %x of (%s)", sum, a)
	}
}

func (tr *WriteTracer) CheckGoal(t *mkore.Trace, g *mkore.Goal) {
	if tr.Log&mkore.TraceDebug != 0 {
		tr.line(t, "? %s %s", g, t.Path())
	}
}

func (tr *WriteTracer) GoalUpToDate(t *mkore.Trace, g *mkore.Goal) {
	if tr.Log != 0 {
		tr.line(t, ". %s is up-to-date", g)
	}
}

func (tr *WriteTracer) GoalNeedsActions(t *mkore.Trace, g *mkore.Goal, n int) {
	if tr.Log&(mkore.TraceInfo|mkore.TraceDebug) != 0 {
		tr.line(t, "! %s needs %d actions", g, n)
	}
}

func (tr *WriteTracer) RemoveArtefact(t *mkore.Trace, g *mkore.Goal) {
	if tr.Log != 0 {
		tr.line(t, "! remove artefact %s", g)
	}
}

// message is written if Log contains level or any more verbose level.
func (tr *WriteTracer) message(t *mkore.Trace, level mkore.TraceLog, tag, msg string, args []any) {
	if tr.Log < level {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t  %s ", t.Build(), t.TopTag(), tag)
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr *WriteTracer) line(t *mkore.Trace, format string, args ...any) {
	fmt.Fprintf(tr.W, "%d@%s\t", t.Build(), t.TopTag())
	fmt.Fprintf(tr.W, format, args...)
	fmt.Fprintln(tr.W)
}

// sllmArgs looks up sllm template arguments in slog-like key/value lists.
type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no key '%s'", n)
}
