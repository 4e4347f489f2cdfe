package mkore

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Tracer receives the events of builds and cleanups. Messages passed to
// Debug, Info and Warn name their arguments in backticks, e.g. "run
// `action`", followed by key/value pairs as with log/slog.
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)

	StartProject(t *Trace, p *Project, activity string)
	DoneProject(t *Trace, p *Project, activity string, dt time.Duration)

	RunAction(t *Trace, a *Action)
	RunImplicitAction(t *Trace, a *Action)
	ActionHash(t *Trace, a *Action, sum []byte)

	CheckGoal(t *Trace, g *Goal)
	GoalUpToDate(t *Trace, g *Goal)
	GoalNeedsActions(t *Trace, g *Goal, n int)

	RemoveArtefact(t *Trace, g *Goal)
}

type TraceLog int

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

// Trace is the position of a running build in the graph of a project. Traces
// form a stack of projects, goals and actions.
type Trace struct {
	root *traceRoot
	up   *Trace
	obj  any
	id   uint64
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Trace{root: &traceRoot{ctx: ctx, tr: t}}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }

func (t *Trace) startProject(p *Project, activity string) {
	t.root.prj = p
	t.root.tr.StartProject(t, p, activity)
}

func (t *Trace) doneProject(p *Project, activity string, dt time.Duration) {
	t.root.tr.DoneProject(t, p, activity, dt)
	t.root.prj = nil
}

func (t *Trace) runAction(a *Action)             { t.root.tr.RunAction(t, a) }
func (t *Trace) runImplicitAction(a *Action)     { t.root.tr.RunImplicitAction(t, a) }
func (t *Trace) actionHash(a *Action, s []byte)  { t.root.tr.ActionHash(t, a, s) }
func (t *Trace) checkGoal(g *Goal)               { t.root.tr.CheckGoal(t, g) }
func (t *Trace) goalUpToDate(g *Goal)            { t.root.tr.GoalUpToDate(t, g) }
func (t *Trace) goalNeedsActions(g *Goal, n int) { t.root.tr.GoalNeedsActions(t, g, n) }
func (t *Trace) removeArtefact(g *Goal)          { t.root.tr.RemoveArtefact(t, g) }

// Build returns the ID of the build that is traced, 0 if none.
func (t *Trace) Build() BuildID {
	if t.root.prj == nil {
		return 0
	}
	return t.root.prj.Build()
}

func (t *Trace) TopID() uint64 { return t.id }

func (t *Trace) TopTag() string {
	switch t.obj.(type) {
	case *Goal:
		return fmt.Sprintf("[%d]", t.id)
	case *Action:
		return fmt.Sprintf("(%d)", t.id)
	case *Project:
		return fmt.Sprintf("{%d}", t.id)
	case nil:
		return ""
	}
	return fmt.Sprintf("!%T!", t.obj)
}

func (t *Trace) Path() string {
	var sb strings.Builder
	sb.WriteByte('<')
	for ; t != nil; t = t.up {
		sb.WriteString(t.TopTag())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Trace) String() string {
	if t.root.prj == nil {
		return t.Path()
	}
	return fmt.Sprintf("%d@%s", t.Build(), t.Path())
}

func (t *Trace) push(obj any) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		obj:  obj,
		id:   t.root.idSeq.Add(1),
	}
}

func (t *Trace) pushProject(p *Project) *Trace { return t.push(p) }
func (t *Trace) pushGoal(g *Goal) *Trace       { return t.push(g) }
func (t *Trace) pushAction(a *Action) *Trace   { return t.push(a) }

type traceRoot struct {
	ctx   context.Context
	tr    Tracer
	prj   *Project
	idSeq atomic.Uint64
}
