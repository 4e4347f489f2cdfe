package mkore

import (
	"testing"
	"time"
)

type testTracer struct{ t *testing.T }

var _ Tracer = testTracer{}

func (tr testTracer) Debug(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"DEBUG", msg}, args...)...)
}

func (tr testTracer) Info(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"INFO", msg}, args...)...)
}

func (tr testTracer) Warn(_ *Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"WARN", msg}, args...)...)
}

func (tr testTracer) StartProject(_ *Trace, p *Project, activity string) {
	tr.t.Logf("{ %s %s", activity, p)
}

func (tr testTracer) DoneProject(_ *Trace, p *Project, activity string, dt time.Duration) {
	tr.t.Logf("} %s %s took %s", activity, p, dt)
}

func (tr testTracer) RunAction(_ *Trace, a *Action)         { tr.t.Logf("run (%s)", a) }
func (tr testTracer) RunImplicitAction(_ *Trace, a *Action) { tr.t.Logf("implicit (%s)", a) }

func (tr testTracer) ActionHash(_ *Trace, a *Action, sum []byte) {
	tr.t.Logf("hash (%s) %x", a, sum)
}

func (tr testTracer) CheckGoal(_ *Trace, g *Goal)               { tr.t.Logf("? %s", g) }
func (tr testTracer) GoalUpToDate(_ *Trace, g *Goal)            { tr.t.Logf(". %s", g) }
func (tr testTracer) GoalNeedsActions(_ *Trace, g *Goal, n int) { tr.t.Logf("! %s %d", g, n) }
func (tr testTracer) RemoveArtefact(_ *Trace, g *Goal)          { tr.t.Logf("rm %s", g) }
