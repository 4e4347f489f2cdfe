package graalmk

import (
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

type TestTracer struct{ t *testing.T }

var _ mkore.Tracer = TestTracer{}

func (tr TestTracer) Debug(_ *mkore.Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"graalmk-DEBUG:", msg}, args...)...)
}

func (tr TestTracer) Info(_ *mkore.Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"graalmk-INFO:", msg}, args...)...)
}

func (tr TestTracer) Warn(_ *mkore.Trace, msg string, args ...any) {
	tr.t.Log(append([]any{"graalmk-WARN:", msg}, args...)...)
}

func (tr TestTracer) StartProject(_ *mkore.Trace, p *mkore.Project, activity string) {
	tr.t.Logf("graalmk-StartProject: %s %s", p, activity)
}

func (tr TestTracer) DoneProject(_ *mkore.Trace, p *mkore.Project, activity string, dt time.Duration) {
	tr.t.Logf("graalmk-DoneProject: %s %s %s", p, activity, dt)
}

func (tr TestTracer) RunAction(_ *mkore.Trace, a *mkore.Action) {
	tr.t.Logf("graalmk-RunAction: %s", a)
}

func (tr TestTracer) RunImplicitAction(_ *mkore.Trace, a *mkore.Action) {
	tr.t.Logf("graalmk-RunImplicitAction: %s", a)
}

func (tr TestTracer) ActionHash(_ *mkore.Trace, a *mkore.Action, sum []byte) {
	tr.t.Logf("graalmk-ActionHash: %s %x", a, sum)
}

func (tr TestTracer) CheckGoal(_ *mkore.Trace, g *mkore.Goal) {
	tr.t.Logf("graalmk-CheckGoal: %s", g)
}

func (tr TestTracer) GoalUpToDate(_ *mkore.Trace, g *mkore.Goal) {
	tr.t.Logf("graalmk-GoalUpToDate: %s", g)
}

func (tr TestTracer) GoalNeedsActions(_ *mkore.Trace, g *mkore.Goal, n int) {
	tr.t.Logf("graalmk-GoalNeedsActions: %s %d", g, n)
}

func (tr TestTracer) RemoveArtefact(_ *mkore.Trace, g *mkore.Goal) {
	tr.t.Logf("graalmk-RemoveArtefact: %s", g)
}
