package mkore

import (
	"context"
	"hash"
	"slices"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

type logOp struct {
	name string
	log  *[]string
	err  error
}

func (op logOp) Describe(*Action, *Env) string { return op.name }

func (op logOp) Do(_ *Trace, _ *Action, _ *Env) error {
	*op.log = append(*op.log, op.name)
	return op.err
}

func (op logOp) WriteHash(h hash.Hash, _ *Action, _ *Env) (bool, error) {
	h.Write([]byte(op.name))
	return true, nil
}

func TestProject_Goal(t *testing.T) {
	prj := NewProject(t.TempDir())
	g1 := testerr.Shall1(prj.Goal(Abstract("a"))).BeNil(t)
	g2 := testerr.Shall1(prj.Goal(Abstract("a"))).BeNil(t)
	if g1 != g2 {
		t.Error("same artefact name yields different goals")
	}
	g3 := testerr.Shall1(prj.Goal(nil)).BeNil(t)
	if g3.Index() != 1 || g3.Name() != "goal-1" {
		t.Errorf("anonymous goal %s with index %d", g3, g3.Index())
	}
	if g := prj.FindGoal("a"); g != g1 {
		t.Errorf("found goal %v", g)
	}
	testerr.Shall1(prj.Goal(Abstract(""))).
		Check(t, testerr.Msg("artefact mkore.Abstract without name in project "+prj.Name()))
}

func TestProject_NewAction(t *testing.T) {
	prj := NewProject(t.TempDir())
	other := NewProject(t.TempDir())
	a := testerr.Shall1(prj.Goal(Abstract("a"))).BeNil(t)
	b := testerr.Shall1(other.Goal(Abstract("b"))).BeNil(t)
	if _, err := prj.NewAction(nil, nil, nil); err == nil {
		t.Error("action without result")
	}
	if _, err := prj.NewAction([]*Goal{b}, []*Goal{a}, nil); err == nil {
		t.Error("action with premise from other project")
	}
	if ls := prj.Leafs(); len(ls) != 1 || ls[0] != a {
		t.Errorf("leafs %v", ls)
	}
}

func TestBuilder_Project(t *testing.T) {
	var log []string
	prj := NewProject(t.TempDir())
	src := testerr.Shall1(prj.Goal(Abstract("classes"))).BeNil(t)
	jar := testerr.Shall1(prj.Goal(Abstract("jar"))).BeNil(t)
	deps := testerr.Shall1(prj.Goal(Abstract("deps"))).BeNil(t)
	img := testerr.Shall1(prj.Goal(Abstract("nativeImage"))).BeNil(t)
	all := testerr.Shall1(prj.Goal(Abstract("all"))).BeNil(t)

	testerr.Shall1(prj.NewAction(nil, []*Goal{src}, logOp{name: "compile", log: &log})).BeNil(t)
	testerr.Shall1(prj.NewAction([]*Goal{src}, []*Goal{jar}, logOp{name: "jar", log: &log})).BeNil(t)
	testerr.Shall1(prj.NewAction(nil, []*Goal{deps}, logOp{name: "resolve", log: &log})).BeNil(t)
	testerr.Shall1(prj.NewAction(
		[]*Goal{deps, jar},
		[]*Goal{img},
		logOp{name: "native-image", log: &log},
	)).BeNil(t)
	testerr.Shall1(prj.NewAction([]*Goal{img, jar}, []*Goal{all}, nil)).BeNil(t)

	bd := testerr.Shall1(NewBuilder(NewTrace(context.Background(), testTracer{t}), &Env{})).BeNil(t)
	testerr.Shall(bd.Project(prj)).BeNil(t)
	want := []string{"resolve", "compile", "jar", "native-image"}
	if !slices.Equal(log, want) {
		t.Errorf("ran %q, want %q", log, want)
	}

	log = log[:0]
	testerr.Shall(bd.NamedGoals(prj, "jar")).BeNil(t)
	if !slices.Equal(log, []string{"compile", "jar"}) {
		t.Errorf("second build ran %q", log)
	}
	testerr.F0(bd.NamedGoals(prj, "nope")).
		ShallMsg(t, "no goal named 'nope' in project '"+prj.Name()+"'")
}

func TestAction_IgnoreError(t *testing.T) {
	var log []string
	prj := NewProject(t.TempDir())
	g := testerr.Shall1(prj.Goal(Abstract("g"))).BeNil(t)
	op := logOp{name: "fail", log: &log, err: context.Canceled}
	act := testerr.Shall1(prj.NewAction(nil, []*Goal{g}, op)).BeNil(t)
	bd := testerr.Shall1(NewBuilder(NewTrace(context.Background(), testTracer{t}), &Env{})).BeNil(t)
	if err := bd.Goals(g); err == nil {
		t.Fatal("failing action did not fail the build")
	}
	act.IgnoreError = true
	testerr.Shall(bd.Goals(g)).BeNil(t)
	if len(log) != 2 {
		t.Errorf("ran %q", log)
	}
}
