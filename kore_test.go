package graalmk

import (
	"errors"
	"testing"

	"git.fractalqb.de/fractalqb/graalmk/mkfs"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestGoals(t *testing.T) {
	prj := mkore.NewProject(t.TempDir())
	g1 := testerr.Should1(prj.Goal(mkore.Abstract("."))).BeNil(t)
	g2 := testerr.Should1(prj.Goal(mkfs.File("F"))).BeNil(t)
	gs := []*mkore.Goal{g1, g2}

	t.Run("not exclusive", func(t *testing.T) {
		res := testerr.Shall1(Goals(gs, false, AType[ClasspathSource])).BeNil(t)
		if l := len(res); l != 1 {
			t.Fatalf("filter yields %d goals", l)
		}
		if res[0] != g2 {
			t.Fatalf("filtered wrong goal: %s", res[0])
		}
	})

	t.Run("exclusive fail", func(t *testing.T) {
		testerr.Shall1(Goals(gs, true, AType[ClasspathSource])).
			Check(t, testerr.Msg("illegal goal 0: ."))
	})

	t.Run("exclusive good", func(t *testing.T) {
		res := testerr.Shall1(Goals(gs, true, AType[mkore.Artefact])).BeNil(t)
		if l := len(res); l != 2 {
			t.Fatalf("filter yields %d goals", l)
		}
	})
}

func TestEdit_recover(t *testing.T) {
	prj := NewProject(t.TempDir())
	err := Edit(prj, func(prj ProjectEd) {
		prj.Goal(mkore.Abstract(""))
	})
	if err == nil {
		t.Fatal("no error from illegal goal")
	}
	err = Edit(prj, func(ProjectEd) { panic(errors.ErrUnsupported) })
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("unexpected error %v", err)
	}
	testerr.F0(Edit(prj, func(ProjectEd) { panic(4711) })).ShallMsg(t, "panic: 4711")
	if !prj.TryLock() {
		t.Fatal("project still locked after edit")
	}
	prj.Unlock()
}
