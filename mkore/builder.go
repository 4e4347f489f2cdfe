package mkore

import (
	"errors"
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
	"lukechampine.com/blake3"
)

// Builder brings goals up to date. Each goal is checked at most once per
// build, after all premises of its actions were built. A Builder must not be
// used concurrently.
type Builder struct {
	trace *Trace
	env   *Env
	bid   BuildID
	done  *bitset.BitSet
}

func NewBuilder(tr *Trace, env *Env) (*Builder, error) {
	if tr == nil {
		return nil, errors.New("no trace for new builder")
	}
	return &Builder{trace: tr, env: env}, nil
}

func (bd *Builder) Trace() *Trace { return bd.trace }

// Project builds all leafs of prj.
func (bd *Builder) Project(prj *Project) error {
	bd.start(prj)
	defer prj.Unlock()
	start := time.Now()
	tr := bd.trace.pushProject(prj)
	tr.startProject(prj, "building")
	for _, leaf := range prj.Leafs() {
		if err := bd.buildGoal(tr, leaf); err != nil {
			return err
		}
	}
	tr.doneProject(prj, "building", time.Since(start))
	return nil
}

// Goals builds gs which must all belong to the same project.
func (bd *Builder) Goals(gs ...*Goal) error {
	if len(gs) == 0 {
		return nil
	}
	prj := gs[0].Project()
	for _, g := range gs[1:] {
		if g.Project() != prj {
			return fmt.Errorf("building goals %s and %s from different projects",
				gs[0],
				g,
			)
		}
	}
	bd.start(prj)
	defer prj.Unlock()
	start := time.Now()
	tr := bd.trace.pushProject(prj)
	tr.startProject(prj, "building")
	for _, g := range gs {
		if err := bd.buildGoal(tr, g); err != nil {
			return err
		}
	}
	tr.doneProject(prj, "building", time.Since(start))
	return nil
}

func (bd *Builder) NamedGoals(prj *Project, names ...string) error {
	gs := make([]*Goal, 0, len(names))
	for _, n := range names {
		g := prj.FindGoal(n)
		if g == nil {
			return fmt.Errorf("no goal named '%s' in project '%s'", n, prj)
		}
		gs = append(gs, g)
	}
	return bd.Goals(gs...)
}

func (bd *Builder) start(prj *Project) {
	bd.bid = prj.LockBuild()
	bd.done = bitset.New(uint(len(prj.gseq)))
	if bd.env == nil {
		bd.env = DefaultEnv()
	}
}

func (bd *Builder) buildGoal(tr *Trace, g *Goal) error {
	if bd.done.Test(g.idx) {
		return nil
	}
	bd.done.Set(g.idx)

	tr = tr.pushGoal(g)
	tr.checkGoal(g)
	if len(g.resultOf) == 0 {
		return nil
	}
	for _, act := range g.resultOf {
		for _, pre := range act.premises {
			if err := bd.buildGoal(tr, pre); err != nil {
				return err
			}
		}
	}
	chgs, err := g.CheckPreTimes(tr)
	if err != nil {
		return err
	}
	if len(chgs) == 0 {
		tr.goalUpToDate(g)
		return nil
	}
	tr.goalNeedsActions(g, len(chgs))
	for _, i := range chgs {
		act := g.resultOf[i]
		if act.lastBuild == bd.bid {
			continue
		}
		bd.traceHash(tr, act)
		if err := act.Run(tr, bd.env); err != nil {
			return fmt.Errorf("goal %s: %w", g, err)
		}
	}
	return nil
}

func (bd *Builder) traceHash(tr *Trace, act *Action) {
	h := blake3.New(32, nil)
	ok, err := act.WriteHash(h, bd.env)
	switch {
	case err != nil:
		tr.Warn("cannot hash `action`: `error`", `action`, act, `error`, err)
	case ok:
		tr.actionHash(act, h.Sum(nil))
	}
}
