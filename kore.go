package graalmk

import (
	"errors"
	"fmt"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

type (
	Env       = mkore.Env
	Project   = mkore.Project
	Goal      = mkore.Goal
	Action    = mkore.Action
	Trace     = mkore.Trace
	Operation = mkore.Operation

	Abstract = mkore.Abstract
)

func DefaultEnv() *Env { return mkore.DefaultEnv() }

func NewProject(dir string) *Project { return mkore.NewProject(dir) }

// Edit calls do with wrappers of [mkore] types that allow easy editing of
// project definitions. Edit recovers from any panic and returns it as an error,
// so the idiomatic error handling within do can be skipped.
func Edit(prj *Project, do func(ProjectEd)) (err error) {
	prj.Lock()
	defer func() {
		prj.Unlock()
		if p := recover(); p != nil {
			err = panicErr(p)
		}
	}()
	do(ProjectEd{prj})
	return
}

// Goals is meant to be used when implementing [Operation] to select and check
// linked goals gs.
//
// See also [AType]
func Goals(gs []*Goal, exclusive bool, matchAll ...func(*Goal) bool) ([]*Goal, error) {
	mLen1 := len(matchAll) - 1
	res := make([]*Goal, 0, len(gs))
NEXT_GOAL:
	for gi, g := range gs {
		for pi, pred := range matchAll {
			if !pred(g) {
				if exclusive && pi == mLen1 {
					return nil, fmt.Errorf("illegal goal %d: %s", gi, g.Name())
				}
				continue NEXT_GOAL
			}
		}
		res = append(res, g)
	}
	return res, nil
}

func AType[A mkore.Artefact](g *Goal) bool {
	_, ok := g.Artefact.(A)
	return ok
}

func panicErr(p any) error {
	switch p := p.(type) {
	case error:
		return p
	case string:
		return errors.New(p)
	}
	return fmt.Errorf("panic: %+v", p)
}

func mustRet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
