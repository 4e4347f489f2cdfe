package mkore

import (
	"fmt"
	"reflect"
	"time"
)

// Artefact represents the tangible outcome of a [Goal] being reached. A
// special case is the [Abstract] artefact.
type Artefact interface {
	// Name returns the name of the artefact that must be unique in the Project.
	Name(in *Project) string

	// StateAt returns the time at which the artefact reached its current
	// state. If this cannot be provided, the zero Time is returned.
	StateAt(in *Project) (time.Time, error)
}

// RemovableArtefact is an artefact that [Clean] can remove.
type RemovableArtefact interface {
	Artefact
	Exists(in *Project) (bool, error)
	Remove(in *Project) error
}

// Abstract artefacts only provide a name. Goals with abstract artefacts are
// never up to date.
type Abstract string

var _ Artefact = Abstract("")

func (a Abstract) Name(*Project) string { return string(a) }

func (a Abstract) StateAt(*Project) (time.Time, error) { return time.Time{}, nil }

// A Goal is something you want to achieve in your [Project]. Each goal is
// associated with an [Artefact] that is considered available and up to date
// when the goal is achieved.
//
// Goals are reached by running the actions they are a result of. A goal can
// be the premise of actions that must not run before the goal is reached.
type Goal struct {
	Artefact Artefact

	// Removable allows [Clean] to remove the artefact.
	Removable bool

	prj       *Project
	idx       uint
	resultOf  []*Action
	premiseOf []*Action
}

func (g *Goal) Project() *Project { return g.prj }

func (g *Goal) Name() string { return g.Artefact.Name(g.prj) }

// Index is unique for each goal of a project and less than the number of
// goals in the project.
func (g *Goal) Index() uint { return g.idx }

// ResultOf returns the actions that result in this goal.
func (g *Goal) ResultOf() []*Action { return g.resultOf }

// PremiseOf returns the actions that depend on g.
func (g *Goal) PremiseOf() []*Action { return g.premiseOf }

func (g *Goal) IsAbstract() bool {
	_, ok := g.Artefact.(Abstract)
	return ok
}

func (g *Goal) String() string {
	tn := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
	return fmt.Sprintf("[%s]%s", g.Name(), tn)
}

// CheckPreTimes returns the indices of the actions in g.ResultOf() that have
// to run because g has no state time, the action has no premises or a premise
// is newer than g.
func (g *Goal) CheckPreTimes(tr *Trace) (chgs []int, err error) {
	gTS, err := g.Artefact.StateAt(g.prj)
	if err != nil {
		return nil, fmt.Errorf("state of goal %s: %w", g, err)
	}
	for actIdx, act := range g.resultOf {
		switch {
		case gTS.IsZero():
			tr.Debug("`goal` has no state time", `goal`, g)
			chgs = append(chgs, actIdx)
			continue
		case len(act.premises) == 0:
			tr.Debug("`action` has no premises", `action`, act)
			chgs = append(chgs, actIdx)
			continue
		}
		for _, pre := range act.premises {
			preTS, err := pre.Artefact.StateAt(g.prj)
			if err != nil {
				return nil, fmt.Errorf("state of premise %s: %w", pre, err)
			}
			if preTS.IsZero() || gTS.Before(preTS) {
				tr.Debug("`premise` of `goal` changed", `premise`, pre, `goal`, g)
				chgs = append(chgs, actIdx)
				break
			}
		}
	}
	return chgs, nil
}
