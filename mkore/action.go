package mkore

import (
	"hash"
)

// An Action is something you can do in your [Project] to achieve at least one
// [Goal]. The actual implementation of the action is an [Operation]. An
// action without an operation is "implicit", i.e. if all its premises are
// reached, all results of the action are implicitly given.
type Action struct {
	Op Operation

	// IgnoreError makes a failing action report a warning only.
	IgnoreError bool

	prj       *Project
	premises  []*Goal
	results   []*Goal
	lastBuild BuildID
}

func (a *Action) Project() *Project { return a.prj }

func (a *Action) Premises() []*Goal   { return a.premises }
func (a *Action) Premise(i int) *Goal { return a.premises[i] }
func (a *Action) Results() []*Goal    { return a.results }
func (a *Action) Result(i int) *Goal  { return a.results[i] }
func (a *Action) LastBuild() BuildID  { return a.lastBuild }
func (a *Action) IsImplicit() bool    { return a.Op == nil }

// Run runs the operation of a unless it already ran in the current build of
// its project. Before the first build of the project Run always runs the
// operation.
func (a *Action) Run(tr *Trace, env *Env) error {
	bid := a.prj.Build()
	if bid != 0 && a.lastBuild == bid {
		return nil
	}
	a.lastBuild = bid
	if a.Op == nil {
		tr.runImplicitAction(a)
		return nil
	}
	if env == nil {
		env = DefaultEnv()
	}
	tr = tr.pushAction(a)
	tr.runAction(a)
	if err := a.Op.Do(tr, a, env); err != nil {
		if a.IgnoreError {
			tr.Warn("ignoring `error` of `action`", `error`, err, `action`, a)
			return nil
		}
		return err
	}
	return nil
}

func (a *Action) String() string {
	switch {
	case a == nil:
		return "<nil:Action>"
	case a.Op == nil:
		return "implicit:" + a.prj.Name()
	}
	return a.Op.Describe(a, nil)
}

// WriteHash writes the fingerprint of a's operation to h. It returns false if
// the operation cannot provide a fingerprint.
func (a *Action) WriteHash(h hash.Hash, env *Env) (bool, error) {
	if a.Op == nil {
		return false, nil
	}
	return a.Op.WriteHash(h, a, env)
}

type Operation interface {
	// The hints are optional
	Describe(actionHint *Action, envHint *Env) string
	Do(tr *Trace, a *Action, env *Env) error
	WriteHash(h hash.Hash, a *Action, env *Env) (bool, error)
}
