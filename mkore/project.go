package mkore

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

type BuildID = uint64

// Project is the build graph of one project directory. Projects are locked
// while they are built or edited.
type Project struct {
	Dir string

	sync.Mutex

	goals     map[string]*Goal
	gseq      []*Goal
	actions   []*Action
	lastBuild BuildID
}

// NewProject creates a project for dir. An empty dir selects the current
// working directory. Dir is made absolute if possible.
func NewProject(dir string) *Project {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Project{
		Dir:   dir,
		goals: make(map[string]*Goal),
	}
}

// Goal returns the goal for atf. If there is no goal for the name of atf, a
// new one is created. A nil atf creates a new anonymous abstract goal.
func (prj *Project) Goal(atf Artefact) (*Goal, error) {
	if atf == nil {
		atf = Abstract(fmt.Sprintf("goal-%d", len(prj.gseq)))
	}
	name := atf.Name(prj)
	if name == "" {
		return nil, fmt.Errorf("artefact %T without name in project %s", atf, prj)
	}
	if g := prj.goals[name]; g != nil {
		return g, nil
	}
	g := &Goal{
		Artefact: atf,
		prj:      prj,
		idx:      uint(len(prj.gseq)),
	}
	prj.goals[name] = g
	prj.gseq = append(prj.gseq, g)
	return g, nil
}

func (prj *Project) FindGoal(name string) *Goal { return prj.goals[name] }

// Goals returns all goals in the order of their creation.
func (prj *Project) Goals() []*Goal { return slices.Clone(prj.gseq) }

func (prj *Project) Actions() []*Action { return slices.Clone(prj.actions) }

func (prj *Project) Name() string { return filepath.Base(prj.Dir) }

func (prj *Project) String() string { return prj.Name() }

// AbsPath returns p as an absolute path. Relative paths are relative to the
// project directory.
func (prj *Project) AbsPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(filepath.Join(prj.Dir, p))
}

// RelPath returns p relative to the project directory.
func (prj *Project) RelPath(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Rel(prj.Dir, p)
}

// Leafs returns the goals no other action depends on.
func (prj *Project) Leafs() (ls []*Goal) {
	for _, g := range prj.gseq {
		if len(g.premiseOf) == 0 {
			ls = append(ls, g)
		}
	}
	return ls
}

// NewAction creates a new [Action] in prj. There must be at least one result
// and all goals must belong to prj.
func (prj *Project) NewAction(premises, results []*Goal, op Operation) (*Action, error) {
	if len(results) == 0 {
		if op == nil {
			return nil, fmt.Errorf("creating implicit action without result in %s", prj)
		}
		return nil, fmt.Errorf("creating action '%s' without result in %s",
			op.Describe(nil, nil),
			prj,
		)
	}
	for _, g := range premises {
		if g.prj != prj {
			return nil, fmt.Errorf("premise %s not in project %s", g, prj)
		}
	}
	for _, g := range results {
		if g.prj != prj {
			return nil, fmt.Errorf("result %s not in project %s", g, prj)
		}
	}
	a := &Action{
		Op:       op,
		prj:      prj,
		premises: premises,
		results:  results,
	}
	for _, p := range premises {
		p.premiseOf = append(p.premiseOf, a)
	}
	for _, r := range results {
		r.resultOf = append(r.resultOf, a)
	}
	prj.actions = append(prj.actions, a)
	return a, nil
}

// LockBuild locks prj and starts a new build.
func (prj *Project) LockBuild() BuildID {
	prj.Lock()
	prj.lastBuild++
	return prj.lastBuild
}

// Build returns the ID of the current or last build.
func (prj *Project) Build() BuildID { return prj.lastBuild }
