package graalmk

import (
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// Task is an abstract artefact that names something a user can run, like
// the nativeImage task. Tasks are never up to date.
type Task struct {
	Key         string
	Group       string
	Description string
}

var _ mkore.Artefact = Task{}

func (t Task) Name(*mkore.Project) string { return t.Key }

func (t Task) StateAt(*mkore.Project) (time.Time, error) { return time.Time{}, nil }

// Tasks returns the goals of prj that are tasks, in the order of their
// creation.
func Tasks(prj *Project) []*Goal {
	return mustRet(Goals(prj.Goals(), false, AType[Task]))
}
