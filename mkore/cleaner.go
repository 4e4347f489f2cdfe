package mkore

import (
	"errors"
	"fmt"
	"time"
)

// Clean removes the artefacts of all removable goals of prj that are the
// result of some action. With dryrun nothing is removed, only traced. Clean
// tries all goals and returns the joined errors of failed removals.
func Clean(prj *Project, dryrun bool, tr *Trace) error {
	prj.LockBuild()
	defer prj.Unlock()
	start := time.Now()
	var errs []error
	tr = tr.pushProject(prj)
	tr.startProject(prj, "cleaning")
	for _, g := range prj.gseq {
		if !g.Removable || len(g.resultOf) == 0 {
			continue
		}
		ra, ok := g.Artefact.(RemovableArtefact)
		if !ok {
			continue
		}
		if ok, err := ra.Exists(prj); err != nil {
			tr.Warn("`goal` existence: `error`", `goal`, g, `error`, err)
			continue
		} else if !ok {
			continue
		}
		gtr := tr.pushGoal(g)
		gtr.removeArtefact(g)
		if !dryrun {
			if err := ra.Remove(prj); err != nil {
				gtr.Warn("remove `goal`: `error`", `goal`, g, `error`, err)
				errs = append(errs, fmt.Errorf("remove %s: %w", g, err))
			}
		}
	}
	tr.doneProject(prj, "cleaning", time.Since(start))
	return errors.Join(errs...)
}
