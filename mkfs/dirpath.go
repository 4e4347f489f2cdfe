package mkfs

import (
	"os"
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// DirPath is a directory as a whole, e.g. a directory of classes or the
// output directory of a tool. With NoStat the directory never has a state
// time, i.e. actions resulting in the directory always run.
type DirPath struct {
	Dir    string
	NoStat bool
}

var (
	_ Artefact = DirPath{}
	_ Lister   = DirPath{}
)

func (d DirPath) Path() string { return d.Dir }

func (d DirPath) Name(in *mkore.Project) string {
	n, _ := in.RelPath(d.Dir)
	return n
}

func (d DirPath) StateAt(in *mkore.Project) (time.Time, error) {
	if d.NoStat {
		return time.Time{}, nil
	}
	st, err := Stat(d, in)
	switch {
	case os.IsNotExist(err):
		return time.Time{}, nil
	case err != nil:
		return time.Time{}, err
	}
	return st.ModTime(), nil
}

func (d DirPath) Exists(in *mkore.Project) (bool, error) { return exists(in, d.Path()) }

// Remove removes the directory and everything it contains.
func (d DirPath) Remove(in *mkore.Project) error {
	p, err := in.AbsPath(d.Path())
	if err != nil {
		return err
	}
	return os.RemoveAll(p)
}

func (d DirPath) List(*mkore.Project) ([]string, error) { return []string{d.Path()}, nil }
