package mkfs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// Glob is the set of files matching Pattern as with [filepath.Glob]. A
// relative pattern is matched against the project directory.
type Glob string

var (
	_ Artefact = Glob("")
	_ Lister   = Glob("")
)

func (g Glob) Path() string { return string(g) }

func (g Glob) Name(in *mkore.Project) string {
	n, _ := in.RelPath(g.Path())
	return "glob:" + n
}

// List returns the matching paths in lexical order. Paths are relative to
// the project if the pattern is.
func (g Glob) List(in *mkore.Project) ([]string, error) {
	abs, err := in.AbsPath(g.Path())
	if err != nil {
		return nil, err
	}
	ms, err := filepath.Glob(abs)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", g, err)
	}
	if filepath.IsAbs(g.Path()) {
		return ms, nil
	}
	for i, m := range ms {
		if ms[i], err = in.RelPath(m); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

// StateAt returns the latest modification time of the matching files.
func (g Glob) StateAt(in *mkore.Project) (t time.Time, err error) {
	ms, err := g.List(in)
	if err != nil {
		return time.Time{}, err
	}
	for _, m := range ms {
		p, err := in.AbsPath(m)
		if err != nil {
			return time.Time{}, err
		}
		st, err := os.Stat(p)
		if err != nil {
			return time.Time{}, err
		}
		if mt := st.ModTime(); mt.After(t) {
			t = mt
		}
	}
	return t, nil
}

func (g Glob) Exists(in *mkore.Project) (bool, error) {
	ms, err := g.List(in)
	return len(ms) > 0, err
}

func (g Glob) Remove(in *mkore.Project) error {
	ms, err := g.List(in)
	if err != nil {
		return err
	}
	for _, m := range ms {
		p, err := in.AbsPath(m)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}
