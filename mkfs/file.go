package mkfs

import (
	"errors"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// File is a single file, e.g. a jar.
type File string

var (
	_ Artefact = File("")
	_ Lister   = File("")
)

func (f File) Path() string { return string(f) }

func (f File) Name(in *mkore.Project) string {
	n, _ := in.RelPath(f.Path())
	return n
}

// StateAt returns the modification time of f. A missing file or a directory
// has the zero time.
func (f File) StateAt(in *mkore.Project) (time.Time, error) {
	st, err := Stat(f, in)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return time.Time{}, nil
	case err != nil:
		return time.Time{}, err
	case st.IsDir():
		return time.Time{}, nil
	}
	return st.ModTime(), nil
}

func (f File) Exists(in *mkore.Project) (bool, error) { return exists(in, f.Path()) }

func (f File) Remove(in *mkore.Project) error {
	p, err := in.AbsPath(f.Path())
	if err != nil {
		return err
	}
	if err = os.Remove(p); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f File) List(*mkore.Project) ([]string, error) { return []string{f.Path()}, nil }
