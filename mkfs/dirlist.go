package mkfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// DirList is the flat list of entries in directory Dir that pass Filter,
// e.g. the jars in a lib directory.
type DirList struct {
	Dir    string
	Filter Filter
}

var (
	_ Artefact = DirList{}
	_ Lister   = DirList{}
)

func (d DirList) Path() string { return d.Dir }

func (d DirList) Name(prj *mkore.Project) string {
	n, _ := prj.RelPath(d.Dir)
	if d.Filter == nil {
		return n
	}
	return fmt.Sprintf("%s/%s", n, d.Filter)
}

// List returns the entries in the order of their names. Paths are relative
// to the project if Dir is.
func (d DirList) List(in *mkore.Project) (ls []string, err error) {
	prjDir, err := in.AbsPath(d.Path())
	if err != nil {
		return nil, err
	}
	err = d.ls(prjDir, func(name string, _ fs.DirEntry) error {
		ls = append(ls, filepath.Join(d.Dir, name))
		return nil
	})
	return ls, err
}

// StateAt returns the latest modification time of the listed entries.
func (d DirList) StateAt(in *mkore.Project) (t time.Time, err error) {
	prjDir, err := in.AbsPath(d.Path())
	if err != nil {
		return time.Time{}, err
	}
	err = d.ls(prjDir, func(_ string, e fs.DirEntry) error {
		if info, err := e.Info(); err != nil {
			return err
		} else if mt := info.ModTime(); mt.After(t) {
			t = mt
		}
		return nil
	})
	switch {
	case os.IsNotExist(err):
		return time.Time{}, nil
	case err != nil:
		return time.Time{}, err
	}
	return t, nil
}

func (d DirList) Exists(in *mkore.Project) (bool, error) {
	ap, err := in.AbsPath(d.Path())
	if err != nil {
		return false, err
	}
	st, err := os.Stat(ap)
	switch {
	case err == nil:
		if !st.IsDir() {
			return true, fmt.Errorf("%s is no directory", d.Path())
		}
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	}
	return false, err
}

// Remove removes the listed entries and then Dir if it became empty.
func (d DirList) Remove(in *mkore.Project) error {
	prjDir, err := in.AbsPath(d.Path())
	if err != nil {
		return err
	}
	err = d.ls(prjDir, func(name string, _ fs.DirEntry) error {
		return os.RemoveAll(filepath.Join(prjDir, name))
	})
	if err != nil {
		return err
	}
	return rmDirIfEmpty(prjDir)
}

func (d DirList) ls(prjDir string, do func(name string, e fs.DirEntry) error) error {
	rdir, err := os.ReadDir(prjDir)
	if err != nil {
		return err
	}
	for _, entry := range rdir {
		if d.Filter != nil {
			if ok, err := d.Filter.Ok(entry.Name(), entry); err != nil {
				return err
			} else if !ok {
				continue
			}
		}
		if err := do(entry.Name(), entry); err != nil {
			return err
		}
	}
	return nil
}
