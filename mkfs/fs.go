// Package mkfs provides the file system artefacts of a project.
package mkfs

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

// Artefact is a removable artefact located at Path. Relative paths are
// relative to the project directory.
type Artefact interface {
	mkore.RemovableArtefact
	Path() string
}

// Lister lists the paths an artefact provides, e.g. the entries of a
// classpath. Relative paths are relative to the project directory.
type Lister interface {
	List(in *mkore.Project) ([]string, error)
}

func Stat(a Artefact, in *mkore.Project) (fs.FileInfo, error) {
	p, err := in.AbsPath(a.Path())
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

func exists(in *mkore.Project, path string) (bool, error) {
	p, err := in.AbsPath(path)
	if err != nil {
		return false, err
	}
	switch _, err = os.Stat(p); {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	}
	return false, err
}

func rmDirIfEmpty(path string) error {
	if ok, err := isDirEmpty(path); err != nil {
		return err
	} else if !ok {
		return nil
	}
	return os.Remove(path)
}

func isDirEmpty(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer dir.Close()
	if _, err = dir.ReadDir(1); errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
