package mkfs

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Filter selects directory entries. The string representation of a filter
// is part of the name of a [DirList].
type Filter interface {
	Ok(name string, entry fs.DirEntry) (bool, error)
	String() string
}

type FilterFunc func(string, fs.DirEntry) (bool, error)

func (ff FilterFunc) Ok(n string, e fs.DirEntry) (bool, error) { return ff(n, e) }

func (ff FilterFunc) String() string { return fmt.Sprintf("func@%p", ff) }

type IsDir bool

func (d IsDir) Ok(_ string, e fs.DirEntry) (bool, error) {
	return e.IsDir() == bool(d), nil
}

func (d IsDir) String() string {
	if d {
		return "dirs"
	}
	return "files"
}

// NameMatch matches the entry name with [filepath.Match].
type NameMatch string

func (p NameMatch) Ok(_ string, e fs.DirEntry) (bool, error) {
	return filepath.Match(string(p), e.Name())
}

func (p NameMatch) String() string { return string(p) }

type Mode struct{ Any, All fs.FileMode }

func (fm Mode) Ok(_ string, e fs.DirEntry) (bool, error) {
	info, err := e.Info()
	if err != nil {
		return false, err
	}
	mode, ok := info.Mode(), true
	if fm.Any != 0 {
		ok = ok && mode&fm.Any != 0
	}
	if fm.All != 0 {
		ok = ok && mode&fm.All == fm.All
	}
	return ok, nil
}

func (fm Mode) String() string { return fmt.Sprintf("mode(%o,%o)", fm.Any, fm.All) }

func Not(f Filter) Filter { return not{f} }

type not struct{ f Filter }

func (n not) Ok(p string, e fs.DirEntry) (bool, error) {
	ok, err := n.f.Ok(p, e)
	return !ok, err
}

func (n not) String() string { return "!" + n.f.String() }

type All []Filter

func (fs All) Ok(p string, e fs.DirEntry) (bool, error) {
	for _, f := range fs {
		if ok, err := f.Ok(p, e); err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

func (fs All) String() string { return joinFilters(fs, "&") }

type Any []Filter

func (fs Any) Ok(p string, e fs.DirEntry) (bool, error) {
	for _, f := range fs {
		if ok, err := f.Ok(p, e); err != nil {
			return ok, err
		} else if ok {
			return true, nil
		}
	}
	return false, nil
}

func (fs Any) String() string { return joinFilters(fs, "|") }

func joinFilters(fs []Filter, op string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, f := range fs {
		if i > 0 {
			sb.WriteString(op)
		}
		sb.WriteString(f.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
