package graal

import (
	"context"
	"errors"
	"path/filepath"
)

// Invocation is everything needed to run native-image once.
type Invocation struct {
	Config

	ProjectDir string
	CacheDir   string     // toolchain cache root
	OS         OS         // zero value selects CurrentOS
	Sources    [][]string // classpath sources, e.g. runtime dependencies then build artifacts
}

// Plan is the resolved command line of an Invocation.
type Plan struct {
	Exe       string
	OutDir    string
	Classpath []string
	Args      []string
}

// Prepare checks inv and resolves everything Invoke needs to run the
// compiler. Missing configuration is reported before anything is written to
// the file system. If mkdir is false, the output directory is not created.
func Prepare(inv *Invocation, mkdir bool) (*Plan, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	os := inv.OS
	if os == UnknownOS {
		os = CurrentOS()
	}
	exe, err := Executable(inv.CacheDir, inv.Version, os)
	if err != nil {
		return nil, err
	}
	var outDir string
	if mkdir {
		if outDir, err = MkOutputDir(inv.ProjectDir); err != nil {
			return nil, err
		}
	} else if outDir, err = filepath.Abs(OutputDir(inv.ProjectDir)); err != nil {
		return nil, &EnvironmentError{Dir: OutputDir(inv.ProjectDir), Err: err}
	}
	cp := Classpath(inv.ProjectDir, inv.Sources...)
	return &Plan{
		Exe:       exe,
		OutDir:    outDir,
		Classpath: cp,
		Args:      Args(JoinClasspath(cp), outDir, inv.Config),
	}, nil
}

// Invoke runs native-image for inv with x and blocks until it terminates.
// Errors from x are passed through unchanged.
func Invoke(ctx context.Context, inv *Invocation, x Executor) (*Result, error) {
	if x == nil {
		return nil, errors.New("graal invoke without executor")
	}
	plan, err := Prepare(inv, true)
	if err != nil {
		return nil, err
	}
	return x.Exec(ctx, plan.Exe, plan.Args)
}
