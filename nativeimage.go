package graalmk

import (
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"strings"

	"git.fractalqb.de/fractalqb/graalmk/graal"
	"git.fractalqb.de/fractalqb/graalmk/mkfs"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
	"mvdan.cc/sh/v3/syntax"
)

const (
	TaskName    = "nativeImage"
	TaskGroup   = "Graal"
	Description = "Runs GraalVM's native-image command with configured options and parameters."
)

// DefaultCacheDir is where the GraalVM distributions are downloaded and
// extracted to.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("graal cache dir: %w", err)
	}
	return filepath.Join(home, ".gradle", "caches", "com.palantir.graal"), nil
}

// ClasspathSource is an artefact that contributes entries to the classpath
// of native-image.
type ClasspathSource interface {
	mkore.Artefact
	mkfs.Lister
}

// NativeImage is the operation that compiles the classpath made of the
// action's premises into a native executable in build/graal of the project.
// The premises must be [ClasspathSource] artefacts.
type NativeImage struct {
	MainClass  Setting
	OutputName Setting
	Version    Setting

	CacheDir string         // empty: DefaultCacheDir
	OS       graal.OS       // zero: current OS
	Exec     graal.Executor // nil: run the process with the action's env

	// DryRun writes the command line to the env's Out instead of running it.
	DryRun bool
}

var _ Operation = (*NativeImage)(nil)

func (ni *NativeImage) Describe(*Action, *Env) string { return Description }

func (ni *NativeImage) Do(tr *Trace, a *Action, env *Env) error {
	inv, err := ni.Invocation(a, env)
	if err != nil {
		return err
	}
	tr.Debug("native-image for `config`", `config`, inv.Config)
	if ni.DryRun {
		plan, err := graal.Prepare(inv, false)
		if err != nil {
			return err
		}
		cmdline, err := ShellQuote(plan.Exe, plan.Args)
		if err != nil {
			return err
		}
		if env.Out != nil {
			fmt.Fprintln(env.Out, cmdline)
		}
		return nil
	}
	x := ni.Exec
	if x == nil {
		x = envExecutor(tr, a, env)
	}
	res, err := graal.Invoke(tr.Ctx(), inv, x)
	if err != nil {
		return err
	}
	tr.Info("`exe` exited with `code`", `exe`, res.Exe, `code`, res.ExitCode)
	return nil
}

// WriteHash hashes the settings and the classpath entries of a.
func (ni *NativeImage) WriteHash(h hash.Hash, a *Action, env *Env) (bool, error) {
	inv, err := ni.Invocation(a, env)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(h, inv.MainClass)
	fmt.Fprintln(h, inv.OutputName)
	fmt.Fprintln(h, inv.Version)
	fmt.Fprintln(h, inv.CacheDir)
	fmt.Fprintln(h, inv.OS)
	for _, src := range inv.Sources {
		fmt.Fprintln(h, strings.Join(src, "\n"))
	}
	return true, nil
}

// Invocation resolves the settings of ni in env and lists the classpath
// sources of a. Missing settings are reported before anything else is
// resolved.
func (ni *NativeImage) Invocation(a *Action, env *Env) (*graal.Invocation, error) {
	inv := &graal.Invocation{
		ProjectDir: a.Project().Dir,
		CacheDir:   ni.CacheDir,
		OS:         ni.OS,
	}
	inv.MainClass, _ = ni.MainClass.Get(env)
	inv.OutputName, _ = ni.OutputName.Get(env)
	inv.Version, _ = ni.Version.Get(env)
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if inv.CacheDir == "" {
		var err error
		if inv.CacheDir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if inv.OS == graal.UnknownOS {
		inv.OS = graal.CurrentOS()
	}
	srcs, err := Goals(a.Premises(), true, AType[ClasspathSource])
	if err != nil {
		return nil, fmt.Errorf("native-image classpath: %w", err)
	}
	for _, g := range srcs {
		ls, err := g.Artefact.(ClasspathSource).List(a.Project())
		if err != nil {
			return nil, fmt.Errorf("classpath source %s: %w", g, err)
		}
		inv.Sources = append(inv.Sources, ls)
	}
	return inv, nil
}

// ShellQuote renders a command line for a POSIX shell.
func ShellQuote(exe string, args []string) (string, error) {
	var sb strings.Builder
	for i, s := range append([]string{exe}, args...) {
		q, err := syntax.Quote(s, syntax.LangPOSIX)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(q)
	}
	return sb.String(), nil
}

// Extension is the configuration of the nativeImage task.
type Extension struct {
	MainClass  Setting
	OutputName Setting
	Version    Setting
	CacheDir   string
	OS         graal.OS

	// Classpath sources: runtime dependencies first, build artifacts second.
	Dependencies []ClasspathSource
	Artifacts    []ClasspathSource

	Exec   graal.Executor
	DryRun bool
}

// Apply registers the nativeImage task in prj. The task is implied by the
// output directory build/graal which is created by the [NativeImage]
// operation. The output directory is removable.
func Apply(prj ProjectEd, ext Extension) GoalEd {
	op := &NativeImage{
		MainClass:  ext.MainClass,
		OutputName: ext.OutputName,
		Version:    ext.Version,
		CacheDir:   ext.CacheDir,
		OS:         ext.OS,
		Exec:       ext.Exec,
		DryRun:     ext.DryRun,
	}
	var premises []GoalEd
	for _, src := range ext.Dependencies {
		premises = append(premises, prj.Goal(src))
	}
	for _, src := range ext.Artifacts {
		premises = append(premises, prj.Goal(src))
	}
	out := prj.Goal(mkfs.DirPath{Dir: graal.OutputDir(""), NoStat: true}).
		SetRemovable(true).
		By(op, premises...)
	return prj.Goal(Task{Key: TaskName, Group: TaskGroup, Description: Description}).
		ImpliedBy(out)
}
