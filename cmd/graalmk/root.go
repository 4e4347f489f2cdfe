package main

import (
	"fmt"
	"log/slog"

	"git.fractalqb.de/fractalqb/graalmk"
	"git.fractalqb.de/fractalqb/graalmk/internal/config"
	"git.fractalqb.de/fractalqb/graalmk/mkfs"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type app struct {
	projectDir string
	configFile string
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "graalmk",
		Short: "Build native executables of JVM projects with GraalVM",
		Long: `graalmk runs GraalVM's native-image with the classpath of a project.

The toolchain is expected in the cache directory, e.g.
  ~/.gradle/caches/com.palantir.graal/<version>/graalvm-ce-<version>/

Settings are read from ` + config.FileName + ` in the project directory,
` + config.EnvPrefix + `_* environment variables and command line flags, the
latter taking precedence.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.projectDir, "project-dir", "C", ".", "project directory")
	pf.StringVar(&a.configFile, "config", "", "config file (default is <project-dir>/"+config.FileName+")")
	pf.String("main-class", "", "fully qualified name of the main class")
	pf.String("output-name", "", "name of the native executable")
	pf.String("graal-version", "", "GraalVM version, e.g. 19.2.0")
	pf.String("cache-dir", "", "GraalVM cache directory")
	pf.StringArray("dep", nil, "glob of runtime dependencies (repeatable)")
	pf.StringArray("artifact", nil, "glob of build artifacts (repeatable)")
	pf.String("trace", "", "build trace: off, warn, info or debug")
	for name, key := range config.FlagKeys {
		if f := pf.Lookup(name); f != nil {
			f.Usage += " [$" + config.EnvKey(key) + "]"
		}
	}

	root.AddCommand(
		a.nativeImageCmd(),
		a.configCmd(),
		a.graphCmd(),
		a.cleanCmd(),
	)
	return root
}

// session is everything a command needs to work on the project.
type session struct {
	cfg    *config.Config
	prj    *graalmk.Project
	tracer *graalmk.WriteTracer
	env    *mkore.Env
}

func (a *app) session(cmd *cobra.Command) (*session, error) {
	cfg, file, err := config.Load(config.LoadOptions{
		ProjectDir: a.projectDir,
		File:       a.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	tracer := &graalmk.WriteTracer{W: cmd.ErrOrStderr()}
	if err := tracer.ParseLogFlag(cfg.Trace); err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "graalmk"})
	if tracer.Log&mkore.TraceDebug != 0 {
		logger.SetLevel(log.DebugLevel)
	}
	env := graalmk.DefaultEnv()
	env.Out = cmd.OutOrStdout()
	env.Err = cmd.ErrOrStderr()
	env.Log = slog.New(logger)
	if file != "" {
		env.Log.Debug("using config", "file", file)
	}

	s := &session{
		cfg:    cfg,
		prj:    graalmk.NewProject(a.projectDir),
		tracer: tracer,
		env:    env,
	}
	ext := graalmk.Extension{
		MainClass:    graalmk.Value(cfg.Graal.MainClass),
		OutputName:   graalmk.Value(cfg.Graal.OutputName),
		Version:      graalmk.Value(cfg.Graal.Version),
		CacheDir:     cfg.Graal.CacheDir,
		Dependencies: globs(cfg.Classpath.Dependencies),
		Artifacts:    globs(cfg.Classpath.Artifacts),
		DryRun:       a.dryRun,
	}
	err = graalmk.Edit(s.prj, func(prj graalmk.ProjectEd) {
		graalmk.Apply(prj, ext)
	})
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", s.prj, err)
	}
	return s, nil
}

func (s *session) trace(cmd *cobra.Command) *mkore.Trace {
	return mkore.NewTrace(cmd.Context(), s.tracer)
}

func globs(patterns []string) (srcs []graalmk.ClasspathSource) {
	for _, p := range patterns {
		srcs = append(srcs, mkfs.Glob(p))
	}
	return srcs
}
