package graalmk

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/graalmk/graal"
	"git.fractalqb.de/fractalqb/graalmk/mkfs"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
	"git.fractalqb.de/fractalqb/testerr"
	"lukechampine.com/blake3"
	"mvdan.cc/sh/v3/shell"
)

type fakeCompiler struct {
	calls int
	exe   string
	args  []string
	code  int
}

func (x *fakeCompiler) Exec(_ context.Context, exe string, args []string) (*graal.Result, error) {
	x.calls++
	x.exe, x.args = exe, args
	res := &graal.Result{Exe: exe, Args: args, ExitCode: x.code}
	if x.code != 0 {
		return res, &graal.ProcessError{Result: res, Err: errors.New("exit status")}
	}
	return res, nil
}

func javaProject(t *testing.T) *Project {
	dir := t.TempDir()
	for _, f := range []string{"lib/guava.jar", "lib/slf4j.jar", "build/libs/app.jar"} {
		p := filepath.Join(dir, filepath.FromSlash(f))
		testerr.Shall(os.MkdirAll(filepath.Dir(p), 0777)).BeNil(t)
		testerr.Shall(os.WriteFile(p, nil, 0666)).BeNil(t)
	}
	return NewProject(dir)
}

func testExtension(x graal.Executor) Extension {
	return Extension{
		MainClass:    Value("com.example.Main"),
		OutputName:   Value("app"),
		Version:      Value("19.2.0"),
		CacheDir:     "/cache",
		OS:           graal.Linux,
		Dependencies: []ClasspathSource{mkfs.Glob("lib/*.jar")},
		Artifacts:    []ClasspathSource{mkfs.File("build/libs/app.jar")},
		Exec:         x,
	}
}

func buildTask(t *testing.T, prj *Project, env *Env) error {
	bd := testerr.Shall1(mkore.NewBuilder(
		mkore.NewTrace(context.Background(), TestTracer{t}),
		env,
	)).BeNil(t)
	return bd.NamedGoals(prj, TaskName)
}

func TestApply_build(t *testing.T) {
	prj := javaProject(t)
	x := new(fakeCompiler)
	var task GoalEd
	testerr.Shall(Edit(prj, func(prj ProjectEd) {
		task = Apply(prj, testExtension(x))
	})).BeNil(t)
	if atf, ok := task.Artefact().(Task); !ok || atf.Group != TaskGroup {
		t.Fatalf("task artefact %+v", task.Artefact())
	}

	testerr.Shall(buildTask(t, prj, &Env{})).BeNil(t)
	if x.calls != 1 {
		t.Fatalf("compiler called %d times", x.calls)
	}
	if x.exe != "/cache/19.2.0/graalvm-ce-19.2.0/bin/native-image" {
		t.Errorf("exe %s", x.exe)
	}
	cp := strings.Join([]string{
		filepath.Join(prj.Dir, "lib", "guava.jar"),
		filepath.Join(prj.Dir, "lib", "slf4j.jar"),
		filepath.Join(prj.Dir, "build", "libs", "app.jar"),
	}, ":")
	want := []string{
		"-cp", cp,
		"-H:Path=" + filepath.Join(prj.Dir, "build", "graal"),
		"-H:Name=app",
		"com.example.Main",
	}
	if !slices.Equal(x.args, want) {
		t.Errorf("args %q, want %q", x.args, want)
	}
	testerr.Shall1(os.Stat(filepath.Join(prj.Dir, "build", "graal"))).BeNil(t)

	testerr.Shall(buildTask(t, prj, &Env{})).BeNil(t)
	if x.calls != 2 {
		t.Errorf("task was not run again, %d calls", x.calls)
	}

	testerr.Shall(mkore.Clean(prj, false, mkore.NewTrace(context.Background(), TestTracer{t}))).BeNil(t)
	if _, err := os.Stat(filepath.Join(prj.Dir, "build", "graal")); !os.IsNotExist(err) {
		t.Errorf("output dir not cleaned: %v", err)
	}
	testerr.Shall1(os.Stat(filepath.Join(prj.Dir, "build", "libs", "app.jar"))).BeNil(t)
}

func TestApply_missingConfig(t *testing.T) {
	prj := javaProject(t)
	x := new(fakeCompiler)
	ext := testExtension(x)
	ext.MainClass = EnvVar("MAIN_CLASS")
	testerr.Shall(Edit(prj, func(prj ProjectEd) { Apply(prj, ext) })).BeNil(t)

	err := buildTask(t, prj, &Env{})
	if !errors.Is(err, graal.ErrConfig) {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(err.Error(), "nativeImage requires graal.mainClass to be defined") {
		t.Errorf("unexpected message '%s'", err)
	}
	if x.calls != 0 {
		t.Error("compiler was called")
	}
	if _, err := os.Stat(filepath.Join(prj.Dir, "build", "graal")); !os.IsNotExist(err) {
		t.Errorf("output dir was created: %v", err)
	}

	t.Run("before cache dir", func(t *testing.T) {
		t.Setenv("HOME", "")
		prj := javaProject(t)
		ext := testExtension(x)
		ext.MainClass = Unset
		ext.CacheDir = ""
		testerr.Shall(Edit(prj, func(prj ProjectEd) { Apply(prj, ext) })).BeNil(t)
		if err := buildTask(t, prj, &Env{}); !errors.Is(err, graal.ErrConfig) {
			t.Errorf("unexpected error %v", err)
		}
	})
	t.Run("before classpath", func(t *testing.T) {
		prj := javaProject(t)
		ext := testExtension(x)
		ext.Version = Unset
		ext.Dependencies = []ClasspathSource{mkfs.Glob("lib/[.jar")}
		testerr.Shall(Edit(prj, func(prj ProjectEd) { Apply(prj, ext) })).BeNil(t)
		err := buildTask(t, prj, &Env{})
		if !errors.Is(err, graal.ErrConfig) {
			t.Fatalf("unexpected error %v", err)
		}
		if !strings.Contains(err.Error(), "graal.version to be defined") {
			t.Errorf("unexpected message '%s'", err)
		}
	})
	if x.calls != 0 {
		t.Fatal("compiler was called")
	}

	var env Env
	env.SetVar("MAIN_CLASS", "com.example.Env")
	testerr.Shall(buildTask(t, prj, &env)).BeNil(t)
	if x.calls != 1 || x.args[len(x.args)-1] != "com.example.Env" {
		t.Errorf("compiler called %d times with %q", x.calls, x.args)
	}
}

func TestApply_compilerFails(t *testing.T) {
	prj := javaProject(t)
	x := &fakeCompiler{code: 137}
	testerr.Shall(Edit(prj, func(prj ProjectEd) { Apply(prj, testExtension(x)) })).BeNil(t)
	err := buildTask(t, prj, &Env{})
	var perr *graal.ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("unexpected error %v", err)
	}
	if perr.Result.ExitCode != 137 {
		t.Errorf("exit code %d", perr.Result.ExitCode)
	}
}

func TestApply_unsupportedOS(t *testing.T) {
	prj := javaProject(t)
	x := new(fakeCompiler)
	ext := testExtension(x)
	ext.OS = graal.OS("plan9")
	testerr.Shall(Edit(prj, func(prj ProjectEd) { Apply(prj, ext) })).BeNil(t)
	err := buildTask(t, prj, &Env{})
	if !errors.Is(err, graal.ErrUnsupportedPlatform) {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(err.Error(), "plan9") {
		t.Errorf("error does not name the OS: %s", err)
	}
	if x.calls != 0 {
		t.Error("compiler was called")
	}
}

func TestApply_dryRun(t *testing.T) {
	prj := javaProject(t)
	x := new(fakeCompiler)
	ext := testExtension(x)
	ext.DryRun = true
	ext.CacheDir = "/opt/graal cache"
	testerr.Shall(Edit(prj, func(prj ProjectEd) { Apply(prj, ext) })).BeNil(t)
	var out bytes.Buffer
	testerr.Shall(buildTask(t, prj, &Env{Out: &out})).BeNil(t)
	if x.calls != 0 {
		t.Error("compiler was called")
	}
	words := testerr.Shall1(shell.Fields(strings.TrimSpace(out.String()), nil)).BeNil(t)
	if len(words) != 6 {
		t.Fatalf("dry run printed %q", words)
	}
	if words[0] != "/opt/graal cache/19.2.0/graalvm-ce-19.2.0/bin/native-image" {
		t.Errorf("exe %s", words[0])
	}
	if words[5] != "com.example.Main" {
		t.Errorf("main class %s", words[5])
	}
	if _, err := os.Stat(filepath.Join(prj.Dir, "build", "graal")); !os.IsNotExist(err) {
		t.Errorf("dry run created output dir: %v", err)
	}
}

func TestNativeImage_WriteHash(t *testing.T) {
	prj := javaProject(t)
	ni := &NativeImage{
		MainClass: Value("com.example.Main"),
		Version:   Value("19.2.0"),
		CacheDir:  "/cache",
		OS:        graal.Linux,
	}
	jars := testerr.Shall1(prj.Goal(mkfs.Glob("lib/*.jar"))).BeNil(t)
	out := testerr.Shall1(prj.Goal(mkfs.DirPath{Dir: "build/graal"})).BeNil(t)
	act := testerr.Shall1(prj.NewAction([]*Goal{jars}, []*Goal{out}, ni)).BeNil(t)

	sum := func() []byte {
		h := blake3.New(32, nil)
		ok := testerr.Shall1(act.WriteHash(h, nil)).BeNil(t)
		if !ok {
			t.Fatal("native-image has no hash")
		}
		return h.Sum(nil)
	}
	h1, h2 := sum(), sum()
	if !bytes.Equal(h1, h2) {
		t.Error("hash is not stable")
	}
	ni.Version = Value("20.0.0")
	if bytes.Equal(h1, sum()) {
		t.Error("hash ignores version")
	}
	testerr.Shall(os.Remove(filepath.Join(prj.Dir, "lib", "guava.jar"))).BeNil(t)
	ni.Version = Value("19.2.0")
	if bytes.Equal(h1, sum()) {
		t.Error("hash ignores classpath")
	}
}

func TestNativeImage_illegalPremise(t *testing.T) {
	prj := javaProject(t)
	x := new(fakeCompiler)
	testerr.Shall(Edit(prj, func(prj ProjectEd) {
		prj.Goal(mkfs.DirPath{Dir: "build/graal"}).
			By(&NativeImage{
				MainClass: Value("Main"),
				Version:   Value("1"),
				OS:        graal.Linux,
				Exec:      x,
			}, prj.Goal(Abstract("compile")))
	})).BeNil(t)
	bd := testerr.Shall1(mkore.NewBuilder(
		mkore.NewTrace(context.Background(), TestTracer{t}),
		&Env{},
	)).BeNil(t)
	err := bd.Project(prj)
	if err == nil || !strings.Contains(err.Error(), "illegal goal 0: compile") {
		t.Fatalf("unexpected error %v", err)
	}
	if x.calls != 0 {
		t.Error("compiler was called")
	}
}
