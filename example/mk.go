// This is an example build script for a small Java project that is compiled
// into a native executable.
//
//	example/
//	├── lib/*.jar
//	└── src/main/java/com/example/Main.java
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"git.fractalqb.de/fractalqb/graalmk"
	"git.fractalqb.de/fractalqb/graalmk/mkfs"
	"git.fractalqb.de/fractalqb/graalmk/mkore"
)

var (
	javac = graalmk.CmdOp{
		Exe:       "javac",
		Args:      []string{"-d", "build/classes", "-cp", "lib/*", "src/main/java/com/example/Main.java"},
		OutPrefix: "javac| ",
	}

	jar = graalmk.CmdOp{
		Exe:  "sh",
		Args: []string{"-c", "mkdir -p build/libs && jar --create --file build/libs/app.jar -C build/classes ."},
		Desc: "jar app.jar",
	}

	tracer = graalmk.DefaultTracer()

	clean, dryrun bool
	writeDot      bool
)

// Used if GRAAL_VERSION is not set
var graalVersion = "19.2.0"

func flags() {
	flag.BoolVar(&writeDot, "dot", writeDot, "Write graphviz file to stdout and exit")
	flag.BoolVar(&clean, "clean", clean, "Clean project")
	flag.BoolVar(&dryrun, "n", dryrun, "Dryrun")
	flag.StringVar(&graalVersion, "graal", graalVersion, "GraalVM version if GRAAL_VERSION is not set")
	fTrace := flag.String("trace", "", "Set trace level")
	flag.Parse()

	if err := tracer.ParseLogFlag(*fTrace); err != nil {
		log.Fatal(err)
	}
}

func main() {
	flags()

	// The project in current working dir
	prj := graalmk.NewProject("")

	// Start editing project, recovering panics to errors
	err := graalmk.Edit(prj, func(prj graalmk.ProjectEd) {
		sources := prj.Goal(mkfs.DirList{
			Dir:    "src/main/java/com/example",
			Filter: mkfs.NameMatch("*.java"),
		})
		classes := prj.Goal(mkfs.DirPath{Dir: "build/classes"}).
			By(&javac, sources).
			SetRemovable(true)
		prj.Goal(mkfs.File("build/libs/app.jar")).
			By(&jar, classes).
			SetRemovable(true)

		graalmk.Apply(prj, graalmk.Extension{
			MainClass:  graalmk.Value("com.example.Main"),
			OutputName: graalmk.Value("example"),
			Version:    graalmk.FirstOf(graalmk.EnvVar("GRAAL_VERSION"), graalmk.Value(graalVersion)),
			Dependencies: []graalmk.ClasspathSource{
				mkfs.DirList{Dir: "lib", Filter: mkfs.NameMatch("*.jar")},
			},
			// Same artefact as the jar goal above, so nativeImage depends on it
			Artifacts: []graalmk.ClasspathSource{mkfs.File("build/libs/app.jar")},
			DryRun:    dryrun,
		})
	})
	if err != nil {
		log.Fatal("editing project:", err)
	}
	tr := mkore.NewTrace(context.Background(), tracer)

	if clean {
		if err := mkore.Clean(prj, dryrun, tr); err != nil {
			log.Fatal(err)
		}
		return
	}

	if writeDot {
		dia := graalmk.Diagrammer{RankDir: "LR"}
		if err := dia.WriteDot(os.Stdout, prj); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	build, err := mkore.NewBuilder(tr, nil)
	if err != nil {
		log.Fatal(err)
	}
	if flag.NArg() == 0 {
		err = build.NamedGoals(prj, graalmk.TaskName)
	} else {
		err = build.NamedGoals(prj, flag.Args()...)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
