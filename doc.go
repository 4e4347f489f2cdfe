// Package graalmk builds native executables of JVM projects with GraalVM's
// native-image compiler. It is built around the core concepts of [Goal] and
// [Action] from package mkore: a project registers the nativeImage task with
// [Apply] and runs it with an [mkore.Builder].
//
// The toolchain itself is expected to be in the cache directory already:
//
//	<cache>/<version>/graalvm-ce-<version>/bin/native-image
//
// where <cache> defaults to [DefaultCacheDir]. Downloading and extracting
// GraalVM distributions is out of the scope of graalmk.
//
// A minimal build script:
//
//	prj := graalmk.NewProject("")
//	err := graalmk.Edit(prj, func(prj graalmk.ProjectEd) {
//		graalmk.Apply(prj, graalmk.Extension{
//			MainClass: graalmk.Value("com.example.Main"),
//			Version:   graalmk.Value("19.2.0"),
//			Dependencies: []graalmk.ClasspathSource{mkfs.Glob("lib/*.jar")},
//			Artifacts:    []graalmk.ClasspathSource{mkfs.File("build/libs/app.jar")},
//		})
//	})
package graalmk
