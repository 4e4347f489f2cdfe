// Package graal invokes the native-image compiler of a cached GraalVM CE
// distribution. It knows where a toolchain of a given version lives in the
// cache, how to assemble the classpath and the command line, and it runs the
// compiler exactly once per call to [Invoke].
//
// The package does not depend on the build graph of [mkore]. Build tool
// integration is done by the NativeImage operation of the root package that
// resolves configuration values and classpath sources and then calls Invoke.
//
// [mkore]: https://pkg.go.dev/git.fractalqb.de/fractalqb/graalmk/mkore
package graal
