// Command graalmk compiles the classpath of a JVM project into a native
// executable with GraalVM's native-image.
package main

import (
	"context"
	"errors"
	"os"

	"git.fractalqb.de/fractalqb/graalmk/graal"
	"github.com/charmbracelet/fang"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode propagates the exit code of a failed native-image process.
func exitCode(err error) int {
	var perr *graal.ProcessError
	if errors.As(err, &perr) && perr.Result != nil && perr.Result.ExitCode > 0 {
		return perr.Result.ExitCode
	}
	return 1
}
