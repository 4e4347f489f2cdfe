package graal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfig              = errors.New("graal configuration")
	ErrEnvironment         = errors.New("graal environment")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrExternalProcess     = errors.New("native-image failed")
)

// ConfigError reports a required configuration value that is absent.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("nativeImage requires graal.%s to be defined", e.Key)
}

func (*ConfigError) Is(target error) bool { return target == ErrConfig }

// EnvironmentError reports that the output directory does not exist and
// cannot be created.
type EnvironmentError struct {
	Dir string
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("output directory does not exist and cannot be created: %s: %s",
		e.Dir,
		e.Err,
	)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

func (*EnvironmentError) Is(target error) bool { return target == ErrEnvironment }

type UnsupportedPlatformError struct {
	OS OS
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("no GraalVM support for %s", e.OS)
}

func (*UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// ProcessError is returned when native-image cannot be started or exits with
// a non-zero code. The compiler's diagnostics are in Result.Output and are not
// interpreted.
type ProcessError struct {
	Result *Result
	Err    error
}

func (e *ProcessError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Result.Exe)
	if e.Result.ExitCode < 0 {
		sb.WriteString(" could not be run")
	} else {
		fmt.Fprintf(&sb, " exited with code %d", e.Result.ExitCode)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ProcessError) Unwrap() error { return e.Err }

func (*ProcessError) Is(target error) bool { return target == ErrExternalProcess }
