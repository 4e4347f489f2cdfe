package graal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the values of the graal extension as they are read when the
// task runs. An empty string means the value is absent.
type Config struct {
	MainClass  string
	OutputName string // optional
	Version    string
}

// Validate checks that all required values are present. The main class is
// checked before the version.
func (cfg Config) Validate() error {
	if cfg.MainClass == "" {
		return &ConfigError{Key: "mainClass"}
	}
	if cfg.Version == "" {
		return &ConfigError{Key: "version"}
	}
	return nil
}

func (cfg Config) String() string {
	if cfg.OutputName == "" {
		return fmt.Sprintf("%s@graalvm-ce-%s", cfg.MainClass, cfg.Version)
	}
	return fmt.Sprintf("%s(%s)@graalvm-ce-%s", cfg.MainClass, cfg.OutputName, cfg.Version)
}

// OutputDir returns the directory native-image writes to: <projectDir>/build/graal
func OutputDir(projectDir string) string {
	return filepath.Join(projectDir, "build", "graal")
}

// MkOutputDir creates [OutputDir] of projectDir if it does not exist and
// returns its absolute path.
func MkOutputDir(projectDir string) (string, error) {
	dir, err := filepath.Abs(OutputDir(projectDir))
	if err != nil {
		return "", &EnvironmentError{Dir: OutputDir(projectDir), Err: err}
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", &EnvironmentError{Dir: dir, Err: err}
	}
	return dir, nil
}
