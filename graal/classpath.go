package graal

import (
	"path/filepath"
	"strings"
)

const ClasspathSeparator = ":"

// Classpath returns the union of all sources as absolute paths. Each path
// occurs once, in the order it was first found. Relative paths are resolved
// against baseDir.
func Classpath(baseDir string, sources ...[]string) []string {
	var (
		seen = make(map[string]bool)
		cp   []string
	)
	for _, src := range sources {
		for _, p := range src {
			if p == "" {
				continue
			}
			if !filepath.IsAbs(p) {
				p = filepath.Join(baseDir, p)
			}
			if abs, err := filepath.Abs(p); err == nil {
				p = abs
			} else {
				p = filepath.Clean(p)
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			cp = append(cp, p)
		}
	}
	return cp
}

func JoinClasspath(entries []string) string {
	return strings.Join(entries, ClasspathSeparator)
}

// Args assembles the native-image arguments in the order
//
//	-cp <classpath> -H:Path=<outDir> [-H:Name=<outputName>] <mainClass>
func Args(classpath, outDir string, cfg Config) []string {
	args := make([]string, 0, 5)
	args = append(args, "-cp", classpath, "-H:Path="+outDir)
	if cfg.OutputName != "" {
		args = append(args, "-H:Name="+cfg.OutputName)
	}
	return append(args, cfg.MainClass)
}
