package graal

import (
	"path/filepath"
	"runtime"
)

// OS is the normalized operating system identifier used to find the
// native-image binary inside a GraalVM distribution.
type OS string

const (
	UnknownOS OS = ""
	MacOS     OS = "mac"
	Linux     OS = "linux"
	Windows   OS = "windows"
)

func (os OS) String() string {
	if os == UnknownOS {
		return "unknown"
	}
	return string(os)
}

// ParseOS normalizes a GOOS value. Operating systems that are not known at
// all map to an OS value carrying the GOOS name so that errors can name it.
func ParseOS(goos string) OS {
	switch goos {
	case "darwin", "ios":
		return MacOS
	case "linux", "android":
		return Linux
	case "windows":
		return Windows
	}
	return OS(goos)
}

func CurrentOS() OS { return ParseOS(runtime.GOOS) }

// Location of the native-image executable relative to the root of an
// extracted distribution.
var binaryPaths = map[OS][]string{
	MacOS: {"Contents", "Home", "bin", "native-image"},
	Linux: {"bin", "native-image"},
}

// BinaryPath returns the native-image path inside a distribution for os.
func BinaryPath(os OS) (string, error) {
	p, ok := binaryPaths[os]
	if !ok {
		return "", &UnsupportedPlatformError{OS: os}
	}
	return filepath.Join(p...), nil
}

// DistDir returns the directory of the extracted GraalVM CE distribution of
// version in the toolchain cache: <cacheDir>/<version>/graalvm-ce-<version>
func DistDir(cacheDir, version string) string {
	return filepath.Join(cacheDir, version, "graalvm-ce-"+version)
}

// Executable returns the absolute path of native-image for version. It does
// not check that the file exists.
func Executable(cacheDir, version string, os OS) (string, error) {
	bin, err := BinaryPath(os)
	if err != nil {
		return "", err
	}
	return filepath.Abs(filepath.Join(DistDir(cacheDir, version), bin))
}
