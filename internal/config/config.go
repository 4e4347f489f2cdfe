// Package config loads the settings of the graalmk command. Values are
// layered: defaults, then the config file, then GRAALMK_* environment
// variables, then command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the name of the config file in the project directory.
	FileName  = "graalmk.toml"
	EnvPrefix = "GRAALMK"
)

type Graal struct {
	MainClass  string `mapstructure:"main_class" toml:"main_class"`
	OutputName string `mapstructure:"output_name" toml:"output_name"`
	Version    string `mapstructure:"version" toml:"version"`
	CacheDir   string `mapstructure:"cache_dir" toml:"cache_dir"`
}

// Classpath lists glob patterns relative to the project directory.
type Classpath struct {
	Dependencies []string `mapstructure:"dependencies" toml:"dependencies"`
	Artifacts    []string `mapstructure:"artifacts" toml:"artifacts"`
}

type Config struct {
	Graal     Graal     `mapstructure:"graal" toml:"graal"`
	Classpath Classpath `mapstructure:"classpath" toml:"classpath"`
	Trace     string    `mapstructure:"trace" toml:"trace"`
}

// Default returns the configuration used when nothing else is set. The
// cache directory is left empty, i.e. the default cache directory of
// graalmk applies.
func Default() *Config {
	return &Config{
		Classpath: Classpath{
			Dependencies: []string{},
			Artifacts:    []string{"build/libs/*.jar"},
		},
		Trace: "warn",
	}
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"main-class":    "graal.main_class",
	"output-name":   "graal.output_name",
	"graal-version": "graal.version",
	"cache-dir":     "graal.cache_dir",
	"dep":           "classpath.dependencies",
	"artifact":      "classpath.artifacts",
	"trace":         "trace",
}

type LoadOptions struct {
	// ProjectDir is searched for FileName if File is empty.
	ProjectDir string
	// File must exist if set.
	File string
	// Flags from FlagKeys that were set override all other sources.
	Flags *pflag.FlagSet
}

// Load returns the effective configuration and the path of the config file
// that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("graal.main_class", def.Graal.MainClass)
	v.SetDefault("graal.output_name", def.Graal.OutputName)
	v.SetDefault("graal.version", def.Graal.Version)
	v.SetDefault("graal.cache_dir", def.Graal.CacheDir)
	v.SetDefault("classpath.dependencies", def.Classpath.Dependencies)
	v.SetDefault("classpath.artifacts", def.Classpath.Artifacts)
	v.SetDefault("trace", def.Trace)

	file := opts.File
	if file == "" {
		candidate := filepath.Join(opts.ProjectDir, FileName)
		switch _, err := os.Stat(candidate); {
		case err == nil:
			file = candidate
		case !errors.Is(err, os.ErrNotExist):
			return nil, "", fmt.Errorf("config file %s: %w", candidate, err)
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("decode config: %w", err)
	}
	return &cfg, file, nil
}

// EnvKey returns the name of the environment variable for a config key,
// e.g. GRAALMK_GRAAL_MAIN_CLASS for graal.main_class. List values in the
// environment are separated by commas.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// TOML renders cfg as it would be written to a config file.
func (cfg *Config) TOML() ([]byte, error) { return toml.Marshal(cfg) }
