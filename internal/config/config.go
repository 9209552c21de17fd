// Package config loads tarefas settings from defaults, TOML files, a .env
// file and the environment, in increasing priority. Command-line flags are
// applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultDataFile  = "tasks.json"
	DefaultNaming    = "en"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	ProjectFileName = ".tarefas.toml"
	DotEnvFileName  = ".env"
)

// Environment variables, highest priority after flags.
const (
	EnvDataFile  = "TAREFAS_FILE"
	EnvNaming    = "TAREFAS_NAMING"
	EnvTheme     = "TAREFAS_THEME"
	EnvLogLevel  = "TAREFAS_LOG_LEVEL"
	EnvLogFormat = "TAREFAS_LOG_FORMAT"
)

var (
	validNamings = []string{"en", "pt"}
	validThemes  = []string{"classic", "neon", "mono"}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json", "logfmt"}
)

type Config struct {
	DataFile  string `toml:"data_file"`
	Naming    string `toml:"naming"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Files lists the config files that were read, in order.
	Files []string `toml:"-"`
}

// Paths locates the optional files Load reads. Empty entries are skipped.
type Paths struct {
	User    string
	Project string
	DotEnv  string
}

// DefaultPaths returns the user config file under the OS config dir and
// the project and .env files in the working directory.
func DefaultPaths() Paths {
	p := Paths{
		Project: ProjectFileName,
		DotEnv:  DotEnvFileName,
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p.User = filepath.Join(dir, "tarefas", "config.toml")
	}
	return p
}

func Default() *Config {
	return &Config{
		DataFile:  DefaultDataFile,
		Naming:    DefaultNaming,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load builds a Config from, in order:
// 1. Defaults
// 2. User config file
// 3. Project config file (overrides user config)
// 4. .env file (never overrides variables already set)
// 5. Environment variables
func Load(p Paths) (*Config, error) {
	cfg := Default()

	for _, path := range []string{p.User, p.Project} {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if p.DotEnv != "" {
		if err := godotenv.Load(p.DotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", p.DotEnv, err)
		}
	}
	cfg.loadFromEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return err
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, 0, len(und))
		for _, k := range und {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	c.Files = append(c.Files, path)
	return nil
}

func (c *Config) loadFromEnv() {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.DataFile, EnvDataFile)
	set(&c.Naming, EnvNaming)
	set(&c.Theme, EnvTheme)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.LogFormat, EnvLogFormat)
}

// Finalize expands ~ and environment variables in DataFile and makes it
// absolute relative to workDir.
func (c *Config) Finalize(workDir string) error {
	c.DataFile = expandPath(c.DataFile)
	if c.DataFile == "" {
		return errors.New("data_file is empty")
	}
	if !filepath.IsAbs(c.DataFile) {
		if workDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			workDir = wd
		}
		c.DataFile = filepath.Join(workDir, c.DataFile)
	}
	return nil
}

// Validate rejects values no component understands.
func (c *Config) Validate() error {
	checks := []struct {
		key, val string
		allowed  []string
	}{
		{"naming", c.Naming, validNamings},
		{"theme", c.Theme, validThemes},
		{"log_level", c.LogLevel, validLevels},
		{"log_format", c.LogFormat, validFormats},
	}
	for _, ch := range checks {
		if !contains(ch.allowed, strings.ToLower(ch.val)) {
			return fmt.Errorf("invalid %s %q: must be one of %v", ch.key, ch.val, ch.allowed)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// expandPath expands environment variables and a leading ~ in p.
func expandPath(p string) string {
	p = os.ExpandEnv(strings.TrimSpace(p))
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}
