package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDataFile, EnvNaming, EnvTheme, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(Paths{
		User:    filepath.Join(dir, "missing.toml"),
		Project: filepath.Join(dir, "also-missing.toml"),
		DotEnv:  filepath.Join(dir, ".env"),
	})
	require.NoError(t, err)
	assert.Equal(t, Default().DataFile, cfg.DataFile)
	assert.Equal(t, "en", cfg.Naming)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Files)
}

func TestLoadLayering(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	user := write(t, filepath.Join(dir, "user.toml"), `
data_file = "user.json"
naming = "pt"
theme = "neon"
`)
	project := write(t, filepath.Join(dir, "project.toml"), `
data_file = "project.json"
`)
	t.Setenv(EnvTheme, "mono")

	cfg, err := Load(Paths{User: user, Project: project})
	require.NoError(t, err)
	assert.Equal(t, "project.json", cfg.DataFile, "project file overrides user file")
	assert.Equal(t, "pt", cfg.Naming, "user file value survives when project is silent")
	assert.Equal(t, "mono", cfg.Theme, "environment overrides files")
	assert.Equal(t, []string{user, project}, cfg.Files)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	// godotenv skips keys that exist, even when empty
	require.NoError(t, os.Unsetenv(EnvDataFile))
	dir := t.TempDir()
	dotenv := write(t, filepath.Join(dir, ".env"), "TAREFAS_FILE=from-dotenv.json\nTAREFAS_LOG_LEVEL=debug\n")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(Paths{DotEnv: dotenv})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", cfg.DataFile)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	user := write(t, filepath.Join(dir, "user.toml"), "data_fle = \"typo.json\"\n")

	_, err := Load(Paths{User: user})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_fle")
}

func TestLoadRejectsBadTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	user := write(t, filepath.Join(dir, "user.toml"), "data_file = \n")

	_, err := Load(Paths{User: user})
	assert.Error(t, err)
}

func TestFinalize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TAREFAS_TEST_DIR", "/srv/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "relative", in: "tasks.json", want: filepath.Join("/work", "tasks.json")},
		{name: "absolute", in: "/tmp/t.json", want: "/tmp/t.json"},
		{name: "home", in: "~/t.json", want: filepath.Join(home, "t.json")},
		{name: "env var", in: "$TAREFAS_TEST_DIR/t.json", want: "/srv/data/t.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DataFile = tt.in
			require.NoError(t, cfg.Finalize("/work"))
			assert.Equal(t, tt.want, cfg.DataFile)
		})
	}

	cfg := Default()
	cfg.DataFile = "  "
	assert.Error(t, cfg.Finalize("/work"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"naming", func(c *Config) { c.Naming = "fr" }},
		{"theme", func(c *Config) { c.Theme = "rainbow" }},
		{"log_level", func(c *Config) { c.LogLevel = "trace" }},
		{"log_format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}
