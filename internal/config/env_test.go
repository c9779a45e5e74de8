package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_MissingFile(t *testing.T) {
	env, err := LoadEnv(t.TempDir())
	require.NoError(t, err)
	_, ok := env.Lookup("CLAUDE_FORGE_TEST_UNSET")
	assert.False(t, ok)
}

func TestEnv_ProcessWinsOverDotenv(t *testing.T) {
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, ".env"), "CLAUDE_FORGE_LANGUAGE=python\nCLAUDE_FORGE_MINIMAL=true\n")
	t.Setenv(EnvLanguage, "erlang")

	env, err := LoadEnv(proj)
	require.NoError(t, err)
	v, ok := env.Lookup(EnvLanguage)
	assert.True(t, ok)
	assert.Equal(t, "erlang", v)
	v, _ = env.Lookup(EnvMinimal)
	assert.Equal(t, "true", v)
}

func TestEnv_Apply(t *testing.T) {
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, ".env"), "CLAUDE_FORGE_MINIMAL=1\nCLAUDE_FORGE_SKIP_TOOLS= dust , eza,\n")

	env, err := LoadEnv(proj)
	require.NoError(t, err)
	c := &Config{Language: "rust"}
	require.NoError(t, env.Apply(c))
	assert.Equal(t, "rust", c.Language)
	assert.True(t, c.IsMinimal())
	assert.Equal(t, []string{"dust", "eza"}, c.SkipTools)
}

func TestEnv_ApplyBadBool(t *testing.T) {
	t.Setenv(EnvMinimal, "sometimes")
	env, err := LoadEnv(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, env.Apply(&Config{}))
}

func TestLoad_DefaultsWithEnv(t *testing.T) {
	proj := t.TempDir()
	t.Setenv(EnvLanguage, "go")

	c, err := Load(proj, filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "go", c.Language)
	assert.False(t, c.IsMinimal())
}

func TestLoad_FileAndEnv(t *testing.T) {
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, "forge.yaml"), "language: rust\nminimal: true\n")
	t.Setenv(EnvMinimal, "false")

	c, err := Load(proj, filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rust", c.Language)
	assert.False(t, c.IsMinimal())
}
