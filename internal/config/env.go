package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvLanguage  = "CLAUDE_FORGE_LANGUAGE"
	EnvMinimal   = "CLAUDE_FORGE_MINIMAL"
	EnvSkipTools = "CLAUDE_FORGE_SKIP_TOOLS"
)

// Env resolves variables from the process environment first, then from a
// project .env file.
type Env struct {
	file map[string]string
}

// LoadEnv reads projectDir/.env when present.
func LoadEnv(projectDir string) (*Env, error) {
	vars, err := godotenv.Read(filepath.Join(projectDir, ".env"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Env{}, nil
		}
		return nil, fmt.Errorf("read .env: %w", err)
	}
	return &Env{file: vars}, nil
}

// Lookup returns the value of key and whether it is set.
func (e *Env) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e.file[key]
	return v, ok
}

// Apply overlays the environment overrides onto c.
func (e *Env) Apply(c *Config) error {
	if v, ok := e.Lookup(EnvLanguage); ok && strings.TrimSpace(v) != "" {
		c.Language = strings.TrimSpace(v)
	}
	if v, ok := e.Lookup(EnvMinimal); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinimal, err)
		}
		c.Minimal = &b
	}
	if v, ok := e.Lookup(EnvSkipTools); ok {
		c.SkipTools = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Load returns the effective configuration for projectDir: merged files
// plus environment overrides. A missing configuration yields defaults.
func Load(projectDir, globalPath string) (*Config, error) {
	c, err := LoadMerged(projectDir, globalPath)
	if errors.Is(err, ErrNoConfig) {
		c, err = &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	env, err := LoadEnv(projectDir)
	if err != nil {
		return nil, err
	}
	if err := env.Apply(c); err != nil {
		return nil, err
	}
	return c, nil
}
